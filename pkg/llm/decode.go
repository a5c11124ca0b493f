package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/alexmerricks0/ai-pulse/internal/model"
)

// decodeBriefing turns raw model output into a validated BriefingResult.
// Decode failure and schema violation are distinct errors; neither is
// ever silently corrected.
func decodeBriefing(raw string) (*model.BriefingResult, error) {
	content := cleanJSONResponse(raw)

	var briefing model.BriefingResult
	if err := json.Unmarshal([]byte(content), &briefing); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJSON, err)
	}

	if err := briefing.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBriefing, err)
	}

	return &briefing, nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}
