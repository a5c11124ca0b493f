package llm

import (
	"context"
	"errors"

	"github.com/alexmerricks0/ai-pulse/internal/model"
	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

// Model output that is not parseable JSON at all.
var ErrNotJSON = errors.New("model output is not valid JSON")

// Model output that parsed but violates the briefing schema.
var ErrInvalidBriefing = errors.New("model output violates briefing schema")

type Synthesis struct {
	Briefing   model.BriefingResult
	TokensUsed int
	ModelUsed  string
}

// Synthesizer makes exactly one completion call per invocation and
// returns a validated briefing.
type Synthesizer interface {
	Synthesize(ctx context.Context, stories []sources.Story, papers []sources.Paper, releases []sources.Release) (*Synthesis, error)
}
