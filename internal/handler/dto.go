package handler

import (
	"time"

	"github.com/alexmerricks0/ai-pulse/internal/model"
)

type BriefingResponse struct {
	Date       string               `json:"date"`
	Briefing   model.BriefingResult `json:"briefing"`
	Model      string               `json:"model"`
	TokensUsed int                  `json:"tokensUsed"`
	CreatedAt  string               `json:"createdAt"`
}

type HistoryEntryResponse struct {
	Date       string `json:"date"`
	Headline   string `json:"headline"`
	Trend      string `json:"trend"`
	StoryCount int    `json:"storyCount"`
	PaperCount int    `json:"paperCount"`
}

func toBriefingResponse(r *model.BriefingRecord) BriefingResponse {
	return BriefingResponse{
		Date:       r.Date,
		Briefing:   r.Briefing,
		Model:      r.Model,
		TokensUsed: r.TokensUsed,
		CreatedAt:  r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toHistoryEntryResponse(s model.BriefingSummary) HistoryEntryResponse {
	return HistoryEntryResponse{
		Date:       s.Date,
		Headline:   s.Headline,
		Trend:      s.Trend,
		StoryCount: s.StoryCount,
		PaperCount: s.PaperCount,
	}
}
