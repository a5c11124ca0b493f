package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// StoryItem is one synthesized story in a daily briefing.
type StoryItem struct {
	Title        string `json:"title"`
	Source       string `json:"source"`
	URL          string `json:"url"`
	Summary      string `json:"summary"`
	Significance int    `json:"significance"`
}

type PaperItem struct {
	Title   string `json:"title"`
	Authors string `json:"authors"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

type ReleaseItem struct {
	Repo    string `json:"repo"`
	Version string `json:"version"`
	Summary string `json:"summary"`
	URL     string `json:"url"`
}

// BriefingResult is the validated synthesis output for one day. It is
// created once by the pipeline and never mutated afterwards.
type BriefingResult struct {
	Headline string        `json:"headline"`
	Stories  []StoryItem   `json:"stories"`
	Papers   []PaperItem   `json:"papers"`
	Releases []ReleaseItem `json:"releases"`
	Trend    string        `json:"trend"`
}

const (
	maxStories = 8
	maxPapers  = 3
)

var validSources = map[string]bool{
	"hackernews": true,
	"arxiv":      true,
	"github":     true,
}

// Validate checks the briefing against the schema the model was
// instructed to produce. Arrays must be present (a nil slice after
// decoding means the field was absent); values outside their declared
// range are rejected, never corrected.
func (b *BriefingResult) Validate() error {
	if b.Headline == "" {
		return fmt.Errorf("headline is missing or empty")
	}
	if b.Stories == nil {
		return fmt.Errorf("stories field is missing")
	}
	if b.Papers == nil {
		return fmt.Errorf("papers field is missing")
	}
	if b.Releases == nil {
		return fmt.Errorf("releases field is missing")
	}
	if b.Trend == "" {
		return fmt.Errorf("trend is missing or empty")
	}

	if len(b.Stories) > maxStories {
		return fmt.Errorf("too many stories: %d (max %d)", len(b.Stories), maxStories)
	}
	for i, s := range b.Stories {
		if s.Title == "" {
			return fmt.Errorf("story %d has no title", i)
		}
		if !validSources[s.Source] {
			return fmt.Errorf("story %d has unknown source %q", i, s.Source)
		}
		if s.Significance < 1 || s.Significance > 5 {
			return fmt.Errorf("story %d significance %d out of range [1,5]", i, s.Significance)
		}
	}

	if len(b.Papers) > maxPapers {
		return fmt.Errorf("too many papers: %d (max %d)", len(b.Papers), maxPapers)
	}
	for i, p := range b.Papers {
		if p.Title == "" {
			return fmt.Errorf("paper %d has no title", i)
		}
	}

	return nil
}

// BriefingRecord is the persisted row for one calendar date. Date is the
// unique key (YYYY-MM-DD, UTC). SourcesSnapshot holds the raw normalized
// source items captured at collection time; the read path never decodes it.
type BriefingRecord struct {
	ID              int64
	Date            string
	SourcesSnapshot json.RawMessage
	Briefing        BriefingResult
	Model           string
	TokensUsed      int
	CreatedAt       time.Time
}

// BriefingSummary is the projection returned by range queries.
type BriefingSummary struct {
	Date       string
	Headline   string
	Trend      string
	StoryCount int
	PaperCount int
}
