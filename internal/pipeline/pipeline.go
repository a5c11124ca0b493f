package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexmerricks0/ai-pulse/internal/model"
	"github.com/alexmerricks0/ai-pulse/pkg/llm"
	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

type StorySource interface {
	Fetch(ctx context.Context) ([]sources.Story, error)
}

type PaperSource interface {
	Fetch(ctx context.Context) ([]sources.Paper, error)
}

type ReleaseSource interface {
	Fetch(ctx context.Context) ([]sources.Release, error)
}

type BriefingStore interface {
	FindByDate(date string) (*model.BriefingRecord, error)
	InsertIfAbsent(record *model.BriefingRecord) (bool, error)
}

// Pipeline runs one briefing: idempotency check, concurrent source
// fetch, synthesis, insert-if-absent. It performs no retries; transient
// failure recovery belongs to the caller.
type Pipeline struct {
	stories  StorySource
	papers   PaperSource
	releases ReleaseSource
	synth    llm.Synthesizer
	store    BriefingStore
	now      func() time.Time
}

func New(stories StorySource, papers PaperSource, releases ReleaseSource, synth llm.Synthesizer, store BriefingStore) *Pipeline {
	return &Pipeline{
		stories:  stories,
		papers:   papers,
		releases: releases,
		synth:    synth,
		store:    store,
		now:      time.Now,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	today := p.now().UTC().Format("2006-01-02")

	existing, err := p.store.FindByDate(today)
	if err != nil {
		return fmt.Errorf("checking existing briefing: %w", err)
	}
	if existing != nil {
		slog.Info("briefing already exists, skipping", "date", today)
		return nil
	}

	var (
		stories  []sources.Story
		papers   []sources.Paper
		releases []sources.Release
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if stories, err = p.stories.Fetch(gCtx); err != nil {
			return fmt.Errorf("story source: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if papers, err = p.papers.Fetch(gCtx); err != nil {
			return fmt.Errorf("paper source: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if releases, err = p.releases.Fetch(gCtx); err != nil {
			return fmt.Errorf("release source: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("sources fetched",
		"date", today,
		"stories", len(stories),
		"papers", len(papers),
		"releases", len(releases),
	)

	result, err := p.synth.Synthesize(ctx, stories, papers, releases)
	if err != nil {
		return fmt.Errorf("synthesizing briefing: %w", err)
	}

	snapshot, err := json.Marshal(map[string]any{
		"hackernews": stories,
		"arxiv":      papers,
		"github":     releases,
	})
	if err != nil {
		return fmt.Errorf("encoding sources snapshot: %w", err)
	}

	inserted, err := p.store.InsertIfAbsent(&model.BriefingRecord{
		Date:            today,
		SourcesSnapshot: snapshot,
		Briefing:        result.Briefing,
		Model:           result.ModelUsed,
		TokensUsed:      result.TokensUsed,
	})
	if err != nil {
		return fmt.Errorf("storing briefing: %w", err)
	}
	if !inserted {
		// A concurrent run won the race between our pre-check and this
		// insert. The day's briefing exists, which is all that matters.
		slog.Info("briefing stored by concurrent run", "date", today)
		return nil
	}

	slog.Info("briefing stored", "date", today, "model", result.ModelUsed, "tokens_used", result.TokensUsed)
	return nil
}
