package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexmerricks0/ai-pulse/db"
	"github.com/alexmerricks0/ai-pulse/internal/config"
	"github.com/alexmerricks0/ai-pulse/internal/pipeline"
	"github.com/alexmerricks0/ai-pulse/internal/repository"
	"github.com/alexmerricks0/ai-pulse/pkg/llm"
	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 5 * time.Second
)

// briefer is the scheduled entry point. It runs one briefing under the
// retry wrapper and exits; an external cron invokes it once per day.
func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	synth, err := newSynthesizer(cfg)
	if err != nil {
		log.Fatalf("error configuring synthesizer: %v", err)
	}

	p := pipeline.New(
		sources.NewHNClient(),
		sources.NewArxivClient(),
		sources.NewGitHubClient(cfg.GitHubToken),
		synth,
		repository.NewBriefingRepository(db.DB),
	)

	if err := pipeline.WithRetry(context.Background(), retryAttempts, retryBaseDelay, p.Run); err != nil {
		slog.Error("all briefing attempts failed", "attempts", retryAttempts, "error", err)
		os.Exit(1)
	}
}

func newSynthesizer(cfg config.Config) (llm.Synthesizer, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		return llm.NewAnthropicClient(cfg.AnthropicKey), nil
	case "openrouter":
		return llm.NewOpenRouterClient(cfg.OpenRouterKey), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
