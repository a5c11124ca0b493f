package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/alexmerricks0/ai-pulse/db"
	"github.com/alexmerricks0/ai-pulse/internal/config"
	"github.com/alexmerricks0/ai-pulse/internal/handler"
	"github.com/alexmerricks0/ai-pulse/internal/pipeline"
	"github.com/alexmerricks0/ai-pulse/internal/repository"
	"github.com/alexmerricks0/ai-pulse/pkg/llm"
	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg := config.Load()

	err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	briefingRepo := repository.NewBriefingRepository(db.DB)

	synth, err := newSynthesizer(cfg)
	if err != nil {
		log.Fatalf("error configuring synthesizer: %v", err)
	}

	p := pipeline.New(
		sources.NewHNClient(),
		sources.NewArxivClient(),
		sources.NewGitHubClient(cfg.GitHubToken),
		synth,
		briefingRepo,
	)

	allowedOrigins := []string{"http://localhost:3000"}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	slog.Info("allowed origins", "urls", allowedOrigins, "development", cfg.Development())

	h := handler.NewBriefingHandler(briefingRepo, p, cfg.TriggerSecret)
	r := handler.NewRouter(h, allowedOrigins, cfg.Development())

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
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
