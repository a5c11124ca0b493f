package config

import (
	"os"
	"strings"
)

// Config holds all process settings. It is loaded once at startup and
// passed into constructors; nothing reads the environment after Load.
type Config struct {
	DatabaseURL    string
	OpenRouterKey  string
	AnthropicKey   string
	LLMProvider    string
	GitHubToken    string
	TriggerSecret  string
	AllowedOrigins []string
	Environment    string
	Port           string
}

func Load() Config {
	cfg := Config{
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		OpenRouterKey: os.Getenv("OPENROUTER_API_KEY"),
		AnthropicKey:  os.Getenv("ANTHROPIC_API_KEY"),
		LLMProvider:   os.Getenv("LLM_PROVIDER"),
		GitHubToken:   os.Getenv("GITHUB_TOKEN"),
		TriggerSecret: os.Getenv("TRIGGER_SECRET"),
		Environment:   os.Getenv("ENVIRONMENT"),
		Port:          os.Getenv("PORT"),
	}

	if cfg.LLMProvider == "" {
		cfg.LLMProvider = "openrouter"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	return cfg
}

// Development reports whether the process runs with relaxed CORS rules.
func (c Config) Development() bool {
	return c.Environment == "development"
}
