package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterClient talks to OpenRouter through the OpenAI-compatible
// chat completions API.
type OpenRouterClient struct {
	client    *openai.Client
	model     openai.ChatModel
	modelName string
}

func NewOpenRouterClient(apiKey string) *OpenRouterClient {
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(openRouterBaseURL),
	)
	return &OpenRouterClient{
		client:    &client,
		model:     openai.ChatModel("anthropic/claude-3.5-haiku"),
		modelName: "anthropic/claude-3.5-haiku",
	}
}

func (c *OpenRouterClient) Synthesize(ctx context.Context, stories []sources.Story, papers []sources.Paper, releases []sources.Release) (*Synthesis, error) {
	userPrompt := buildUserPrompt(stories, papers, releases)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:     c.model,
		MaxTokens: openai.Int(4096),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openrouter API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from openrouter")
	}

	briefing, err := decodeBriefing(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return &Synthesis{
		Briefing:   *briefing,
		TokensUsed: int(resp.Usage.TotalTokens),
		ModelUsed:  c.modelName,
	}, nil
}
