package llm

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

// AnthropicClient talks to the Anthropic Messages API directly.
type AnthropicClient struct {
	client    *anthropic.Client
	model     anthropic.Model
	modelName string
}

func NewAnthropicClient(apiKey string) *AnthropicClient {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:    &client,
		model:     anthropic.Model("claude-haiku-4-5"),
		modelName: "claude-4.5-haiku",
	}
}

func (c *AnthropicClient) Synthesize(ctx context.Context, stories []sources.Story, papers []sources.Paper, releases []sources.Release) (*Synthesis, error) {
	userPrompt := buildUserPrompt(stories, papers, releases)

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 4096,
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}

	if len(resp.Content) == 0 {
		return nil, fmt.Errorf("no response from anthropic")
	}

	briefing, err := decodeBriefing(resp.Content[0].Text)
	if err != nil {
		return nil, err
	}

	return &Synthesis{
		Briefing:   *briefing,
		TokensUsed: int(resp.Usage.InputTokens + resp.Usage.OutputTokens),
		ModelUsed:  c.modelName,
	}, nil
}
