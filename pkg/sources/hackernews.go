package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	hnTopStoriesURL = "https://hacker-news.firebaseio.com/v0/topstories.json"
	hnItemURL       = "https://hacker-news.firebaseio.com/v0/item/%d.json"

	hnWindow           = 30
	hnFetchConcurrency = 8
)

var aiKeywords = []string{
	"ai", "ml", "llm", "gpt", "claude", "llama", "gemini", "mistral",
	"transformer", "neural", "openai", "anthropic", "deep learning",
	"machine learning", "artificial intelligence", "diffusion", "fine-tune",
	"benchmark", "embedding", "rag", "agent", "copilot", "chatbot",
	"foundation model", "language model", "generative", "inference",
	"hugging face", "stable diffusion", "midjourney", "deepseek",
}

// HNClient fetches the current top-story window from Hacker News and
// keeps the AI-related items.
type HNClient struct {
	httpClient *http.Client
}

func NewHNClient() *HNClient {
	return &HNClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HNClient) Name() string {
	return "hackernews"
}

type hnItem struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Score       int    `json:"score"`
	By          string `json:"by"`
	Time        int64  `json:"time"`
	Descendants int    `json:"descendants"`
}

func (c *HNClient) Fetch(ctx context.Context) ([]Story, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, hnTopStoriesURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hackernews top stories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("hackernews top stories: status %d", resp.StatusCode)
	}

	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("hackernews top stories decode: %w", err)
	}

	if len(ids) > hnWindow {
		ids = ids[:hnWindow]
	}

	items := make([]*hnItem, len(ids))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(hnFetchConcurrency)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			item, err := c.fetchItem(gCtx, id)
			if err != nil {
				return fmt.Errorf("hackernews item %d: %w", id, err)
			}
			items[i] = item
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stories := make([]Story, 0, len(items))
	for _, item := range items {
		if item == nil || item.Title == "" || !isAIRelated(item.Title) {
			continue
		}

		url := item.URL
		if url == "" {
			url = fmt.Sprintf("https://news.ycombinator.com/item?id=%d", item.ID)
		}

		stories = append(stories, Story{
			ID:       item.ID,
			Title:    item.Title,
			URL:      url,
			Score:    item.Score,
			By:       item.By,
			Time:     item.Time,
			Comments: item.Descendants,
		})
	}

	return stories, nil
}

func (c *HNClient) fetchItem(ctx context.Context, id int) (*hnItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(hnItemURL, id), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	// The items endpoint returns the JSON literal null for dead ids;
	// decoding into a pointer leaves it nil.
	var item *hnItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return nil, err
	}
	return item, nil
}

func isAIRelated(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range aiKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
