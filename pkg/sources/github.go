package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const (
	githubReleasesURL = "https://api.github.com/repos/%s/releases?per_page=5"
	releaseWindow     = 48 * time.Hour
)

var defaultTrackedRepos = []string{
	"ggml-org/llama.cpp",
	"huggingface/transformers",
	"vllm-project/vllm",
	"pytorch/pytorch",
	"langchain-ai/langchain",
	"ollama/ollama",
	"comfyanonymous/ComfyUI",
	"open-webui/open-webui",
}

// GitHubClient fetches release events published within the last 48 hours
// from a fixed set of tracked repositories.
type GitHubClient struct {
	token      string
	repos      []string
	httpClient *http.Client
	now        func() time.Time
}

func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token:      token,
		repos:      defaultTrackedRepos,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

func (c *GitHubClient) Name() string {
	return "github"
}

type githubRelease struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	PublishedAt string `json:"published_at"`
	Draft       bool   `json:"draft"`
	Prerelease  bool   `json:"prerelease"`
}

func (c *GitHubClient) Fetch(ctx context.Context) ([]Release, error) {
	cutoff := c.now().Add(-releaseWindow)
	releases := make([]Release, 0)

	for _, repo := range c.repos {
		recent, err := c.fetchRepo(ctx, repo, cutoff)
		if err != nil {
			return nil, fmt.Errorf("github releases for %s: %w", repo, err)
		}
		releases = append(releases, recent...)
	}

	return releases, nil
}

func (c *GitHubClient) fetchRepo(ctx context.Context, repo string, cutoff time.Time) ([]Release, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf(githubReleasesURL, repo), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var raw []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	var recent []Release
	for _, r := range raw {
		if r.Draft || r.Prerelease {
			continue
		}
		published, err := time.Parse(time.RFC3339, r.PublishedAt)
		if err != nil || published.Before(cutoff) {
			continue
		}

		title := r.Name
		if title == "" {
			title = r.TagName
		}

		recent = append(recent, Release{
			Repo:  repo,
			Tag:   r.TagName,
			Title: title,
		})
	}

	return recent, nil
}
