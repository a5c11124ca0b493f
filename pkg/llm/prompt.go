package llm

import (
	"fmt"
	"strings"

	"github.com/alexmerricks0/ai-pulse/pkg/sources"
)

const systemPrompt = `You are an expert AI industry analyst. Produce a concise daily briefing synthesizing AI news from Hacker News, arXiv papers, and GitHub releases. Be insightful and opinionated. Focus on what matters to AI practitioners and engineers.`

const (
	abstractBudget = 200
	maxAuthors     = 3
)

func buildUserPrompt(stories []sources.Story, papers []sources.Paper, releases []sources.Release) string {
	var storyLines []string
	for _, s := range stories {
		storyLines = append(storyLines, fmt.Sprintf("- [HN %dpts] %s (%s)", s.Score, s.Title, s.URL))
	}

	var paperLines []string
	for _, p := range papers {
		paperLines = append(paperLines, fmt.Sprintf("- [arXiv] %s by %s: %s...",
			p.Title, formatAuthors(p.Authors), truncate(p.Abstract, abstractBudget)))
	}

	var releaseLines []string
	for _, r := range releases {
		releaseLines = append(releaseLines, fmt.Sprintf("- [Release] %s %s: %s", r.Repo, r.Tag, r.Title))
	}

	storySection := strings.Join(storyLines, "\n")
	if storySection == "" {
		storySection = "- No AI stories trending today"
	}
	paperSection := strings.Join(paperLines, "\n")
	if paperSection == "" {
		paperSection = "- No new papers"
	}
	releaseSection := strings.Join(releaseLines, "\n")
	if releaseSection == "" {
		releaseSection = "- No major releases in the past 48 hours"
	}

	return fmt.Sprintf(`Here are today's AI/ML sources:

## Hacker News (AI-filtered)
%s

## arXiv Papers (cs.AI + cs.LG)
%s

## GitHub Releases
%s

Synthesize these into a daily briefing. Output ONLY valid JSON (no markdown, no code fences):

{
  "headline": "One sentence capturing today's biggest AI story or theme",
  "stories": [
    { "title": "Story title", "source": "hackernews|arxiv|github", "url": "url", "summary": "One-line insight", "significance": 1-5 }
  ],
  "papers": [
    { "title": "Paper title", "authors": "First Author et al.", "summary": "Plain-English 2-sentence explanation of what this paper does and why it matters", "url": "arxiv url" }
  ],
  "releases": [
    { "repo": "owner/name", "version": "v1.0.0", "summary": "What changed and why it matters", "url": "url" }
  ],
  "trend": "2-3 sentences on the emerging theme across today's sources"
}

Rules:
- stories: pick the top 5-8 most significant items across all sources
- papers: pick the top 3 most noteworthy papers, explain in plain English
- releases: include all from the input, summarize each
- If a section has no data, use an empty array
- significance is 1-5 (5 = most significant)
- Be direct and opinionated`, storySection, paperSection, releaseSection)
}

func formatAuthors(authors []string) string {
	if len(authors) <= maxAuthors {
		return strings.Join(authors, ", ")
	}
	return strings.Join(authors[:maxAuthors], ", ") + " et al."
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
