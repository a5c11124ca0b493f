package sources

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	arxivQueryURL   = "https://export.arxiv.org/api/query"
	arxivCategories = "cat:cs.AI OR cat:cs.LG"
	arxivMaxResults = 20
)

// ArxivClient fetches the most recent cs.AI / cs.LG submissions from the
// arXiv Atom feed.
type ArxivClient struct {
	httpClient *http.Client
}

func NewArxivClient() *ArxivClient {
	return &ArxivClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *ArxivClient) Name() string {
	return "arxiv"
}

type atomEntry struct {
	Title     string `xml:"title"`
	Summary   string `xml:"summary"`
	ID        string `xml:"id"`
	Published string `xml:"published"`
	Authors   []struct {
		Name string `xml:"name"`
	} `xml:"author"`
}

func (c *ArxivClient) Fetch(ctx context.Context) ([]Paper, error) {
	query := url.Values{}
	query.Set("search_query", arxivCategories)
	query.Set("sortBy", "submittedDate")
	query.Set("sortOrder", "descending")
	query.Set("max_results", fmt.Sprintf("%d", arxivMaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivQueryURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv fetch: status %d", resp.StatusCode)
	}

	papers, err := parseAtomFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("arxiv parse: %w", err)
	}
	return papers, nil
}

// parseAtomFeed decodes entries one at a time so that a single malformed
// entry is skipped instead of failing the whole feed.
func parseAtomFeed(r io.Reader) ([]Paper, error) {
	dec := xml.NewDecoder(r)
	var papers []Paper

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "entry" {
			continue
		}

		var entry atomEntry
		if err := dec.DecodeElement(&entry, &se); err != nil {
			slog.Warn("skipping malformed arxiv entry", "error", err)
			continue
		}

		title := collapseWhitespace(entry.Title)
		if title == "" || entry.ID == "" {
			continue
		}

		authors := make([]string, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			if name := strings.TrimSpace(a.Name); name != "" {
				authors = append(authors, name)
			}
		}

		papers = append(papers, Paper{
			Title:     title,
			Authors:   authors,
			Abstract:  collapseWhitespace(entry.Summary),
			URL:       strings.TrimSpace(entry.ID),
			Published: strings.TrimSpace(entry.Published),
		})
	}

	return papers, nil
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
