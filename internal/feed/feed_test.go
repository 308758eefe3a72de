package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mlindner/spreewire/internal/config"
	"github.com/mlindner/spreewire/internal/news"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 3, "abc"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		got := truncate(tt.input, tt.n)
		if got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"<p>Hello</p>", "Hello"},
		{"<b>Bold</b> and <i>italic</i>", "Bold and italic"},
		{"No tags here", "No tags here"},
		{"<div>  Multiple   spaces  </div>", "Multiple spaces"},
		{"", ""},
	}
	for _, tt := range tests {
		got := stripHTML(tt.input)
		if got != tt.want {
			t.Errorf("stripHTML(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Feed</title>
    <item>
      <title>First story</title>
      <link>https://example.com/1</link>
      <guid>guid-1</guid>
      <description>&lt;p&gt;Body of the first story.&lt;/p&gt;</description>
      <pubDate>Mon, 10 Mar 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>No guid story</title>
      <link>https://example.com/2</link>
      <description>Second body.</description>
      <pubDate>Mon, 10 Mar 2026 10:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchMapsItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer srv.Close()

	src := config.Source{Name: "Test Feed", URL: srv.URL, Category: string(news.AIML)}
	articles, err := NewRSSFetcher().Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.ID != "guid-1" {
		t.Errorf("guid should be preferred as id, got %q", first.ID)
	}
	if first.Body != "Body of the first story." {
		t.Errorf("expected stripped body, got %q", first.Body)
	}
	if first.SourceHint != news.AIML {
		t.Errorf("source hint not carried, got %q", first.SourceHint)
	}
	if first.Published.IsZero() {
		t.Error("published timestamp missing")
	}

	if articles[1].ID != "https://example.com/2" {
		t.Errorf("link should back up a missing guid, got %q", articles[1].ID)
	}
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleRSS))
	}))
	defer good.Close()
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer bad.Close()

	result := FetchAll(context.Background(), []config.Source{
		{Name: "good", URL: good.URL},
		{Name: "bad", URL: bad.URL},
	})

	if len(result.Articles) != 2 {
		t.Errorf("good source should still deliver, got %d articles", len(result.Articles))
	}
	if len(result.Errors) != 1 {
		t.Errorf("bad source should report exactly one error, got %v", result.Errors)
	}
}
