package feed

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/mlindner/spreewire/internal/config"
	"github.com/mlindner/spreewire/internal/news"
)

type Fetcher interface {
	Fetch(ctx context.Context, source config.Source) ([]news.Article, error)
}

type RSSFetcher struct {
	parser *gofeed.Parser
}

func NewRSSFetcher() *RSSFetcher {
	return &RSSFetcher{parser: gofeed.NewParser()}
}

func (f *RSSFetcher) Fetch(ctx context.Context, source config.Source) ([]news.Article, error) {
	parsed, err := f.parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", source.Name, err)
	}

	articles := make([]news.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		var pub time.Time
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}
		// A zero timestamp flows through; the recency filter rejects it.

		body := item.Description
		if body == "" {
			body = item.Content
		}
		body = truncate(stripHTML(body), 1200)

		id := item.GUID
		if id == "" {
			id = item.Link
		}
		if id == "" {
			// Ingestion owns the id-less warning per the pipeline
			// contract; without any identity the item cannot be deduped.
			continue
		}

		articles = append(articles, news.Article{
			ID:         id,
			Title:      item.Title,
			Body:       body,
			Source:     source.Name,
			Link:       item.Link,
			Published:  pub,
			SourceHint: news.Category(source.Category),
		})
	}
	return articles, nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func stripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

type FetchResult struct {
	Articles []news.Article
	Errors   []error
}

// FetchAll pulls every enabled source in parallel. A failing source
// contributes zero articles and an entry in Errors; it never blocks
// or fails the others.
func FetchAll(ctx context.Context, sources []config.Source) FetchResult {
	var (
		mu     sync.Mutex
		result FetchResult
	)

	fetcher := NewRSSFetcher()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, src := range sources {
		src := src
		g.Go(func() error {
			articles, err := fetcher.Fetch(ctx, src)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Errors = append(result.Errors, err)
				return nil
			}
			result.Articles = append(result.Articles, articles...)
			return nil
		})
	}

	g.Wait()
	return result
}
