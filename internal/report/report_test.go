package report

import (
	"context"
	"strings"
	"testing"

	"github.com/mlindner/spreewire/internal/news"
	"github.com/mlindner/spreewire/internal/summary"
)

func resolved(title string, cat news.Category, score float64) news.Article {
	return news.Article{
		ID:            title,
		Title:         title,
		Body:          "Body text for " + title + ". It has several sentences. Enough for a summary.",
		Source:        "Test Feed",
		Link:          "https://example.com/" + title,
		FinalCategory: cat,
		FinalScore:    score,
	}
}

func newAssembler() *Assembler {
	// nil generator: summaries come from the deterministic fallback.
	return NewAssembler(summary.New(nil))
}

func TestAssembleTopThreeDescending(t *testing.T) {
	articles := []news.Article{
		resolved("a", news.Startups, 40),
		resolved("b", news.Startups, 90),
		resolved("c", news.Startups, 10),
		resolved("d", news.Startups, 70),
		resolved("e", news.Startups, 55),
	}
	r := newAssembler().Assemble(context.Background(), articles)

	items := r.Items[news.Startups]
	if len(items) != 3 {
		t.Fatalf("expected top 3, got %d", len(items))
	}
	wantOrder := []string{"b", "d", "e"}
	for i, want := range wantOrder {
		if items[i].Headline != want {
			t.Errorf("position %d: expected %q, got %q", i, want, items[i].Headline)
		}
	}
	for _, dropped := range []string{"a", "c"} {
		for _, item := range items {
			if item.Headline == dropped {
				t.Errorf("article %q should not appear in the report", dropped)
			}
		}
	}
}

func TestAssembleStableSortEqualScores(t *testing.T) {
	articles := []news.Article{
		resolved("first", news.AIML, 50),
		resolved("second", news.AIML, 50),
		resolved("third", news.AIML, 50),
	}
	r := newAssembler().Assemble(context.Background(), articles)
	items := r.Items[news.AIML]
	if items[0].Headline != "first" || items[1].Headline != "second" || items[2].Headline != "third" {
		t.Errorf("equal scores must keep input order, got %v", headlines(items))
	}
}

func TestAssembleEveryCategoryPresent(t *testing.T) {
	r := newAssembler().Assemble(context.Background(), []news.Article{
		resolved("only", news.BerlinTech, 30),
	})
	for _, cat := range news.AllCategories() {
		if len(r.Items[cat]) == 0 {
			t.Errorf("category %s missing from report", cat)
		}
	}
}

func TestAssemblePlaceholderForEmptyCategory(t *testing.T) {
	r := newAssembler().Assemble(context.Background(), []news.Article{
		resolved("only", news.BerlinTech, 30),
	})
	items := r.Items[news.Startups]
	if len(items) != 1 {
		t.Fatalf("expected exactly one placeholder, got %d", len(items))
	}
	p := items[0]
	if !strings.Contains(p.Headline, "No ") {
		t.Errorf("unexpected placeholder headline: %q", p.Headline)
	}
	if p.Link != news.Startups.FallbackLink() {
		t.Errorf("placeholder should use the category fallback link, got %q", p.Link)
	}
	if len(strings.Split(p.Details, "\n")) != 3 {
		t.Errorf("placeholder details must have 3 lines: %q", p.Details)
	}
}

func TestAssembleEmptyInput(t *testing.T) {
	r := newAssembler().Assemble(context.Background(), nil)
	if r.Meta.TotalArticles != 0 {
		t.Errorf("expected 0 total, got %d", r.Meta.TotalArticles)
	}
	for _, cat := range news.AllCategories() {
		if len(r.Items[cat]) != 1 {
			t.Errorf("category %s should hold one placeholder, got %d items", cat, len(r.Items[cat]))
		}
	}
}

func TestAssembleMetadata(t *testing.T) {
	articles := []news.Article{
		resolved("a", news.Startups, 40),
		resolved("b", news.Startups, 90),
		resolved("c", news.Startups, 10),
		resolved("d", news.Startups, 70),
		resolved("e", news.GlobalTech, 55),
	}
	r := newAssembler().Assemble(context.Background(), articles)

	if r.Meta.TotalArticles != 5 {
		t.Errorf("expected 5 total, got %d", r.Meta.TotalArticles)
	}
	// PerCategory counts inputs, not the top-3 selection.
	if r.Meta.PerCategory[news.Startups] != 4 {
		t.Errorf("expected 4 startups articles counted, got %d", r.Meta.PerCategory[news.Startups])
	}
	if r.Meta.PerCategory[news.GlobalTech] != 1 {
		t.Errorf("expected 1 global article counted, got %d", r.Meta.PerCategory[news.GlobalTech])
	}
	if r.Meta.GeneratedAt.IsZero() {
		t.Error("generation timestamp missing")
	}
	if r.Meta.AIUsed {
		t.Error("AIUsed must be false without a generator")
	}
}

func TestAssembleDetailsAlwaysThreeLines(t *testing.T) {
	r := newAssembler().Assemble(context.Background(), []news.Article{
		resolved("a", news.BerlinTech, 10),
		{Title: "no body", FinalCategory: news.AIML, FinalScore: 5},
	})
	for cat, items := range r.Items {
		for _, item := range items {
			ls := strings.Split(item.Details, "\n")
			if len(ls) != 3 {
				t.Errorf("%s/%q: details must have 3 lines, got %d", cat, item.Headline, len(ls))
			}
			for _, l := range ls {
				if strings.TrimSpace(l) == "" {
					t.Errorf("%s/%q: empty details line", cat, item.Headline)
				}
			}
		}
	}
}

func headlines(items []news.ReportItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Headline
	}
	return out
}
