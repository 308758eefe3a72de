package classify

import (
	"testing"

	"github.com/mlindner/spreewire/internal/news"
)

func TestClassifyRegional(t *testing.T) {
	a := &news.Article{Title: "New tech campus opens in Berlin", Body: "The Adlershof site expands.", Source: "Reuters"}
	cands := Classify(a)
	if !contains(cands, news.BerlinTech) {
		t.Errorf("expected berlin-tech candidate, got %v", cands)
	}
}

func TestClassifyRegionalSource(t *testing.T) {
	a := &news.Article{Title: "Weekly roundup", Body: "News from the local scene.", Source: "Gründerszene"}
	cands := Classify(a)
	if !contains(cands, news.BerlinTech) {
		t.Errorf("expected berlin-tech from regional source, got %v", cands)
	}
}

func TestClassifyStartups(t *testing.T) {
	a := &news.Article{Title: "Fintech startup raises Series B", Body: "Investors backed the funding round.", Source: "TechCrunch"}
	cands := Classify(a)
	if !contains(cands, news.Startups) {
		t.Errorf("expected startups candidate, got %v", cands)
	}
}

func TestClassifyMultipleCandidates(t *testing.T) {
	a := &news.Article{
		Title:  "Berlin AI startup raises seed round",
		Body:   "The machine learning company closed its funding round with local investors.",
		Source: "Sifted",
	}
	cands := Classify(a)
	for _, want := range []news.Category{news.BerlinTech, news.Startups, news.AIML} {
		if !contains(cands, want) {
			t.Errorf("expected %s among candidates, got %v", want, cands)
		}
	}
}

func TestClassifyNeverEmpty(t *testing.T) {
	inputs := []*news.Article{
		{},
		{Title: "Quarterly results", Body: "Revenue grew.", Source: "Unknown Blog"},
		{Title: "Weather update", Body: "", Source: ""},
	}
	for _, a := range inputs {
		cands := Classify(a)
		if len(cands) == 0 {
			t.Errorf("classify returned empty set for %q", a.Title)
		}
	}
}

func TestClassifyDefaultsToGlobal(t *testing.T) {
	a := &news.Article{Title: "Quarterly results", Body: "Revenue grew this year.", Source: "Some Blog"}
	cands := Classify(a)
	if len(cands) != 1 || cands[0] != news.GlobalTech {
		t.Errorf("expected single global-tech default, got %v", cands)
	}
}

func TestClassifySourceHintSeedsFirst(t *testing.T) {
	a := &news.Article{
		Title:      "Berlin startup news",
		Body:       "",
		Source:     "Feed",
		SourceHint: news.AIML,
	}
	cands := Classify(a)
	if cands[0] != news.AIML {
		t.Errorf("source hint should be the earliest candidate, got %v", cands)
	}
}

func TestClassifyNoDuplicateCandidates(t *testing.T) {
	a := &news.Article{
		Title:      "Startup raises funding from startup investors",
		SourceHint: news.Startups,
	}
	cands := Classify(a)
	count := 0
	for _, c := range cands {
		if c == news.Startups {
			count++
		}
	}
	if count != 1 {
		t.Errorf("candidate set should not contain duplicates, got %v", cands)
	}
}

func contains(cands []news.Category, want news.Category) bool {
	for _, c := range cands {
		if c == want {
			return true
		}
	}
	return false
}
