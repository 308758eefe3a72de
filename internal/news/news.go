package news

import "time"

// Category is one of the fixed digest categories.
type Category string

const (
	BerlinTech Category = "berlin-tech"
	AIML       Category = "ai-ml"
	Startups   Category = "startups"
	GlobalTech Category = "global-tech"
)

// AllCategories returns the closed category set in canonical order.
func AllCategories() []Category {
	return []Category{BerlinTech, AIML, Startups, GlobalTech}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	for _, cat := range AllCategories() {
		if c == cat {
			return true
		}
	}
	return false
}

// Label returns a human-readable category name.
func (c Category) Label() string {
	switch c {
	case BerlinTech:
		return "Berlin Tech"
	case AIML:
		return "AI & ML"
	case Startups:
		return "Startups & Funding"
	case GlobalTech:
		return "Global Tech"
	}
	return string(c)
}

// FallbackLink is shown on placeholder items when a category is empty.
func (c Category) FallbackLink() string {
	switch c {
	case BerlinTech:
		return "https://www.berlin.de/wirtschaft/"
	case AIML:
		return "https://news.ycombinator.com/"
	case Startups:
		return "https://sifted.eu/"
	}
	return "https://techcrunch.com/"
}

// Article is constructed once per ingestion pass. The progressive
// fields (Candidates, ScoresByCategory, FinalCategory, FinalScore) are
// each assigned by exactly one pipeline stage; everything else is
// read-only after ingestion.
type Article struct {
	ID         string
	Title      string
	Body       string
	Source     string
	Link       string
	Published  time.Time
	SourceHint Category // optional category hint carried from ingestion

	Candidates       []Category // set by the categorizer, insertion-ordered
	ScoresByCategory map[Category]float64
	FinalCategory    Category
	FinalScore       float64
}

// AddCandidate appends c if it is not already a candidate, preserving
// insertion order. The order matters: resolution ties go to the
// earliest-inserted candidate.
func (a *Article) AddCandidate(c Category) {
	for _, existing := range a.Candidates {
		if existing == c {
			return
		}
	}
	a.Candidates = append(a.Candidates, c)
}

// ReportItem is a single digest entry. Details is always exactly three
// newline-joined sentences.
type ReportItem struct {
	Headline string  `json:"headline"`
	Details  string  `json:"details"`
	Link     string  `json:"link"`
	Source   string  `json:"source"`
	Score    float64 `json:"score"`
}

// Meta carries report-level diagnostics.
type Meta struct {
	TotalArticles int              `json:"total_articles"`
	PerCategory   map[Category]int `json:"per_category"`
	GeneratedAt   time.Time        `json:"generated_at"`
	AIUsed        bool             `json:"ai_used"`
}

// Report maps every defined category to its selected items, highest
// score first. Empty categories hold a single placeholder item.
type Report struct {
	Items map[Category][]ReportItem `json:"items"`
	Meta  Meta                      `json:"meta"`
}
