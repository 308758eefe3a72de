package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/mlindner/spreewire/internal/classify"
	"github.com/mlindner/spreewire/internal/dedup"
	"github.com/mlindner/spreewire/internal/news"
	"github.com/mlindner/spreewire/internal/recency"
	"github.com/mlindner/spreewire/internal/relevance"
	"github.com/mlindner/spreewire/internal/report"
	"github.com/mlindner/spreewire/internal/summary"
)

// Deps wires the collaborators into the pipeline.
type Deps struct {
	Seen       dedup.SeenStore
	Summarizer *summary.Summarizer
	Window     time.Duration
	Now        func() time.Time
}

// Pipeline runs the core stages: recency filter, dedup, classify,
// resolve, assemble. It always produces a report; degraded inputs
// degrade the content, never the structure.
type Pipeline struct {
	dedup  *dedup.Deduplicator
	sum    *summary.Summarizer
	window time.Duration
	now    func() time.Time

	// Warnings collects non-fatal per-article problems from the last
	// run, for the caller to log.
	Warnings []string
}

func New(deps Deps) *Pipeline {
	if deps.Window <= 0 {
		deps.Window = recency.DefaultWindow
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	var d *dedup.Deduplicator
	if deps.Seen != nil {
		d = dedup.New(deps.Seen)
	}
	return &Pipeline{
		dedup:  d,
		sum:    deps.Summarizer,
		window: deps.Window,
		now:    deps.Now,
	}
}

// Run takes raw ingested articles and produces the report.
func (p *Pipeline) Run(ctx context.Context, raw []news.Article) news.Report {
	p.Warnings = nil
	now := p.now()

	var survivors []news.Article
	for _, a := range raw {
		if a.ID == "" {
			p.Warnings = append(p.Warnings, fmt.Sprintf("skipping id-less article %q", a.Title))
			continue
		}
		if !recency.IsRecent(a.Published, now, p.window) {
			continue
		}
		if p.dedup != nil {
			isNew, err := p.dedup.IsNew(a.ID, a.Title)
			if err != nil {
				// Storage trouble must not block the report; process
				// the article and risk a duplicate next run.
				p.Warnings = append(p.Warnings, fmt.Sprintf("seen-store error for %s: %v", a.ID, err))
			} else if !isNew {
				continue
			}
		}
		survivors = append(survivors, a)
	}

	for i := range survivors {
		classify.Classify(&survivors[i])
		relevance.Resolve(&survivors[i])
	}

	return report.NewAssembler(p.sum).Assemble(ctx, survivors)
}
