package report

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mlindner/spreewire/internal/news"
	"github.com/mlindner/spreewire/internal/summary"
)

// TopPerCategory is how many articles each category keeps.
const TopPerCategory = 3

// placeholderDetails fills the details of an empty-category item.
var placeholderDetails = []string{
	"No qualifying articles were found in this category today.",
	"The category will fill up again as sources publish.",
	"Check the link below for ongoing coverage.",
}

// Assembler turns resolved articles into the final report.
type Assembler struct {
	sum *summary.Summarizer
	now func() time.Time
}

func NewAssembler(sum *summary.Summarizer) *Assembler {
	return &Assembler{sum: sum, now: time.Now}
}

// Assemble groups resolved articles by final category, keeps the top
// three per category by score, summarizes each selected article
// sequentially, and fills empty categories with a placeholder item.
// It always produces a structurally complete report, even for empty
// input.
func (asm *Assembler) Assemble(ctx context.Context, articles []news.Article) news.Report {
	grouped := make(map[news.Category][]news.Article)
	for _, a := range articles {
		grouped[a.FinalCategory] = append(grouped[a.FinalCategory], a)
	}

	r := news.Report{
		Items: make(map[news.Category][]news.ReportItem, len(news.AllCategories())),
		Meta: news.Meta{
			TotalArticles: len(articles),
			PerCategory:   make(map[news.Category]int, len(news.AllCategories())),
			GeneratedAt:   asm.now(),
		},
	}

	for _, cat := range news.AllCategories() {
		selected := grouped[cat]
		// Stable: equal scores keep their original relative order.
		sort.SliceStable(selected, func(i, j int) bool {
			return selected[i].FinalScore > selected[j].FinalScore
		})
		if len(selected) > TopPerCategory {
			selected = selected[:TopPerCategory]
		}

		r.Meta.PerCategory[cat] = len(grouped[cat])

		if len(selected) == 0 {
			r.Items[cat] = []news.ReportItem{placeholderItem(cat)}
			continue
		}

		items := make([]news.ReportItem, 0, len(selected))
		for _, a := range selected {
			items = append(items, news.ReportItem{
				Headline: a.Title,
				Details:  asm.sum.Summarize(ctx, a),
				Link:     a.Link,
				Source:   a.Source,
				Score:    a.FinalScore,
			})
		}
		r.Items[cat] = items
	}

	r.Meta.AIUsed = asm.sum.AIUsed()
	return r
}

func placeholderItem(cat news.Category) news.ReportItem {
	return news.ReportItem{
		Headline: fmt.Sprintf("No %s news found today", cat.Label()),
		Details:  strings.Join(placeholderDetails, "\n"),
		Link:     cat.FallbackLink(),
		Source:   "spreewire",
	}
}
