package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mlindner/spreewire/internal/news"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	categoryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginTop(1)

	headlineStyle = lipgloss.NewStyle().
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			PaddingLeft(2)

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Report renders a digest for the terminal. Output order follows the
// canonical category order; items keep their selection order.
func Report(r news.Report) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("spreewire digest — %s", r.Meta.GeneratedAt.Format("Mon Jan 2 15:04"))))
	b.WriteString("\n")
	mode := "fallback summaries"
	if r.Meta.AIUsed {
		mode = "AI summaries"
	}
	b.WriteString(metaStyle.Render(fmt.Sprintf("%d articles scanned · %s", r.Meta.TotalArticles, mode)))
	b.WriteString("\n")

	for _, cat := range news.AllCategories() {
		b.WriteString(categoryStyle.Render(fmt.Sprintf("%s (%d)", cat.Label(), r.Meta.PerCategory[cat])))
		b.WriteString("\n")

		for _, item := range r.Items[cat] {
			head := headlineStyle.Render(item.Headline)
			if item.Score > 0 {
				head += " " + scoreStyle.Render(fmt.Sprintf("[%.1f]", item.Score))
			}
			b.WriteString(head)
			b.WriteString("\n")
			b.WriteString(detailStyle.Render(item.Details))
			b.WriteString("\n")
			b.WriteString(metaStyle.Render(fmt.Sprintf("  %s · %s", item.Source, item.Link)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
