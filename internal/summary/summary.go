package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/mlindner/spreewire/internal/ai"
	"github.com/mlindner/spreewire/internal/news"
)

const promptTemplate = `Provide exactly 3 sentences of new information about this article, one sentence per line. Do not restate the title.

Title: %s

Article: %s`

// noContentLines is returned verbatim when an article has no body.
var noContentLines = []string{
	"No article content was available for this item.",
	"The source feed provided only a headline.",
	"Follow the link for the full story.",
}

// fillerPool pads a usable but short generated summary. Entries are
// drawn in fixed order, without replacement, so output is reproducible.
var fillerPool = []string{
	"Additional background is available at the original link.",
	"The article did not provide further detail beyond this.",
	"See the source for the complete report.",
}

// bodyFiller pads the deterministic body-derived fallback.
const bodyFiller = "No further details were provided by the source."

// instructionEchoes are phrases the generation model tends to repeat
// back from the prompt. They are stripped from output, and a summary
// that still leaks one is discarded entirely.
var instructionEchoes = []string{
	"provide exactly 3 sentences",
	"exactly 3 sentences",
	"three sentences",
	"one sentence per line",
	"do not restate the title",
	"new information about this article",
	"here is a summary",
	"here are",
	"sure,",
}

// Summarizer produces a fixed-shape three-line summary per article.
// Generation is best-effort: every failure mode lands on a
// deterministic fallback, and Summarize never returns an error.
type Summarizer struct {
	gen    ai.Generator // nil when generation is disabled
	aiUsed bool
}

func New(gen ai.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// AIUsed reports whether any summary in this run actually came from
// the generation service. Feeds the report's aiUsed metadata flag.
func (s *Summarizer) AIUsed() bool {
	return s.aiUsed
}

// Summarize returns exactly three newline-joined non-empty sentences
// for the article, walking the fallback chain as needed.
func (s *Summarizer) Summarize(ctx context.Context, a news.Article) string {
	if strings.TrimSpace(a.Body) == "" {
		return strings.Join(noContentLines, "\n")
	}

	prompt := fmt.Sprintf(promptTemplate, a.Title, a.Body)

	if s.gen == nil {
		return s.fallback(a)
	}
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return s.fallback(a)
	}

	lines, ok := postProcess(text, prompt, a.Title)
	if !ok {
		return s.fallback(a)
	}

	s.aiUsed = true
	return strings.Join(lines, "\n")
}

// postProcess cleans generated text into exactly three lines, or
// reports that the output is unusable.
func postProcess(text, prompt, title string) ([]string, bool) {
	cleaned := strings.ReplaceAll(text, prompt, "")
	cleaned = stripEchoes(cleaned)
	cleaned = stripNumbering(cleaned)

	sentences := splitSentences(cleaned)
	if len(sentences) == 0 {
		sentences = nonEmptyLines(cleaned)
	}
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}

	kept := strings.ToLower(strings.Join(sentences, " "))
	if title != "" && strings.Contains(kept, strings.ToLower(title)) {
		return nil, false
	}
	for _, phrase := range instructionEchoes {
		if strings.Contains(kept, phrase) {
			return nil, false
		}
	}
	if len(sentences) == 0 {
		return nil, false
	}

	for i := 0; len(sentences) < 3 && i < len(fillerPool); i++ {
		sentences = append(sentences, fillerPool[i])
	}
	return sentences, len(sentences) == 3
}

// fallback derives up to three sentences straight from the article
// body, HTML and repeated whitespace stripped, padded to exactly three.
func (s *Summarizer) fallback(a news.Article) string {
	text := stripHTML(a.Body)
	sentences := splitSentences(text)
	if len(sentences) > 3 {
		sentences = sentences[:3]
	}
	for len(sentences) < 3 {
		sentences = append(sentences, bodyFiller)
	}
	return strings.Join(sentences, "\n")
}
