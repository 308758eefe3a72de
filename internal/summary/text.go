package summary

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	sentenceRe  = regexp.MustCompile(`[^.!?]+[.!?]+`)
	numberingRe = regexp.MustCompile(`(?m)^\s*(\d+[.)\]]|[-•*])\s*`)
)

func stripEchoes(text string) string {
	for _, phrase := range instructionEchoes {
		for {
			idx := strings.Index(strings.ToLower(text), phrase)
			if idx < 0 {
				break
			}
			text = text[:idx] + text[idx+len(phrase):]
		}
	}
	return text
}

func stripNumbering(text string) string {
	return numberingRe.ReplaceAllString(text, "")
}

// splitSentences splits on terminal punctuation and trims whitespace.
func splitSentences(text string) []string {
	var out []string
	for _, m := range sentenceRe.FindAllString(text, -1) {
		s := strings.Join(strings.Fields(m), " ")
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stripHTML drops tags and collapses repeated whitespace.
func stripHTML(s string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
