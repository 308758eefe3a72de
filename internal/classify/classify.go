package classify

import (
	"regexp"
	"strings"

	"github.com/mlindner/spreewire/internal/news"
)

// Rule groups are evaluated independently over the lower-cased
// title+body+source text; every group that matches contributes its
// category, so one article can legitimately carry several candidates.
// Resolution between them happens later, by relevance score.

// regionalPatterns match Berlin-area signals in the article text.
var regionalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bberlin\b`),
	regexp.MustCompile(`\bberliner\b`),
	regexp.MustCompile(`\bpotsdam\b`),
	regexp.MustCompile(`\bbrandenburg\b`),
	regexp.MustCompile(`\bkreuzberg\b`),
	regexp.MustCompile(`\badlershof\b`),
	regexp.MustCompile(`factory berlin`),
	regexp.MustCompile(`silicon allee`),
}

// regionalSources are publishers that cover the region by default.
var regionalSources = []string{
	"gründerszene",
	"tagesspiegel",
	"berliner zeitung",
	"deutsche startups",
	"silicon allee",
}

// topicalRules map keyword patterns to a category. Rules are data;
// adding one never touches control flow.
var topicalRules = []struct {
	re  *regexp.Regexp
	cat news.Category
}{
	{regexp.MustCompile(`series [a-e]\b|seed round|funding round|raise[sd]?\b|venture capital|investors?\b|accelerator|incubator|founders?\b|startups?\b`), news.Startups},
	{regexp.MustCompile(`\bai\b|artificial intelligence|machine learning|deep learning|\bllms?\b|neural network|foundation model|generative`), news.AIML},
	{regexp.MustCompile(`tech conference|\bsummit\b|\bmeetup\b|hackathon|demo day|\bexpo\b|keynote`), news.GlobalTech},
}

// Classify assigns candidate categories to the article and returns
// them. The result is never empty: an inbound source hint seeds the
// set, matching rule groups union into it, and an article nothing
// matched falls back to the default global category. Insertion order
// is preserved because resolution ties go to the earliest candidate.
func Classify(a *news.Article) []news.Category {
	text := strings.ToLower(a.Title + " " + a.Body + " " + a.Source)
	source := strings.ToLower(a.Source)

	if a.SourceHint.Valid() {
		a.AddCandidate(a.SourceHint)
	}

	if matchesRegion(text, source) {
		a.AddCandidate(news.BerlinTech)
	}

	for _, rule := range topicalRules {
		if rule.re.MatchString(text) {
			a.AddCandidate(rule.cat)
		}
	}

	if len(a.Candidates) == 0 {
		a.AddCandidate(news.GlobalTech)
	}
	return a.Candidates
}

func matchesRegion(text, source string) bool {
	for _, name := range regionalSources {
		if strings.Contains(source, name) {
			return true
		}
	}
	for _, re := range regionalPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
