package relevance

import (
	"math"
	"regexp"
	"strings"

	"github.com/mlindner/spreewire/internal/news"
)

// Component caps. The weights were tuned empirically against real feed
// data; treat them as a fixed contract.
const (
	capTitle   = 40.0
	capContent = 30.0
	capSource  = 15.0
	capLength  = 10.0
	capValue   = 25.0

	regionalBoost = 15.0
)

// Breakdown records how each component contributed to a score.
// Diagnostics only; nothing downstream reads it.
type Breakdown struct {
	TitleKeyword   float64
	ContentKeyword float64
	SourceQuality  float64
	Length         float64
	ContentValue   float64
	RegionalBoost  float64
	Final          float64
}

var categoryKeywords = map[news.Category][]string{
	news.BerlinTech: {
		"berlin", "potsdam", "brandenburg", "adlershof", "kreuzberg",
		"startup", "tech hub", "accelerator", "campus", "scene",
	},
	news.AIML: {
		"ai", "artificial intelligence", "machine learning", "deep learning",
		"llm", "model", "neural", "inference", "training", "generative",
	},
	news.Startups: {
		"startup", "funding", "series", "seed", "venture", "investor",
		"round", "founder", "valuation", "exit",
	},
	news.GlobalTech: {
		"technology", "software", "platform", "launch", "cloud",
		"chip", "app", "product", "release", "update",
	},
}

// regionVariants feed the regional boost: more than two occurrences in
// the combined text adds a flat 15 on top of the capped components.
var regionVariants = []string{"berlin", "berliner", "potsdam", "brandenburg"}

// sourceQuality maps publisher-name substrings to points (8–15). Only
// the single highest match counts.
var sourceQuality = map[string]float64{
	"reuters":           15,
	"bloomberg":         14,
	"deutsche startups": 13,
	"gründerszene":      13,
	"techcrunch":        12,
	"sifted":            12,
	"heise":             10,
	"t3n":               10,
	"tagesspiegel":      9,
	"the verge":         8,
}

// Content-value pattern tables. Within each list the first hit stops
// further checks in that list; the four lists run independently and
// their sum is clamped into [0, 25].
var fundingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`raise[sd]? [€$£]?\d+`),
	regexp.MustCompile(`series [a-e]\b`),
	regexp.MustCompile(`seed round`),
	regexp.MustCompile(`funding round`),
	regexp.MustCompile(`secure[sd]? (an? )?investment`),
	regexp.MustCompile(`million in funding`),
}

var marketPatterns = []*regexp.Regexp{
	regexp.MustCompile(`market analysis`),
	regexp.MustCompile(`report (shows|finds)`),
	regexp.MustCompile(`study (shows|finds)`),
	regexp.MustCompile(`forecast`),
	regexp.MustCompile(`industry trends?`),
}

var milestonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`launch(es|ed)?\b`),
	regexp.MustCompile(`acquire[sd]?\b|acquisition`),
	regexp.MustCompile(`\bipo\b`),
	regexp.MustCompile(`reach(es|ed)? \d+`),
	regexp.MustCompile(`opens? (an? )?(new )?office`),
	regexp.MustCompile(`partnership with`),
}

var promoPatterns = []*regexp.Regexp{
	regexp.MustCompile(`sponsored`),
	regexp.MustCompile(`advertorial`),
	regexp.MustCompile(`buy now`),
	regexp.MustCompile(`discount`),
	regexp.MustCompile(`limited (time )?offer`),
	regexp.MustCompile(`sign up today`),
	regexp.MustCompile(`\bwebinar\b`),
}

// Score computes the article's relevance against one candidate
// category. Deterministic and pure over the article's text.
func Score(a news.Article, cat news.Category) float64 {
	return ScoreWithBreakdown(a, cat).Final
}

// ScoreWithBreakdown computes a relevance score with component detail.
func ScoreWithBreakdown(a news.Article, cat news.Category) Breakdown {
	title := strings.ToLower(a.Title)
	body := strings.ToLower(a.Body)
	combined := title + " " + body

	b := Breakdown{
		TitleKeyword:   titleKeywordScore(title, cat),
		ContentKeyword: contentKeywordScore(body, cat),
		SourceQuality:  sourceQualityScore(strings.ToLower(a.Source)),
		Length:         lengthScore(len(a.Body)),
		ContentValue:   contentValueScore(combined),
	}
	if cat == news.BerlinTech && regionMentions(combined) > 2 {
		b.RegionalBoost = regionalBoost
	}
	b.Final = b.TitleKeyword + b.ContentKeyword + b.SourceQuality + b.Length + b.ContentValue + b.RegionalBoost
	return b
}

// titleKeywordScore awards 4 + 8*(1 - pos/len) per keyword found in
// the title, so earlier occurrences score higher. Capped at 40.
func titleKeywordScore(title string, cat news.Category) float64 {
	if title == "" {
		return 0
	}
	var sum float64
	for _, kw := range categoryKeywords[cat] {
		pos := strings.Index(title, kw)
		if pos < 0 {
			continue
		}
		sum += 4 + 8*(1-float64(pos)/float64(len(title)))
	}
	return math.Min(sum, capTitle)
}

// contentKeywordScore awards min(8, 2 + 3*ln(occurrences)) per keyword
// present in the body. Capped at 30.
func contentKeywordScore(body string, cat news.Category) float64 {
	if body == "" {
		return 0
	}
	var sum float64
	for _, kw := range categoryKeywords[cat] {
		occ := strings.Count(body, kw)
		if occ == 0 {
			continue
		}
		sum += math.Min(8, 2+3*math.Log(float64(occ)))
	}
	return math.Min(sum, capContent)
}

func sourceQualityScore(source string) float64 {
	var best float64
	for substr, pts := range sourceQuality {
		if strings.Contains(source, substr) && pts > best {
			best = pts
		}
	}
	return math.Min(best, capSource)
}

func lengthScore(contentLength int) float64 {
	if contentLength < 100 {
		contentLength = 100
	}
	return math.Min(capLength, 1.5*math.Log(float64(contentLength)))
}

// contentValueScore rewards substantive news signals and penalizes
// promotional language. Each pattern list is first-hit-stops; the four
// contributions sum and clamp into [0, 25].
func contentValueScore(text string) float64 {
	var value float64
	if matchAny(fundingPatterns, text) {
		value += 15
	}
	if matchAny(marketPatterns, text) {
		value += 10
	}
	if matchAny(milestonePatterns, text) {
		value += 12
	}
	if matchAny(promoPatterns, text) {
		value -= 15
	}
	return math.Max(0, math.Min(value, capValue))
}

func matchAny(patterns []*regexp.Regexp, text string) bool {
	for _, re := range patterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func regionMentions(text string) int {
	count := 0
	for _, v := range regionVariants {
		count += strings.Count(text, v)
	}
	return count
}
