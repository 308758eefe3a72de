package relevance

import "github.com/mlindner/spreewire/internal/news"

// Resolve scores the article against each candidate category and picks
// the strictly highest. Ties go to the earliest-inserted candidate, so
// resolution is stable across runs. The winner is written onto the
// article as FinalCategory/FinalScore, and the per-category scores are
// recorded for diagnostics.
func Resolve(a *news.Article) (news.Category, float64) {
	candidates := a.Candidates
	if len(candidates) == 0 {
		candidates = []news.Category{news.GlobalTech}
	}

	a.ScoresByCategory = make(map[news.Category]float64, len(candidates))

	best := candidates[0]
	bestScore := Score(*a, best)
	a.ScoresByCategory[best] = bestScore

	for _, cat := range candidates[1:] {
		s := Score(*a, cat)
		a.ScoresByCategory[cat] = s
		if s > bestScore {
			best = cat
			bestScore = s
		}
	}

	a.FinalCategory = best
	a.FinalScore = bestScore
	return best, bestScore
}
