package recency

import "time"

// DefaultWindow is the rolling eligibility window for articles.
const DefaultWindow = 24 * time.Hour

// IsRecent reports whether published falls inside the window ending at
// now. The lower boundary is inclusive: an article exactly window old
// passes. A zero timestamp (missing or unparseable date) is rejected.
func IsRecent(published, now time.Time, window time.Duration) bool {
	if published.IsZero() {
		return false
	}
	return !published.Before(now.Add(-window))
}
