package dedup

import "time"

// SeenTTL is how long a processed article id is remembered.
const SeenTTL = 30 * 24 * time.Hour

// SeenStore is the capability the deduplicator needs from storage.
type SeenStore interface {
	Seen(id string) (bool, error)
	MarkSeen(id, meta string, ttl time.Duration) error
}

// Deduplicator drops articles that a previous run already processed.
type Deduplicator struct {
	store SeenStore
}

func New(store SeenStore) *Deduplicator {
	return &Deduplicator{store: store}
}

// IsNew reports whether the id has not been processed before, and on
// "new" immediately records it so later runs skip it. The check and
// the write are not transactional: two concurrent runs can both see
// "new" for the same id. That produces a duplicate report entry at
// worst, and MarkSeen is an idempotent upsert, so the store itself
// never corrupts.
func (d *Deduplicator) IsNew(id, meta string) (bool, error) {
	seen, err := d.store.Seen(id)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}
	if err := d.store.MarkSeen(id, meta, SeenTTL); err != nil {
		return false, err
	}
	return true, nil
}
