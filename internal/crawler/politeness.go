package crawler

import "sync"

// visitTracker records canonical URLs that have already been processed.
// Safe for concurrent use by the collector's callbacks.
type visitTracker struct {
	seen sync.Map
}

func newVisitTracker() *visitTracker {
	return &visitTracker{}
}

// MarkIfNew atomically records the URL and reports whether this call was
// the first to see it.
func (t *visitTracker) MarkIfNew(canonical string) bool {
	_, loaded := t.seen.LoadOrStore(canonical, struct{}{})
	return !loaded
}

// Seen reports whether the URL was already recorded, without recording it.
func (t *visitTracker) Seen(canonical string) bool {
	_, ok := t.seen.Load(canonical)
	return ok
}
