package cache

// ScopedKeyer wraps a Keyer with a prefix, so that several environments can
// share one Redis instance without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "aspectpath:prod:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer selects
// [NewDefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// SolutionKey returns the prefixed key of the inner keyer.
func (k *ScopedKeyer) SolutionKey(dataset, strategy, start, end string, distance int, preferred []string) string {
	return k.prefix + k.inner.SolutionKey(dataset, strategy, start, end, distance, preferred)
}
