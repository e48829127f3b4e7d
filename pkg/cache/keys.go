package cache

import (
	"slices"
	"strconv"
)

// Keyer derives cache keys.
type Keyer interface {
	// SolutionKey returns the key for the solution of one problem found
	// with the named search strategy. preferred must not depend on
	// insertion order.
	SolutionKey(dataset, strategy, start, end string, distance int, preferred []string) string
}

// DefaultKeyer hashes every key component.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SolutionKey returns "solution:<sha256>" over all components. The
// preferred set is sorted first so equal sets produce equal keys.
func (DefaultKeyer) SolutionKey(dataset, strategy, start, end string, distance int, preferred []string) string {
	pref := slices.Sorted(slices.Values(preferred))
	pref = slices.Compact(pref)
	return hashKey("solution", dataset, strategy, start, end, strconv.Itoa(distance), pref)
}

var _ Keyer = DefaultKeyer{}
