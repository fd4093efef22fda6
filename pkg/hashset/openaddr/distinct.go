package openaddr

import "github.com/pkg/errors"

// DistinctElements returns the number of distinct elements in items by
// adding them all to a fresh Set. An empty slice is an error rather than
// zero; callers that want zero should check len(items) first.
func DistinctElements[K comparable](items []K) (int, error) {
	if len(items) == 0 {
		return 0, errors.WithStack(ErrEmptyInput)
	}
	set := New[K]()
	for _, item := range items {
		set.Add(item)
	}
	return set.Len(), nil
}
