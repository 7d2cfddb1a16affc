package domain

// Outcome carries collected items together with whether the collection itself
// worked, so "nothing found" and "fetch failed" stay distinguishable.
type Outcome[T any] struct {
	Items      []T
	Succeeded  bool
	Diagnostic string
}

// Succeed wraps items into a successful outcome.
func Succeed[T any](items []T) Outcome[T] {
	if items == nil {
		items = []T{}
	}
	return Outcome[T]{Items: items, Succeeded: true}
}

// Fail builds an outcome with no items and the given diagnostic.
func Fail[T any](diagnostic string) Outcome[T] {
	return Outcome[T]{Items: []T{}, Diagnostic: diagnostic}
}
