package scanner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ResearchScout/internal/domain"
)

// ErrUnknownScanner is returned when no strategy is registered under a name.
var ErrUnknownScanner = errors.New("scanner is not registered")

// Query carries all parameters required to execute one paper search.
type Query struct {
	Text       string
	MaxResults int
	From       time.Time
	To         time.Time
}

// Searcher captures a single paper-feed strategy implementation (arXiv, etc.).
type Searcher interface {
	Name() string
	Search(ctx context.Context, q Query) ([]domain.PaperRecord, error)
}

// Registry keeps a mapping from searcher names to their implementations.
type Registry struct {
	searchers map[string]Searcher
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{searchers: map[string]Searcher{}}
}

// Register adds or replaces a searcher implementation.
func (r *Registry) Register(searcher Searcher) {
	if r.searchers == nil {
		r.searchers = map[string]Searcher{}
	}
	r.searchers[searcher.Name()] = searcher
}

// Resolve returns a searcher by name or ErrUnknownScanner.
func (r *Registry) Resolve(name string) (Searcher, error) {
	if searcher, ok := r.searchers[name]; ok {
		return searcher, nil
	}
	return nil, fmt.Errorf("%s: %w", name, ErrUnknownScanner)
}
