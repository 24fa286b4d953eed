// Package search finds the shortest chain of co-stars between two people.
//
// The traversal is a breadth-first search over the people graph: every
// person at hop distance k is queued before any person at distance k+1 is
// expanded, so the first time the target leaves the frontier it was reached
// through a minimum number of movies.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/vanshika/degrees/internal/domain"
)

// ErrUnknownPerson is returned when the source or target id is not in the
// graph. Callers resolve names to ids before searching.
var ErrUnknownPerson = errors.New("search: unknown person")

// cancelCheckInterval is how many expansions run between context checks.
const cancelCheckInterval = 64

// Graph is the read-only view the finder needs.
type Graph interface {
	NeighborsOf(personID string) []domain.Hop
	PersonExists(personID string) bool
}

// Options tunes a Finder.
type Options struct {
	// MaxDepth bounds the number of hops explored. People further away are
	// reported as not connected. Zero means unbounded.
	MaxDepth int
}

// Stats describes the work done by one search.
type Stats struct {
	Expanded int
	Enqueued int
}

// Finder runs shortest-path searches against a Graph. It holds no per-search
// state and may be used from multiple goroutines.
type Finder struct {
	graph Graph
	opts  Options
}

// NewFinder constructs a Finder over g.
func NewFinder(g Graph, opts Options) *Finder {
	if opts.MaxDepth < 0 {
		opts.MaxDepth = 0
	}
	return &Finder{graph: g, opts: opts}
}

// ShortestPath returns the hops from source to target. ok is false when no
// connection exists; that is a normal outcome and err stays nil. A search
// from a person to themselves returns an empty, non-nil path.
func (f *Finder) ShortestPath(ctx context.Context, source, target string) (hops []domain.Hop, ok bool, err error) {
	hops, ok, _, err = f.ShortestPathStats(ctx, source, target)
	return hops, ok, err
}

// ShortestPathStats is ShortestPath that also reports traversal counters.
func (f *Finder) ShortestPathStats(ctx context.Context, source, target string) ([]domain.Hop, bool, Stats, error) {
	var stats Stats
	if !f.graph.PersonExists(source) {
		return nil, false, stats, fmt.Errorf("%w: %s", ErrUnknownPerson, source)
	}
	if !f.graph.PersonExists(target) {
		return nil, false, stats, fmt.Errorf("%w: %s", ErrUnknownPerson, target)
	}
	if source == target {
		return []domain.Hop{}, true, stats, nil
	}

	var t tree
	frontier := NewQueueFrontier[int](64)
	frontier.Push(t.root(source))
	stats.Enqueued++

	seen := map[string]struct{}{source: {}}
	explored := make(map[string]struct{})

	for !frontier.Empty() {
		if stats.Expanded%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, false, stats, err
			}
		}

		idx, err := frontier.Pop()
		if err != nil {
			return nil, false, stats, err
		}
		current := t.nodes[idx]
		if current.state == target {
			return t.path(idx), true, stats, nil
		}

		explored[current.state] = struct{}{}
		stats.Expanded++
		if f.opts.MaxDepth > 0 && current.depth >= f.opts.MaxDepth {
			continue
		}

		for _, hop := range f.graph.NeighborsOf(current.state) {
			if _, ok := seen[hop.PersonID]; ok {
				continue
			}
			if _, ok := explored[hop.PersonID]; ok {
				continue
			}
			frontier.Push(t.child(idx, hop.PersonID, hop.MovieID))
			seen[hop.PersonID] = struct{}{}
			stats.Enqueued++
		}
	}

	return nil, false, stats, nil
}
