// Package pareto classifies individuals into Pareto frontiers: a lazy
// frontier view over a dominance graph, five ranking strategies and the
// archive shapes they return.
package pareto

import (
	"iter"
	"slices"

	"evoframe/internal/fitness"
)

// node is one solution of the dominance graph. Edges are indices into the
// node arena.
type node struct {
	dominated []int
	total     int
	remaining int
}

type viewState[H any] struct {
	handles []H
	compare func(a, b H) fitness.Ordering
	nodes   []node
	started bool
	done    bool
	level   int
	current []int
}

// View is a lazy sequence of non-dominated frontiers over a set of handles.
// Copies share their cursor, so a view is single-pass once advanced. The view
// borrows its handles: mutating what they refer to invalidates it.
type View[H any] struct {
	st *viewState[H]
}

// NewView builds a view over handles. compare(a, b) must return Less when a
// dominates b and Greater when b dominates a. Nothing is compared until the
// first frontier is requested.
func NewView[H any](handles []H, compare func(a, b H) fitness.Ordering) View[H] {
	return View[H]{st: &viewState[H]{handles: handles, compare: compare}}
}

func (s *viewState[H]) build() {
	s.nodes = make([]node, len(s.handles))
	for i := 0; i < len(s.handles); i++ {
		for j := i + 1; j < len(s.handles); j++ {
			switch s.compare(s.handles[i], s.handles[j]) {
			case fitness.Less:
				s.nodes[i].dominated = append(s.nodes[i].dominated, j)
				s.nodes[j].total++
				s.nodes[j].remaining++
			case fitness.Greater:
				s.nodes[j].dominated = append(s.nodes[j].dominated, i)
				s.nodes[i].total++
				s.nodes[i].remaining++
			}
		}
	}
}

// Next materialises the next frontier. It returns false once the view is
// exhausted.
func (v View[H]) Next() (Frontier[H], bool) {
	s := v.st
	if s == nil || s.done {
		return Frontier[H]{}, false
	}

	var members []int
	if !s.started {
		s.started = true
		s.build()
		for i := range s.nodes {
			if s.nodes[i].total == 0 {
				members = append(members, i)
			}
		}
	} else {
		for _, m := range s.current {
			for _, d := range s.nodes[m].dominated {
				s.nodes[d].remaining--
				if s.nodes[d].remaining == 0 {
					members = append(members, d)
				}
			}
		}
		slices.Sort(members)
	}

	if len(members) == 0 {
		s.done = true
		s.current = nil
		return Frontier[H]{}, false
	}
	s.level++
	s.current = members
	return Frontier[H]{level: s.level, members: members, st: s}, true
}

// All ranges over the remaining frontiers.
func (v View[H]) All() iter.Seq[Frontier[H]] {
	return func(yield func(Frontier[H]) bool) {
		for {
			f, ok := v.Next()
			if !ok || !yield(f) {
				return
			}
		}
	}
}

// Frontiers eagerly collects the handles of every frontier.
func Frontiers[H any](handles []H, compare func(a, b H) fitness.Ordering) [][]H {
	var out [][]H
	for f := range NewView(handles, compare).All() {
		out = append(out, f.Handles())
	}
	return out
}

// Frontier is one level of a view. Members keep the order of the input.
type Frontier[H any] struct {
	level   int
	members []int
	st      *viewState[H]
}

// Level is the 1-based rank of the frontier.
func (f Frontier[H]) Level() int {
	return f.level
}

func (f Frontier[H]) Len() int {
	return len(f.members)
}

func (f Frontier[H]) Handle(i int) H {
	return f.st.handles[f.members[i]]
}

func (f Frontier[H]) Handles() []H {
	out := make([]H, len(f.members))
	for i, m := range f.members {
		out[i] = f.st.handles[m]
	}
	return out
}

// Dominated returns the handles the i-th member dominates.
func (f Frontier[H]) Dominated(i int) []H {
	edges := f.st.nodes[f.members[i]].dominated
	out := make([]H, len(edges))
	for j, d := range edges {
		out[j] = f.st.handles[d]
	}
	return out
}

// DominatedCount is len(Dominated(i)) without allocating.
func (f Frontier[H]) DominatedCount(i int) int {
	return len(f.st.nodes[f.members[i]].dominated)
}

// DominatorsTotal is the number of handles dominating the i-th member.
func (f Frontier[H]) DominatorsTotal(i int) int {
	return f.st.nodes[f.members[i]].total
}
