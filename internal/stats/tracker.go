package stats

import (
	"errors"
	"fmt"
	"slices"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	ErrUnknownModel   = errors.New("unknown model")
	ErrModelCycle     = errors.New("model dependencies form a cycle")
	ErrDuplicateModel = errors.New("duplicate model")
)

// Tracker computes its models in dependency order. The order is resolved
// once, when the tracker is built.
type Tracker[C, R, S any] struct {
	models []Model[C, R, S]
}

// NewTracker orders models so that each one follows the models it requires.
// Generation and Size are always tracked and are added when missing.
// Independent models keep the order they were given in.
func NewTracker[C, R, S any](models ...Model[C, R, S]) (*Tracker[C, R, S], error) {
	all := make([]Model[C, R, S], 0, len(models)+2)
	index := make(map[string]int, len(models)+2)
	add := func(m Model[C, R, S]) error {
		if _, exists := index[m.Name()]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateModel, m.Name())
		}
		index[m.Name()] = len(all)
		all = append(all, m)
		return nil
	}

	for _, m := range []Model[C, R, S]{Generation[C, R, S](), Size[C, R, S]()} {
		if !slices.ContainsFunc(models, func(x Model[C, R, S]) bool { return x.Name() == m.Name() }) {
			_ = add(m)
		}
	}
	for _, m := range models {
		if err := add(m); err != nil {
			return nil, err
		}
	}

	g := simple.NewDirectedGraph()
	for i := range all {
		g.AddNode(simple.Node(i))
	}
	for i, m := range all {
		for _, req := range m.Requires() {
			j, ok := index[req]
			if !ok {
				return nil, fmt.Errorf("%w: %s requires %s", ErrUnknownModel, m.Name(), req)
			}
			if j == i {
				return nil, fmt.Errorf("%w: %s requires itself", ErrModelCycle, m.Name())
			}
			g.SetEdge(g.NewEdge(simple.Node(j), simple.Node(i)))
		}
	}

	sorted, err := topo.SortStabilized(g, func(nodes []graph.Node) {
		slices.SortFunc(nodes, func(a, b graph.Node) int {
			return int(a.ID() - b.ID())
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelCycle, err)
	}

	ordered := make([]Model[C, R, S], len(sorted))
	for i, n := range sorted {
		ordered[i] = all[n.ID()]
	}
	return &Tracker[C, R, S]{models: ordered}, nil
}

// Names lists the tracked models in computation order.
func (t *Tracker[C, R, S]) Names() []string {
	out := make([]string, len(t.models))
	for i, m := range t.models {
		out[i] = m.Name()
	}
	return out
}

// Snapshot computes every model for the given input.
func (t *Tracker[C, R, S]) Snapshot(in Input[C, R, S]) Snapshot {
	snap := newSnapshot(len(t.models))
	for _, m := range t.models {
		m.Compute(in, &snap)
	}
	return snap
}
