package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Record is the accumulated configuration: one fragment per used step, in
// the order the steps were used. A Record returned by Node.End is never
// modified again.
type Record struct {
	fragments map[Step]any
	order     []Step
}

func (r *Record) clone() *Record {
	return &Record{fragments: maps.Clone(r.fragments), order: slices.Clone(r.order)}
}

// Has reports whether the step was used.
func (r *Record) Has(step Step) bool {
	if r == nil {
		return false
	}
	_, ok := r.fragments[step]
	return ok
}

// Used returns the used steps in order.
func (r *Record) Used() []Step {
	if r == nil {
		return nil
	}
	return slices.Clone(r.order)
}

// Fragment returns the raw fragment stored by a step.
func (r *Record) Fragment(step Step) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.fragments[step]
	return v, ok
}

// Get returns the fragment of step as T. The second result is false when
// the step was not used or its fragment is not a T.
func Get[T any](r *Record, step Step) (T, bool) {
	var zero T
	v, ok := r.Fragment(step)
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

func (r *Record) String() string {
	names := make([]string, len(r.order))
	for i, s := range r.order {
		names[i] = s.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Node is one value of the configuration chain. Apply never modifies the
// receiver; it returns a new node. The first failure is kept and every later
// Apply is a no-op, so a chain can be checked once at End.
type Node struct {
	entries *EntryMap
	record  *Record
	err     error
}

// Start begins a chain on m with Begin already used.
func Start(m *EntryMap) Node {
	return Node{
		entries: m,
		record:  &Record{fragments: map[Step]any{Begin: nil}, order: []Step{Begin}},
	}
}

func (n Node) used() stepSet {
	var s stepSet
	for _, step := range n.record.order {
		s = s.with(step)
	}
	return s
}

// unlocked is the union of the unlock sets of every used step, evaluated
// against the current record, minus the used steps.
func (n Node) unlocked() stepSet {
	used := n.used()
	var s stepSet
	for _, step := range n.record.order {
		entry, ok := n.entries.Entry(step)
		if !ok {
			continue
		}
		for _, u := range entry.Unlocks.Resolve(n.record) {
			s = s.with(u)
		}
	}
	return s &^ used
}

func (n Node) missing(step Step) []Step {
	entry, ok := n.entries.Entry(step)
	if !ok {
		return nil
	}
	var out []Step
	for _, req := range entry.Requires {
		if !n.record.Has(req) {
			out = append(out, req)
		}
	}
	return out
}

// Check reports why step cannot be applied, or nil if it can.
func (n Node) Check(step Step) error {
	if n.entries == nil {
		return &StepError{Step: step, Err: fmt.Errorf("%w: chain was not started", ErrInvalidEntry)}
	}
	if !step.Valid() {
		return &StepError{Step: step, Err: ErrUnknownStep}
	}
	if n.record.Has(step) {
		return &StepError{Step: step, Err: ErrStepUsed}
	}
	if _, ok := n.entries.Entry(step); !ok || !n.unlocked().has(step) {
		return &StepError{Step: step, Err: ErrStepUnavailable}
	}
	if missing := n.missing(step); len(missing) > 0 {
		return &StepError{Step: step, Err: fmt.Errorf("%w: %s", ErrRequirementUnmet, missing[0])}
	}
	return nil
}

// Available lists the steps that can be applied next.
func (n Node) Available() []Step {
	if n.err != nil || n.entries == nil {
		return nil
	}
	var out []Step
	for _, step := range n.unlocked().steps() {
		if len(n.missing(step)) == 0 {
			out = append(out, step)
		}
	}
	return out
}

// Apply uses step with the given fragment.
func (n Node) Apply(step Step, fragment any) Node {
	if n.err != nil {
		return n
	}
	if err := n.Check(step); err != nil {
		n.err = err
		return n
	}
	next := n.record.clone()
	next.fragments[step] = fragment
	next.order = append(next.order, step)
	return Node{entries: n.entries, record: next}
}

// Err is the first failure recorded along the chain.
func (n Node) Err() error {
	return n.err
}

// Record exposes the record built so far.
func (n Node) Record() *Record {
	return n.record
}

// End closes the chain and returns its record.
func (n Node) End() (*Record, error) {
	if n.err != nil {
		return nil, n.err
	}
	if n.entries == nil {
		return nil, fmt.Errorf("%w: chain was not started", ErrInvalidEntry)
	}
	return n.record.clone(), nil
}
