package config

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Rule yields the steps an entry unlocks. Conditional rules inspect the
// record accumulated so far.
type Rule interface {
	Resolve(r *Record) []Step
	// Mentions lists every step the rule can yield, for validation.
	Mentions() []Step
}

type staticRule []Step

func (s staticRule) Resolve(*Record) []Step { return s }
func (s staticRule) Mentions() []Step { return s }

// Unlock is a rule that always yields the given steps.
func Unlock(steps ...Step) Rule {
	return staticRule(steps)
}

type condRule struct {
	cond      func(r *Record) bool
	then, els Rule
}

func (c condRule) Resolve(r *Record) []Step {
	if c.cond(r) {
		return c.then.Resolve(r)
	}
	return c.els.Resolve(r)
}

func (c condRule) Mentions() []Step {
	return append(append([]Step(nil), c.then.Mentions()...), c.els.Mentions()...)
}

// If picks then or els depending on cond, evaluated each time availability
// is queried.
func If(cond func(r *Record) bool, then, els Rule) Rule {
	if then == nil {
		then = Unlock()
	}
	if els == nil {
		els = Unlock()
	}
	return condRule{cond: cond, then: then, els: els}
}

type unionRule []Rule

func (u unionRule) Resolve(r *Record) []Step {
	var out []Step
	for _, rule := range u {
		out = append(out, rule.Resolve(r)...)
	}
	return out
}

func (u unionRule) Mentions() []Step {
	var out []Step
	for _, rule := range u {
		out = append(out, rule.Mentions()...)
	}
	return out
}

// Union yields the steps of every rule.
func Union(rules ...Rule) Rule {
	return unionRule(rules)
}

// Entry is one row of an entry map.
type Entry struct {
	Unlocks  Rule
	Requires []Step
}

// EntryMap is a validated table of entries. The Begin row describes the
// steps available before anything else is used.
type EntryMap struct {
	name    string
	entries [stepCount]*Entry
}

// NewEntryMap validates the rows and returns the map. Every referenced step
// must be known, Begin must have a row and requirements must be acyclic.
func NewEntryMap(name string, rows map[Step]Entry) (*EntryMap, error) {
	m := &EntryMap{name: name}
	if _, ok := rows[Begin]; !ok {
		return nil, fmt.Errorf("%w: entry map %s has no %s row", ErrInvalidEntry, name, Begin)
	}

	g := simple.NewDirectedGraph()
	for step := Step(0); step < stepCount; step++ {
		g.AddNode(simple.Node(step))
	}

	for step, row := range rows {
		if !step.Valid() {
			return nil, &StepError{Step: step, Err: ErrUnknownStep}
		}
		if row.Unlocks == nil {
			row.Unlocks = Unlock()
		}
		for _, s := range row.Unlocks.Mentions() {
			if !s.Valid() {
				return nil, &StepError{Step: step, Err: fmt.Errorf("%w: unlocks %s", ErrUnknownStep, s)}
			}
		}
		for _, req := range row.Requires {
			if !req.Valid() {
				return nil, &StepError{Step: step, Err: fmt.Errorf("%w: requires %s", ErrUnknownStep, req)}
			}
			if req == step {
				return nil, &StepError{Step: step, Err: fmt.Errorf("%w: requires itself", ErrInvalidEntry)}
			}
			g.SetEdge(g.NewEdge(simple.Node(req), simple.Node(step)))
		}
		entry := row
		m.entries[step] = &entry
	}

	if _, err := topo.Sort(g); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCyclicEntryMap, name, err)
	}
	return m, nil
}

// MustEntryMap is NewEntryMap for package-level maps known to be valid.
func MustEntryMap(name string, rows map[Step]Entry) *EntryMap {
	m, err := NewEntryMap(name, rows)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *EntryMap) Name() string {
	return m.name
}

// Entry returns the row of a step, if any.
func (m *EntryMap) Entry(step Step) (Entry, bool) {
	if !step.Valid() || m.entries[step] == nil {
		return Entry{}, false
	}
	return *m.entries[step], true
}
