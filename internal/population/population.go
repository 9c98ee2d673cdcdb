package population

import (
	"fmt"
	"slices"

	"evoframe/internal/fitness"
)

type options struct {
	capacity      int
	targetSize    int
	hasTarget     bool
	stableScaling bool
}

type Option func(*options)

// WithCapacity preallocates room for n individuals.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithTargetSize sets the size the driver trims the population toward.
func WithTargetSize(n int) Option {
	return func(o *options) {
		o.targetSize = n
		o.hasTarget = true
	}
}

// WithStableScaling declares that scaled fitness follows raw fitness order.
func WithStableScaling(stable bool) Option {
	return func(o *options) {
		o.stableScaling = stable
	}
}

// Replacement pairs the index of a parent with the child taking its slot.
type Replacement[C, R, S any] struct {
	Parent int
	Child  Individual[C, R, S]
}

// Population is an ordered collection of individuals with the comparators of
// both fitnesses and a lazily maintained sort state.
//
// Slices and pointers handed out by a population stay valid only until the
// next Insert, Replace, Trim or Sort.
type Population[C, R, S any] struct {
	individuals   []Individual[C, R, S]
	raw           fitness.Comparator[R]
	scaled        fitness.Comparator[S]
	targetSize    int
	hasTarget     bool
	stableScaling bool
	sorted        SortState
}

// New creates an empty population. A nil scaled comparator disables ordering
// by scaled fitness.
func New[C, R, S any](raw fitness.Comparator[R], scaled fitness.Comparator[S], opts ...Option) *Population[C, R, S] {
	if raw == nil {
		panic("population: raw comparator is required")
	}
	if scaled == nil {
		scaled = fitness.Disabled[S]()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Population[C, R, S]{
		individuals:   make([]Individual[C, R, S], 0, o.capacity),
		raw:           raw,
		scaled:        scaled,
		targetSize:    o.targetSize,
		hasTarget:     o.hasTarget,
		stableScaling: o.stableScaling,
	}
}

func (p *Population[C, R, S]) Len() int {
	return len(p.individuals)
}

func (p *Population[C, R, S]) Cap() int {
	return cap(p.individuals)
}

// Individuals returns the live backing slice.
func (p *Population[C, R, S]) Individuals() []Individual[C, R, S] {
	return p.individuals
}

func (p *Population[C, R, S]) At(i int) *Individual[C, R, S] {
	return &p.individuals[i]
}

func (p *Population[C, R, S]) RawComparator() fitness.Comparator[R] {
	return p.raw
}

func (p *Population[C, R, S]) ScaledComparator() fitness.Comparator[S] {
	return p.scaled
}

// ScalingEnabled reports whether the scaled fitness carries data.
func (p *Population[C, R, S]) ScalingEnabled() bool {
	return !fitness.IsEmpty[S]()
}

// Compare returns an individual comparator for the fitness kind.
func (p *Population[C, R, S]) Compare(kind Kind) func(a, b *Individual[C, R, S]) fitness.Ordering {
	if kind == Scaled {
		return func(a, b *Individual[C, R, S]) fitness.Ordering {
			return p.scaled(a.Eval.Scaled, b.Eval.Scaled)
		}
	}
	return func(a, b *Individual[C, R, S]) fitness.Ordering {
		return p.raw(a.Eval.Raw, b.Eval.Raw)
	}
}

func (p *Population[C, R, S]) TargetSize() (int, bool) {
	return p.targetSize, p.hasTarget
}

func (p *Population[C, R, S]) SetTargetSize(n int) {
	p.targetSize = n
	p.hasTarget = true
}

func (p *Population[C, R, S]) ClearTargetSize() {
	p.targetSize = 0
	p.hasTarget = false
}

func (p *Population[C, R, S]) StableScaling() bool {
	return p.stableScaling
}

func (p *Population[C, R, S]) SetStableScaling(stable bool) {
	p.stableScaling = stable
	if !stable && p.sorted == SortedBoth {
		p.sorted = SortedNone
	}
}

func (p *Population[C, R, S]) SortedBy() SortState {
	return p.sorted
}

// Invalidate forgets the sort state. Callers that rewrite fitness in place
// (scaling, projection) use it.
func (p *Population[C, R, S]) Invalidate() {
	p.sorted = SortedNone
}

// Insert appends individuals and returns a view over the new suffix.
func (p *Population[C, R, S]) Insert(individuals ...Individual[C, R, S]) []Individual[C, R, S] {
	start := len(p.individuals)
	p.individuals = append(p.individuals, individuals...)
	p.sorted = SortedNone
	return p.individuals[start:]
}

// Replace moves every child into its parent's slot and returns the displaced
// parents in pair order.
func (p *Population[C, R, S]) Replace(pairs []Replacement[C, R, S]) []Individual[C, R, S] {
	removed := make([]Individual[C, R, S], 0, len(pairs))
	for _, pair := range pairs {
		if pair.Parent < 0 || pair.Parent >= len(p.individuals) {
			panic(fmt.Sprintf("population: parent index %d outside population of %d", pair.Parent, len(p.individuals)))
		}
		removed = append(removed, p.individuals[pair.Parent])
		p.individuals[pair.Parent] = pair.Child
	}
	p.sorted = SortedNone
	return removed
}

// RemoveFunc removes every individual for which del returns true and
// returns them. del is called once per individual, in order. Survivors
// keep their relative order, so the sort state is kept.
func (p *Population[C, R, S]) RemoveFunc(del func(ind *Individual[C, R, S]) bool) []Individual[C, R, S] {
	var removed []Individual[C, R, S]
	kept := p.individuals[:0]
	for i := range p.individuals {
		if del(&p.individuals[i]) {
			removed = append(removed, p.individuals[i])
			continue
		}
		kept = append(kept, p.individuals[i])
	}
	clear(p.individuals[len(kept):])
	p.individuals = kept
	return removed
}

// Trim removes the last individual.
func (p *Population[C, R, S]) Trim() []Individual[C, R, S] {
	return p.TrimN(1)
}

// TrimN removes up to k individuals from the tail.
func (p *Population[C, R, S]) TrimN(k int) []Individual[C, R, S] {
	if k <= 0 {
		return nil
	}
	return p.TrimTo(len(p.individuals) - k)
}

// TrimTo shrinks the population to at most n individuals.
func (p *Population[C, R, S]) TrimTo(n int) []Individual[C, R, S] {
	if n < 0 {
		n = 0
	}
	if n >= len(p.individuals) {
		return nil
	}
	removed := slices.Clone(p.individuals[n:])
	clear(p.individuals[n:])
	p.individuals = p.individuals[:n]
	return removed
}

func (p *Population[C, R, S]) TrimAll() []Individual[C, R, S] {
	return p.TrimTo(0)
}

// TrimToTarget trims toward the target size when one is set.
func (p *Population[C, R, S]) TrimToTarget() []Individual[C, R, S] {
	if !p.hasTarget {
		return nil
	}
	return p.TrimTo(p.targetSize)
}

// Sort stable-sorts best first by the given fitness. It is a no-op when the
// population is already sorted by that fitness.
//
// With stable scaling a sort by one fitness also counts as a sort by the
// other, but only after the other order has been checked to hold.
func (p *Population[C, R, S]) Sort(kind Kind) {
	if p.sorted.Covers(kind) {
		return
	}
	compare := p.Compare(kind)
	slices.SortStableFunc(p.individuals, func(a, b Individual[C, R, S]) int {
		return compare(&a, &b).Sign()
	})

	other := Scaled
	state := SortedRaw
	if kind == Scaled {
		other = Raw
		state = SortedScaled
	}
	if p.stableScaling && p.ScalingEnabled() && p.orderedBy(other) {
		state = SortedBoth
	}
	p.sorted = state
}

func (p *Population[C, R, S]) orderedBy(kind Kind) bool {
	compare := p.Compare(kind)
	for i := 1; i < len(p.individuals); i++ {
		if compare(&p.individuals[i-1], &p.individuals[i]) == fitness.Greater {
			return false
		}
	}
	return true
}

// Extremes returns the worst and best individuals by the given fitness, or
// nils for an empty population. It is O(1) when already sorted.
func (p *Population[C, R, S]) Extremes(kind Kind) (worst, best *Individual[C, R, S]) {
	n := len(p.individuals)
	if n == 0 {
		return nil, nil
	}
	if p.sorted.Covers(kind) {
		return &p.individuals[n-1], &p.individuals[0]
	}
	compare := p.Compare(kind)
	worst, best = &p.individuals[0], &p.individuals[0]
	for i := 1; i < n; i++ {
		candidate := &p.individuals[i]
		if compare(candidate, best) == fitness.Less {
			best = candidate
		}
		if compare(candidate, worst) == fitness.Greater {
			worst = candidate
		}
	}
	return worst, best
}
