package pareto

import (
	"fmt"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// Strategy names one of the ranking algorithms.
type Strategy uint8

const (
	Binary Strategy = iota
	Level
	AccumulatedLevel
	Strength
	AccumulatedStrength
)

func (s Strategy) String() string {
	switch s {
	case Binary:
		return "binary"
	case Level:
		return "level"
	case AccumulatedLevel:
		return "accumulated_level"
	case Strength:
		return "strength"
	case AccumulatedStrength:
		return "accumulated_strength"
	default:
		return "unknown"
	}
}

func ParseStrategy(name string) (Strategy, error) {
	for _, s := range []Strategy{Binary, Level, AccumulatedLevel, Strength, AccumulatedStrength} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown ranking strategy: %s", name)
}

// StrengthValue is the SPEA strength |dominated| / D written by strength ranking
// next to the real rank.
type StrengthValue float64

// Rank dispatches to the ranking strategy.
func Rank[C, R, S any](pop *population.Population[C, R, S], strategy Strategy, policy Policy) Archive[population.Individual[C, R, S]] {
	switch strategy {
	case Binary:
		return RankBinary(pop, policy)
	case Level:
		return RankLevel(pop, policy)
	case AccumulatedLevel:
		return RankAccumulatedLevel(pop, policy)
	case Strength:
		return RankStrength(pop, policy)
	case AccumulatedStrength:
		return RankAccumulatedStrength(pop, policy)
	default:
		panic(fmt.Sprintf("pareto: unknown ranking strategy %d", strategy))
	}
}

type ranker[C, R, S any] struct {
	pop     *population.Population[C, R, S]
	builder archiveBuilder[population.Individual[C, R, S]]
}

func newRanker[C, R, S any](pop *population.Population[C, R, S], policy Policy) *ranker[C, R, S] {
	return &ranker[C, R, S]{pop: pop, builder: archiveBuilder[population.Individual[C, R, S]]{policy: policy}}
}

// view builds a dominance view over population indices using the raw
// comparator.
func (r *ranker[C, R, S]) view() View[int] {
	handles := make([]int, r.pop.Len())
	for i := range handles {
		handles[i] = i
	}
	compare := r.pop.RawComparator()
	return NewView(handles, func(a, b int) fitness.Ordering {
		return compare(r.pop.At(a).Eval.Raw, r.pop.At(b).Eval.Raw)
	})
}

func (r *ranker[C, R, S]) tags(i int) *tag.Tags {
	return &r.pop.At(i).Tags
}

func (r *ranker[C, R, S]) members(indices []int) []*population.Individual[C, R, S] {
	out := make([]*population.Individual[C, R, S], len(indices))
	for i, idx := range indices {
		out[i] = r.pop.At(idx)
	}
	return out
}

func (r *ranker[C, R, S]) clear(reset func(*tag.Tags)) {
	for i := 0; i < r.pop.Len(); i++ {
		t := r.tags(i)
		tag.Put(t, tag.FrontierLevel(0))
		reset(t)
	}
}

// RankBinary splits the population into the non-dominated front and a
// single dominated bucket.
func RankBinary[C, R, S any](pop *population.Population[C, R, S], policy Policy) Archive[population.Individual[C, R, S]] {
	r := newRanker(pop, policy)
	r.clear(func(t *tag.Tags) { tag.Put(t, tag.RankUndefined) })
	if pop.Len() == 0 {
		return r.builder.archive
	}

	first, _ := r.view().Next()
	nondominated := make([]bool, pop.Len())
	front := first.Handles()
	for _, i := range front {
		nondominated[i] = true
		tag.Put(r.tags(i), tag.FrontierLevel(1))
		tag.Put(r.tags(i), tag.RankNondominated)
	}
	dominated := make([]int, 0, pop.Len()-len(front))
	for i := 0; i < pop.Len(); i++ {
		if nondominated[i] {
			continue
		}
		tag.Put(r.tags(i), tag.FrontierLevel(2))
		tag.Put(r.tags(i), tag.RankDominated)
		dominated = append(dominated, i)
	}

	r.builder.add(r.members(front))
	r.builder.add(r.members(dominated))
	return r.builder.archive
}

// RankLevel tags every member of frontier k with level and integer rank k.
func RankLevel[C, R, S any](pop *population.Population[C, R, S], policy Policy) Archive[population.Individual[C, R, S]] {
	r := newRanker(pop, policy)
	r.clear(func(t *tag.Tags) { tag.Put(t, tag.IntegerRank(0)) })

	for f := range r.view().All() {
		handles := f.Handles()
		for _, i := range handles {
			tag.Put(r.tags(i), tag.FrontierLevel(f.Level()))
			tag.Put(r.tags(i), tag.IntegerRank(f.Level()))
		}
		r.builder.add(r.members(handles))
	}
	return r.builder.archive
}

// RankAccumulatedLevel walks frontiers in order; each member first increments
// its own rank and then adds it to every individual it dominates.
func RankAccumulatedLevel[C, R, S any](pop *population.Population[C, R, S], policy Policy) Archive[population.Individual[C, R, S]] {
	r := newRanker(pop, policy)
	r.clear(func(t *tag.Tags) { tag.Put(t, tag.IntegerRank(0)) })

	for f := range r.view().All() {
		for i := 0; i < f.Len(); i++ {
			m := f.Handle(i)
			tag.Put(r.tags(m), tag.FrontierLevel(f.Level()))
			rank := tag.Get[tag.IntegerRank](*r.tags(m)) + 1
			tag.Put(r.tags(m), rank)
			for _, d := range f.Dominated(i) {
				tag.Update(r.tags(d), func(v tag.IntegerRank) tag.IntegerRank { return v + rank })
			}
		}
		r.builder.add(r.members(f.Handles()))
	}
	return r.builder.archive
}

// RankStrength is SPEA-style ranking. Every member contributes its strength
// |dominated| / D to the individuals it dominates, D being the number of
// dominated individuals, and every dominated individual gets a one-shot +1.
// Non-dominated individuals keep a real rank of zero; their strength is
// recorded in StrengthValue.
func RankStrength[C, R, S any](pop *population.Population[C, R, S], policy Policy) Archive[population.Individual[C, R, S]] {
	r := newRanker(pop, policy)
	r.clear(func(t *tag.Tags) {
		tag.Put(t, tag.RealRank(0))
		tag.Put(t, StrengthValue(0))
	})

	var frontiers []Frontier[int]
	nondominated := 0
	for f := range r.view().All() {
		if f.Level() == 1 {
			nondominated = f.Len()
		}
		frontiers = append(frontiers, f)
	}
	dominatedTotal := pop.Len() - nondominated

	for _, f := range frontiers {
		for i := 0; i < f.Len(); i++ {
			m := f.Handle(i)
			tag.Put(r.tags(m), tag.FrontierLevel(f.Level()))
			strength := 0.0
			if dominatedTotal > 0 {
				strength = float64(f.DominatedCount(i)) / float64(dominatedTotal)
			}
			tag.Put(r.tags(m), StrengthValue(strength))
			for _, d := range f.Dominated(i) {
				tag.Update(r.tags(d), func(v tag.RealRank) tag.RealRank { return v + tag.RealRank(strength) })
			}
		}
		if f.Level() > 1 {
			for _, m := range f.Handles() {
				tag.Update(r.tags(m), func(v tag.RealRank) tag.RealRank { return v + 1 })
			}
		}
		r.builder.add(r.members(f.Handles()))
	}
	return r.builder.archive
}

// RankAccumulatedStrength is SPEA2-style raw fitness: every member adds its
// dominated count to each individual it dominates, without normalisation.
func RankAccumulatedStrength[C, R, S any](pop *population.Population[C, R, S], policy Policy) Archive[population.Individual[C, R, S]] {
	r := newRanker(pop, policy)
	r.clear(func(t *tag.Tags) { tag.Put(t, tag.RealRank(0)) })

	for f := range r.view().All() {
		for i := 0; i < f.Len(); i++ {
			m := f.Handle(i)
			tag.Put(r.tags(m), tag.FrontierLevel(f.Level()))
			count := tag.RealRank(f.DominatedCount(i))
			for _, d := range f.Dominated(i) {
				tag.Update(r.tags(d), func(v tag.RealRank) tag.RealRank { return v + count })
			}
		}
		r.builder.add(r.members(f.Handles()))
	}
	return r.builder.archive
}
