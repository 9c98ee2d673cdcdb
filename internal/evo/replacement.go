package evo

import (
	"math/rand"
	"slices"

	"evoframe/internal/fitness"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// ReplaceParents puts each child into the slot of its parent. When a parent
// was selected more than once only its first child is kept.
type ReplaceParents[C, R, S any] struct{}

func (ReplaceParents[C, R, S]) Replace(_ *rand.Rand, pop *population.Population[C, R, S], offspring []population.Replacement[C, R, S]) []population.Individual[C, R, S] {
	seen := make(map[int]bool, len(offspring))
	pairs := make([]population.Replacement[C, R, S], 0, len(offspring))
	for _, o := range offspring {
		if seen[o.Parent] {
			continue
		}
		seen[o.Parent] = true
		pairs = append(pairs, o)
	}
	return pop.Replace(pairs)
}

// ReplaceWorst puts the children over the worst individuals. At most
// population size children are kept.
type ReplaceWorst[C, R, S any] struct{}

func (ReplaceWorst[C, R, S]) Replace(_ *rand.Rand, pop *population.Population[C, R, S], offspring []population.Replacement[C, R, S]) []population.Individual[C, R, S] {
	pop.Sort(fitnessKind(pop))
	n := min(len(offspring), pop.Len())
	pairs := make([]population.Replacement[C, R, S], n)
	for i := 0; i < n; i++ {
		pairs[i] = population.Replacement[C, R, S]{Parent: pop.Len() - 1 - i, Child: offspring[i].Child}
	}
	return pop.Replace(pairs)
}

// ReplaceRandom puts the children over distinct random individuals.
type ReplaceRandom[C, R, S any] struct{}

func (ReplaceRandom[C, R, S]) Replace(rng *rand.Rand, pop *population.Population[C, R, S], offspring []population.Replacement[C, R, S]) []population.Individual[C, R, S] {
	slots := rng.Perm(pop.Len())
	n := min(len(offspring), len(slots))
	pairs := make([]population.Replacement[C, R, S], n)
	for i := 0; i < n; i++ {
		pairs[i] = population.Replacement[C, R, S]{Parent: slots[i], Child: offspring[i].Child}
	}
	return pop.Replace(pairs)
}

// ReplaceFrontier is elitist mu+lambda replacement for multi-objective runs:
// children are added to the population, the union is level-ranked and
// crowded, and the worst are trimmed back to the target size (or the
// size before insertion when no target is set).
type ReplaceFrontier[C any, F fitness.Number, S any] struct{}

func (ReplaceFrontier[C, F, S]) Replace(_ *rand.Rand, pop *population.Population[C, []F, S], offspring []population.Replacement[C, []F, S]) []population.Individual[C, []F, S] {
	size := pop.Len()
	if target, ok := pop.TargetSize(); ok {
		size = target
	}
	children := make([]population.Individual[C, []F, S], len(offspring))
	for i, o := range offspring {
		children[i] = o.Child
	}
	pop.Insert(children...)

	pareto.RankLevel(pop, pareto.Erased)
	Crowd[C, F, S]{}.Crowd(pop)
	sortCrowded(pop)
	return pop.TrimTo(size)
}

// sortCrowded orders the population by the crowded comparison, stably.
func sortCrowded[C, R, S any](pop *population.Population[C, R, S]) {
	slices.SortStableFunc(pop.Individuals(), func(a, b population.Individual[C, R, S]) int {
		switch {
		case crowdedLess(&a, &b):
			return -1
		case crowdedLess(&b, &a):
			return 1
		default:
			return 0
		}
	})
	pop.Invalidate()
}

// markParents tags every current individual as a parent.
func markParents[C, R, S any](pop *population.Population[C, R, S]) {
	for i := 0; i < pop.Len(); i++ {
		tag.Put(&pop.At(i).Tags, tag.LineageParent)
	}
}
