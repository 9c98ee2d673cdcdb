package evo

import (
	"slices"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// PruneDuplicates removes every individual whose raw fitness is equivalent
// to an earlier one's.
type PruneDuplicates[C, R, S any] struct{}

func (PruneDuplicates[C, R, S]) Prune(pop *population.Population[C, R, S]) []population.Individual[C, R, S] {
	compare := pop.RawComparator()
	var kept []R
	return pop.RemoveFunc(func(ind *population.Individual[C, R, S]) bool {
		for _, raw := range kept {
			if compare(ind.Eval.Raw, raw) == fitness.Equivalent {
				return true
			}
		}
		kept = append(kept, ind.Eval.Raw)
		return false
	})
}

// PruneCrowded removes the most crowded individuals of the worst frontiers
// until at most Limit remain. It reads tag.FrontierLevel and
// tag.CrowdDensity, so it runs after ranking and crowding.
type PruneCrowded[C, R, S any] struct {
	Limit int
}

func (p PruneCrowded[C, R, S]) Prune(pop *population.Population[C, R, S]) []population.Individual[C, R, S] {
	excess := pop.Len() - p.Limit
	if p.Limit <= 0 || excess <= 0 {
		return nil
	}
	order := make([]int, pop.Len())
	for i := range order {
		order[i] = i
	}
	// Worst first: highest level, then densest.
	slices.SortStableFunc(order, func(a, b int) int {
		ia, ib := pop.At(a), pop.At(b)
		if la, lb := levelKey(ia.Tags), levelKey(ib.Tags); la != lb {
			if la > lb {
				return -1
			}
			return 1
		}
		da, db := tag.Get[tag.CrowdDensity](ia.Tags), tag.Get[tag.CrowdDensity](ib.Tags)
		switch {
		case da > db:
			return -1
		case da < db:
			return 1
		default:
			return 0
		}
	})

	drop := make([]bool, pop.Len())
	for _, idx := range order[:excess] {
		drop[idx] = true
	}
	next := -1
	return pop.RemoveFunc(func(*population.Individual[C, R, S]) bool {
		next++
		return drop[next]
	})
}
