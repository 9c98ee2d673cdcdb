package evo

import (
	"math"
	"slices"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// Crowd is NSGA-II crowding over the frontiers recorded in
// tag.FrontierLevel. The crowding distance d of each member is turned into a
// density 1/(1+d): frontier boundaries, with infinite distance, get zero and
// lower is always less crowded.
type Crowd[C any, F fitness.Number, S any] struct{}

func (Crowd[C, F, S]) Crowd(pop *population.Population[C, []F, S]) {
	for _, members := range byLevel(pop) {
		distances := crowdingDistance(pop, members)
		for i, idx := range members {
			density := 0.0
			if !math.IsInf(distances[i], 1) {
				density = 1 / (1 + distances[i])
			}
			tag.Put(&pop.At(idx).Tags, tag.CrowdDensity(density))
		}
	}
}

func crowdingDistance[C any, F fitness.Number, S any](pop *population.Population[C, []F, S], members []int) []float64 {
	distances := make([]float64, len(members))
	if len(members) <= 2 {
		for i := range distances {
			distances[i] = math.Inf(1)
		}
		return distances
	}

	objective := func(i, m int) float64 {
		raw := pop.At(members[i]).Eval.Raw
		if m >= len(raw) {
			return 0
		}
		return float64(raw[m])
	}
	objectives := len(pop.At(members[0]).Eval.Raw)
	order := make([]int, len(members))
	for m := 0; m < objectives; m++ {
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(a, b int) int {
			switch va, vb := objective(a, m), objective(b, m); {
			case va < vb:
				return -1
			case va > vb:
				return 1
			default:
				return 0
			}
		})
		first, last := order[0], order[len(order)-1]
		distances[first] = math.Inf(1)
		distances[last] = math.Inf(1)
		span := objective(last, m) - objective(first, m)
		if span == 0 {
			continue
		}
		for k := 1; k < len(order)-1; k++ {
			distances[order[k]] += (objective(order[k+1], m) - objective(order[k-1], m)) / span
		}
	}
	return distances
}

// byLevel groups population indices by frontier level, in level order.
// Individuals without a level form one group after the ranked ones.
func byLevel[C, R, S any](pop *population.Population[C, R, S]) [][]int {
	groups := make(map[uint][]int)
	for i := 0; i < pop.Len(); i++ {
		level := levelKey(pop.At(i).Tags)
		groups[level] = append(groups[level], i)
	}
	levels := make([]uint, 0, len(groups))
	for level := range groups {
		levels = append(levels, level)
	}
	slices.Sort(levels)
	out := make([][]int, len(levels))
	for i, level := range levels {
		out[i] = groups[level]
	}
	return out
}
