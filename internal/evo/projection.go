package evo

import (
	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// The projections write a scaled fitness for which lower is better; pair
// them with fitness.Minimize.

// ProjectLevel sets the scaled fitness to the frontier level.
type ProjectLevel[C, R any, S fitness.Number] struct{}

func (ProjectLevel[C, R, S]) Project(pop *population.Population[C, R, S]) {
	for i := 0; i < pop.Len(); i++ {
		ind := pop.At(i)
		ind.Eval.Scaled = S(tag.Get[tag.FrontierLevel](ind.Tags))
	}
	pop.Invalidate()
}

// ProjectRank sets the scaled fitness to the real rank when one was written,
// otherwise to the integer rank.
type ProjectRank[C, R any, S fitness.Number] struct{}

func (ProjectRank[C, R, S]) Project(pop *population.Population[C, R, S]) {
	for i := 0; i < pop.Len(); i++ {
		ind := pop.At(i)
		if rank, ok := tag.Lookup[tag.RealRank](ind.Tags); ok {
			ind.Eval.Scaled = S(rank)
			continue
		}
		ind.Eval.Scaled = S(tag.Get[tag.IntegerRank](ind.Tags))
	}
	pop.Invalidate()
}

// ProjectCrowded sets the scaled fitness to level + density. Density lies in
// [0, 1), so the order is by level first and density second.
type ProjectCrowded[C, R any, S fitness.Number] struct{}

func (ProjectCrowded[C, R, S]) Project(pop *population.Population[C, R, S]) {
	for i := 0; i < pop.Len(); i++ {
		ind := pop.At(i)
		level := float64(tag.Get[tag.FrontierLevel](ind.Tags))
		ind.Eval.Scaled = S(level + float64(tag.Get[tag.CrowdDensity](ind.Tags)))
	}
	pop.Invalidate()
}
