package evo

import (
	"evoframe/internal/pareto"
	"evoframe/internal/population"
)

// RankBy runs a pareto ranking strategy under an archive policy.
type RankBy[C, R, S any] struct {
	Strategy pareto.Strategy
	Policy   pareto.Policy
}

func (r RankBy[C, R, S]) Rank(pop *population.Population[C, R, S]) pareto.Archive[population.Individual[C, R, S]] {
	return pareto.Rank(pop, r.Strategy, r.Policy)
}
