package evo

import (
	"math"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
)

// Identity copies the raw fitness into the scaled fitness.
type Identity[C any, F any] struct{}

func (Identity[C, F]) Stable() bool {
	return true
}

func (Identity[C, F]) Scale(ind *population.Individual[C, F, F]) {
	ind.Eval.Scaled = ind.Eval.Raw
}

// Linear scales as A*raw + B. It preserves order only for a positive A and a
// scaled comparator with the raw comparator's direction.
type Linear[C any, R, S fitness.Number] struct {
	A, B float64
}

func (l Linear[C, R, S]) Stable() bool {
	return l.A > 0
}

func (l Linear[C, R, S]) Scale(ind *population.Individual[C, R, S]) {
	ind.Eval.Scaled = S(l.A*float64(ind.Eval.Raw) + l.B)
}

// Rank assigns n - ordinal, so the best of n individuals scales to n and the
// worst to 1. Pair it with a maximising scaled comparator.
type Rank[C, R any, S fitness.Number] struct{}

func (Rank[C, R, S]) Stable() bool {
	return true
}

func (Rank[C, R, S]) ScaleAt(pop *population.Population[C, R, S], ordinal int, ind *population.Individual[C, R, S]) {
	ind.Eval.Scaled = S(pop.Len() - ordinal)
}

// Exponential assigns Base^ordinal. With Base in (0, 1) the best individual
// scales to 1 and the rest decay geometrically; pair it with a maximising
// scaled comparator.
type Exponential[C, R any, S fitness.Number] struct {
	Base float64
}

func (Exponential[C, R, S]) Stable() bool {
	return true
}

func (e Exponential[C, R, S]) ScaleAt(_ *population.Population[C, R, S], ordinal int, ind *population.Individual[C, R, S]) {
	ind.Eval.Scaled = S(math.Pow(e.Base, float64(ordinal)))
}

// Window scales to the distance from the worst raw fitness of the
// generation. The worst individual scales to zero; pair it with a
// maximising scaled comparator.
type Window[C any, R, S fitness.Number] struct{}

func (Window[C, R, S]) Stable() bool {
	return true
}

func (Window[C, R, S]) ScaleAt(pop *population.Population[C, R, S], _ int, ind *population.Individual[C, R, S]) {
	worst := pop.At(pop.Len() - 1)
	ind.Eval.Scaled = S(math.Abs(float64(ind.Eval.Raw) - float64(worst.Eval.Raw)))
}

// applyGlobal sorts by raw fitness and runs a global scaling over the whole
// population. The sort state is dropped afterwards since scaled fitness was
// rewritten.
func applyGlobal[C, R, S any](pop *population.Population[C, R, S], scaling GlobalScaling[C, R, S]) {
	if pop.Len() == 0 {
		return
	}
	pop.Sort(population.Raw)
	for i := 0; i < pop.Len(); i++ {
		scaling.ScaleAt(pop, i, pop.At(i))
	}
	pop.Invalidate()
}
