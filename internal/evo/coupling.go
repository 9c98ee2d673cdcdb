package evo

import (
	"math/rand"

	"evoframe/internal/population"
)

// Pairwise crosses consecutive selected parents. Each pair yields two
// children, the first paired with the first parent's slot and the second with
// the second's. With an odd number of parents the last one is crossed with
// the first and only its own child is kept.
type Pairwise[C, R, S any] struct{}

func (Pairwise[C, R, S]) Couple(rng *rand.Rand, pop *population.Population[C, R, S], parents []int, r *Reproduction[C, R, S]) []population.Replacement[C, R, S] {
	if len(parents) == 0 {
		return nil
	}
	out := make([]population.Replacement[C, R, S], 0, len(parents))
	for i := 0; i < len(parents); i += 2 {
		pa := parents[i]
		if i+1 == len(parents) {
			ca, _ := r.Cross(rng, pop.At(pa).Chromosome, pop.At(parents[0]).Chromosome)
			out = append(out, population.Replacement[C, R, S]{Parent: pa, Child: r.Offspring(rng, ca)})
			break
		}
		pb := parents[i+1]
		ca, cb := r.Cross(rng, pop.At(pa).Chromosome, pop.At(pb).Chromosome)
		out = append(out,
			population.Replacement[C, R, S]{Parent: pa, Child: r.Offspring(rng, ca)},
			population.Replacement[C, R, S]{Parent: pb, Child: r.Offspring(rng, cb)},
		)
	}
	return out
}
