package evo

import (
	"math"
	"math/rand"

	"golang.org/x/exp/constraints"
)

// BitFlip flips every gene of a boolean chromosome with probability Rate.
type BitFlip[C ~[]bool] struct {
	Rate float64
}

func (m BitFlip[C]) Mutate(rng *rand.Rand, c *C) {
	for i := range *c {
		if rng.Float64() < m.Rate {
			(*c)[i] = !(*c)[i]
		}
	}
}

// Gaussian adds N(0, Sigma) noise to every gene with probability Rate. When
// Lower < Upper genes are clamped to that interval.
type Gaussian[C ~[]F, F constraints.Float] struct {
	Rate  float64
	Sigma float64
	Lower F
	Upper F
}

func (m Gaussian[C, F]) Mutate(rng *rand.Rand, c *C) {
	bounded := m.Lower < m.Upper
	for i := range *c {
		if rng.Float64() >= m.Rate {
			continue
		}
		v := (*c)[i] + F(rng.NormFloat64()*m.Sigma)
		if bounded {
			v = F(math.Min(math.Max(float64(v), float64(m.Lower)), float64(m.Upper)))
		}
		(*c)[i] = v
	}
}

// Swap exchanges each gene with a random other gene with probability Rate.
type Swap[C ~[]E, E any] struct {
	Rate float64
}

func (m Swap[C, E]) Mutate(rng *rand.Rand, c *C) {
	n := len(*c)
	if n < 2 {
		return
	}
	for i := range *c {
		if rng.Float64() < m.Rate {
			j := rng.Intn(n)
			(*c)[i], (*c)[j] = (*c)[j], (*c)[i]
		}
	}
}

// WeightedMutation is one entry of a Weighted mutation policy.
type WeightedMutation[C any] struct {
	Mutation Mutation[C]
	Weight   float64
}

// Weighted applies one mutation per call, chosen with probability
// proportional to its weight. Non-positive weights are never chosen.
type Weighted[C any] []WeightedMutation[C]

func (w Weighted[C]) Mutate(rng *rand.Rand, c *C) {
	total := 0.0
	for _, item := range w {
		if item.Weight > 0 {
			total += item.Weight
		}
	}
	if total <= 0 {
		return
	}
	pick := rng.Float64() * total
	acc := 0.0
	for _, item := range w {
		if item.Weight <= 0 {
			continue
		}
		acc += item.Weight
		if pick < acc {
			item.Mutation.Mutate(rng, c)
			return
		}
	}
}

// Chain applies every mutation in order.
type Chain[C any] []Mutation[C]

func (ch Chain[C]) Mutate(rng *rand.Rand, c *C) {
	for _, m := range ch {
		m.Mutate(rng, c)
	}
}
