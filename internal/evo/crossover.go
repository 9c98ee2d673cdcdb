package evo

import (
	"fmt"
	"math"
	"math/rand"
	"slices"

	"golang.org/x/exp/constraints"
)

// skipCross reports whether a crossover with the given probability is
// skipped. A probability of zero means the crossover always happens.
func skipCross(rng *rand.Rand, probability float64) bool {
	return probability > 0 && rng.Float64() >= probability
}

func requirePair(op string, a, b int) int {
	n := min(a, b)
	if n < 2 {
		panic(fmt.Sprintf("evo: %s crossover needs chromosomes of length >= 2, got %d and %d", op, a, b))
	}
	return n
}

// SinglePoint cuts both parents at one random point and swaps the tails.
type SinglePoint[C ~[]E, E any] struct {
	Probability float64
}

func (x SinglePoint[C, E]) Cross(rng *rand.Rand, a, b C) (C, C) {
	n := requirePair("single point", len(a), len(b))
	if skipCross(rng, x.Probability) {
		return slices.Clone(a), slices.Clone(b)
	}
	cut := 1 + rng.Intn(n-1)
	return splice(a, b, cut), splice(b, a, cut)
}

func splice[C ~[]E, E any](head, tail C, cut int) C {
	out := make(C, 0, len(tail))
	out = append(out, head[:cut]...)
	return append(out, tail[cut:]...)
}

// NPoint cuts the parents at Points random positions and alternates the
// segments. Duplicate cut positions cancel out.
type NPoint[C ~[]E, E any] struct {
	Points      int
	Probability float64
}

func (x NPoint[C, E]) Cross(rng *rand.Rand, a, b C) (C, C) {
	n := requirePair("n-point", len(a), len(b))
	first, second := slices.Clone(a[:n]), slices.Clone(b[:n])
	if skipCross(rng, x.Probability) {
		return first, second
	}
	points := max(x.Points, 1)
	cuts := make([]int, points)
	for i := range cuts {
		cuts[i] = 1 + rng.Intn(n-1)
	}
	slices.Sort(cuts)

	swap := false
	next := 0
	for i := 0; i < n; i++ {
		for next < len(cuts) && cuts[next] == i {
			swap = !swap
			next++
		}
		if swap {
			first[i], second[i] = second[i], first[i]
		}
	}
	return first, second
}

// Uniform takes each gene from the first parent with probability Mix,
// which defaults to one half.
type Uniform[C ~[]E, E any] struct {
	Mix         float64
	Probability float64
}

func (x Uniform[C, E]) Cross(rng *rand.Rand, a, b C) (C, C) {
	n := requirePair("uniform", len(a), len(b))
	first, second := slices.Clone(a[:n]), slices.Clone(b[:n])
	if skipCross(rng, x.Probability) {
		return first, second
	}
	mix := x.Mix
	if mix <= 0 {
		mix = 0.5
	}
	for i := 0; i < n; i++ {
		if rng.Float64() >= mix {
			first[i], second[i] = second[i], first[i]
		}
	}
	return first, second
}

// Blend is BLX-alpha for real-valued chromosomes: each child gene is drawn
// uniformly from the parents' interval widened by Alpha on both sides.
type Blend[C ~[]F, F constraints.Float] struct {
	Alpha       float64
	Probability float64
}

func (x Blend[C, F]) Cross(rng *rand.Rand, a, b C) (C, C) {
	n := requirePair("blend", len(a), len(b))
	first, second := slices.Clone(a[:n]), slices.Clone(b[:n])
	if skipCross(rng, x.Probability) {
		return first, second
	}
	for i := 0; i < n; i++ {
		lo, hi := float64(min(a[i], b[i])), float64(max(a[i], b[i]))
		span := (hi - lo) * x.Alpha
		lo, hi = lo-span, hi+span
		first[i] = F(lo + rng.Float64()*(hi-lo))
		second[i] = F(lo + rng.Float64()*(hi-lo))
	}
	return first, second
}

// SimulatedBinary is SBX crossover with distribution index Eta (default 2).
// When Lower < Upper children are clamped to that interval.
type SimulatedBinary[C ~[]F, F constraints.Float] struct {
	Eta         float64
	Probability float64
	Lower       F
	Upper       F
}

func (x SimulatedBinary[C, F]) Cross(rng *rand.Rand, a, b C) (C, C) {
	n := requirePair("simulated binary", len(a), len(b))
	first, second := slices.Clone(a[:n]), slices.Clone(b[:n])
	if skipCross(rng, x.Probability) {
		return first, second
	}
	eta := x.Eta
	if eta <= 0 {
		eta = 2
	}
	exp := 1 / (eta + 1)
	bounded := x.Lower < x.Upper
	for i := 0; i < n; i++ {
		var beta float64
		if u := rng.Float64(); u <= 0.5 {
			beta = math.Pow(2*u, exp)
		} else {
			beta = math.Pow(1/(2*(1-u)), exp)
		}
		p1, p2 := float64(a[i]), float64(b[i])
		c1 := 0.5 * ((1+beta)*p1 + (1-beta)*p2)
		c2 := 0.5 * ((1-beta)*p1 + (1+beta)*p2)
		if bounded {
			lo, hi := float64(x.Lower), float64(x.Upper)
			c1 = math.Max(lo, math.Min(hi, c1))
			c2 = math.Max(lo, math.Min(hi, c2))
		}
		first[i], second[i] = F(c1), F(c2)
	}
	return first, second
}
