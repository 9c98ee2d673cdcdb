package evo

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

func selectionCount(count, size int) int {
	if count <= 0 {
		return size
	}
	return count
}

// Tournament samples Size individuals with replacement and keeps the best,
// Count times. Count defaults to the population size and Size to 3.
type Tournament[C, R, S any] struct {
	Size  int
	Count int
}

func (s Tournament[C, R, S]) Select(rng *rand.Rand, pop *population.Population[C, R, S]) []int {
	n := pop.Len()
	if n == 0 {
		return nil
	}
	size := s.Size
	if size <= 0 {
		size = 3
	}
	compare := compareBy(pop)
	out := make([]int, selectionCount(s.Count, n))
	for i := range out {
		best := rng.Intn(n)
		for j := 1; j < size; j++ {
			candidate := rng.Intn(n)
			if compare(pop.At(candidate), pop.At(best)) == fitness.Less {
				best = candidate
			}
		}
		out[i] = best
	}
	return out
}

// Roulette is fitness-proportionate selection. Value maps an individual to
// a real and the wheel weight is the distance from the worst individual, so
// it works for minimised and maximised fitness alike. When every weight is
// zero the choice is uniform. A nil Value spins on the fitness the population
// compares by, which must then be a plain number.
type Roulette[C, R, S any] struct {
	Count int
	Value func(ind *population.Individual[C, R, S]) float64
}

// RouletteRaw spins on a scalar raw fitness.
func RouletteRaw[C any, R fitness.Number, S any](count int) Roulette[C, R, S] {
	return Roulette[C, R, S]{Count: count, Value: func(ind *population.Individual[C, R, S]) float64 {
		return float64(ind.Eval.Raw)
	}}
}

// RouletteScaled spins on a scalar scaled fitness.
func RouletteScaled[C, R any, S fitness.Number](count int) Roulette[C, R, S] {
	return Roulette[C, R, S]{Count: count, Value: func(ind *population.Individual[C, R, S]) float64 {
		return float64(ind.Eval.Scaled)
	}}
}

func (s Roulette[C, R, S]) Select(rng *rand.Rand, pop *population.Population[C, R, S]) []int {
	n := pop.Len()
	if n == 0 {
		return nil
	}
	value := s.Value
	if value == nil {
		value = rouletteValue[C, R, S](fitnessKind(pop))
	}
	worst, _ := pop.Extremes(fitnessKind(pop))
	floor := value(worst)

	cumulative := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		total += math.Abs(value(pop.At(i)) - floor)
		cumulative[i] = total
	}

	out := make([]int, selectionCount(s.Count, n))
	for i := range out {
		if total == 0 {
			out[i] = rng.Intn(n)
			continue
		}
		spin := rng.Float64() * total
		for j, c := range cumulative {
			if spin < c {
				out[i] = j
				break
			}
		}
	}
	return out
}

func rouletteValue[C, R, S any](kind population.Kind) func(ind *population.Individual[C, R, S]) float64 {
	return func(ind *population.Individual[C, R, S]) float64 {
		var v any = ind.Eval.Raw
		if kind == population.Scaled {
			v = ind.Eval.Scaled
		}
		x, ok := asFloat(v)
		if !ok {
			panic(fmt.Sprintf("evo: roulette needs a Value func for %T fitness", v))
		}
		return x
	}
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case rv.CanFloat():
		return rv.Float(), true
	case rv.CanInt():
		return float64(rv.Int()), true
	case rv.CanUint():
		return float64(rv.Uint()), true
	default:
		return 0, false
	}
}

// Best sorts the population and selects its first Count individuals.
type Best[C, R, S any] struct {
	Count int
}

func (s Best[C, R, S]) Select(_ *rand.Rand, pop *population.Population[C, R, S]) []int {
	pop.Sort(fitnessKind(pop))
	out := make([]int, min(selectionCount(s.Count, pop.Len()), pop.Len()))
	for i := range out {
		out[i] = i
	}
	return out
}

// Random selects Count individuals uniformly with replacement.
type Random[C, R, S any] struct {
	Count int
}

func (s Random[C, R, S]) Select(rng *rand.Rand, pop *population.Population[C, R, S]) []int {
	n := pop.Len()
	if n == 0 {
		return nil
	}
	out := make([]int, selectionCount(s.Count, n))
	for i := range out {
		out[i] = rng.Intn(n)
	}
	return out
}

// CrowdedTournament is binary tournament under the crowded comparison: lower
// frontier level wins, then lower crowd density.
type CrowdedTournament[C, R, S any] struct {
	Count int
}

func (s CrowdedTournament[C, R, S]) Select(rng *rand.Rand, pop *population.Population[C, R, S]) []int {
	n := pop.Len()
	if n == 0 {
		return nil
	}
	out := make([]int, selectionCount(s.Count, n))
	for i := range out {
		a, b := rng.Intn(n), rng.Intn(n)
		if crowdedLess(pop.At(b), pop.At(a)) {
			a = b
		}
		out[i] = a
	}
	return out
}

// crowdedLess orders by frontier level, then crowd density. An undefined
// level (zero) sorts last.
func crowdedLess[C, R, S any](a, b *population.Individual[C, R, S]) bool {
	la, lb := levelKey(a.Tags), levelKey(b.Tags)
	if la != lb {
		return la < lb
	}
	return tag.Get[tag.CrowdDensity](a.Tags) < tag.Get[tag.CrowdDensity](b.Tags)
}

func levelKey(t tag.Tags) uint {
	level := uint(tag.Get[tag.FrontierLevel](t))
	if level == 0 {
		return math.MaxUint
	}
	return level
}
