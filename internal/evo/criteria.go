package evo

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/stats"
)

// Generations stops once the latest snapshot's generation reaches Limit.
// Generation zero is the initial population.
type Generations[C, R, S any] struct {
	Limit int
}

func (g Generations[C, R, S]) Done(_ *population.Population[C, R, S], history *stats.History) bool {
	latest, ok := history.Latest()
	return ok && latest.Generation() >= g.Limit
}

// Goal stops once some individual's raw fitness is at least as good as
// Target under the population's raw comparator.
type Goal[C, R, S any] struct {
	Target R
}

func (g Goal[C, R, S]) Done(pop *population.Population[C, R, S], _ *stats.History) bool {
	compare := pop.RawComparator()
	for i := 0; i < pop.Len(); i++ {
		switch compare(pop.At(i).Eval.Raw, g.Target) {
		case fitness.Less, fitness.Equivalent:
			return true
		}
	}
	return false
}

// Stagnation stops when the best raw fitness of the latest snapshot is
// within Epsilon of the mean best over the last Window snapshots. It reads
// the raw Extremes model, so that model must be tracked with a history of
// at least Window snapshots.
type Stagnation[C any, R fitness.Number, S any] struct {
	Window  int
	Epsilon float64
}

func (s Stagnation[C, R, S]) Done(_ *population.Population[C, R, S], history *stats.History) bool {
	window := max(s.Window, 2)
	if history.Len() < window {
		return false
	}
	bests := make([]float64, 0, window)
	name := stats.ExtremesName(population.Raw)
	for i := 0; i < window; i++ {
		snap, _ := history.At(i)
		b, ok := stats.Value[stats.Bounds[R, S]](snap, name)
		if !ok || !b.Valid {
			return false
		}
		bests = append(bests, float64(b.Best.Raw))
	}
	return math.Abs(bests[0]-stat.Mean(bests, nil)) <= s.Epsilon
}

// Any stops when one of its criteria does. Every criterion is consulted.
type Any[C, R, S any] []Criterion[C, R, S]

func (a Any[C, R, S]) Done(pop *population.Population[C, R, S], history *stats.History) bool {
	done := false
	for _, c := range a {
		if c.Done(pop, history) {
			done = true
		}
	}
	return done
}
