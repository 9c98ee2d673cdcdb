package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
)

const (
	GenerationName = "generation"
	SizeName       = "size"
)

// Input is what a model sees when it computes its value.
type Input[C, R, S any] struct {
	Generation int
	Population *population.Population[C, R, S]
	Counters   *Counters
	Timers     *Timers
}

// Model computes one named statistic. Requires names the models whose
// values must already be in the snapshot.
type Model[C, R, S any] interface {
	Name() string
	Requires() []string
	Compute(in Input[C, R, S], snap *Snapshot)
}

type modelFunc[C, R, S any] struct {
	name     string
	requires []string
	compute  func(in Input[C, R, S], snap *Snapshot)
}

func (m modelFunc[C, R, S]) Name() string { return m.name }
func (m modelFunc[C, R, S]) Requires() []string { return m.requires }
func (m modelFunc[C, R, S]) Compute(in Input[C, R, S], snap *Snapshot) {
	m.compute(in, snap)
}

// Func wraps a function as a model.
func Func[C, R, S any](name string, requires []string, compute func(in Input[C, R, S], snap *Snapshot)) Model[C, R, S] {
	return modelFunc[C, R, S]{name: name, requires: requires, compute: compute}
}

// Generation records the generation counter as an int.
func Generation[C, R, S any]() Model[C, R, S] {
	return Func(GenerationName, nil, func(in Input[C, R, S], snap *Snapshot) {
		snap.Set(GenerationName, in.Generation)
	})
}

// Size records the population size as an int.
func Size[C, R, S any]() Model[C, R, S] {
	return Func(SizeName, nil, func(in Input[C, R, S], snap *Snapshot) {
		snap.Set(SizeName, in.Population.Len())
	})
}

// Bounds is the value of an Extremes model.
type Bounds[R, S any] struct {
	Worst population.Evaluation[R, S]
	Best  population.Evaluation[R, S]
	Valid bool
}

func (b Bounds[R, S]) String() string {
	if !b.Valid {
		return "none"
	}
	return fmt.Sprintf("best=%v worst=%v", b.Best.Raw, b.Worst.Raw)
}

// ExtremesName is the snapshot name of Extremes(kind).
func ExtremesName(kind population.Kind) string {
	return "extremes." + kind.String()
}

// Extremes records the best and worst evaluation under kind's comparator.
func Extremes[C, R, S any](kind population.Kind) Model[C, R, S] {
	name := ExtremesName(kind)
	return Func(name, nil, func(in Input[C, R, S], snap *Snapshot) {
		var b Bounds[R, S]
		if worst, best := in.Population.Extremes(kind); best != nil {
			b = Bounds[R, S]{Worst: worst.Eval, Best: best.Eval, Valid: true}
		}
		snap.Set(name, b)
	})
}

// Metric projects an individual onto a vector of reals for the moment
// models.
type Metric[C, R, S any] struct {
	Name string
	Of   func(ind *population.Individual[C, R, S]) []float64
}

// RawScalar is the raw fitness of a single-objective population.
func RawScalar[C any, R fitness.Number, S any]() Metric[C, R, S] {
	return Metric[C, R, S]{Name: "raw", Of: func(ind *population.Individual[C, R, S]) []float64 {
		return []float64{float64(ind.Eval.Raw)}
	}}
}

// RawVector is the raw fitness of a multi-objective population.
func RawVector[C any, E fitness.Number, S any]() Metric[C, []E, S] {
	return Metric[C, []E, S]{Name: "raw", Of: func(ind *population.Individual[C, []E, S]) []float64 {
		out := make([]float64, len(ind.Eval.Raw))
		for i, v := range ind.Eval.Raw {
			out[i] = float64(v)
		}
		return out
	}}
}

// ScaledScalar is the scaled fitness.
func ScaledScalar[C, R any, S fitness.Number]() Metric[C, R, S] {
	return Metric[C, R, S]{Name: "scaled", Of: func(ind *population.Individual[C, R, S]) []float64 {
		return []float64{float64(ind.Eval.Scaled)}
	}}
}

func TotalName(metric string) string { return "total." + metric }
func AverageName(metric string) string { return "average." + metric }
func VarianceName(metric string) string { return "variance." + metric }
func DeviationName(metric string) string { return "deviation." + metric }

// Total sums the metric over the population.
func Total[C, R, S any](m Metric[C, R, S]) Model[C, R, S] {
	name := TotalName(m.Name)
	return Func(name, nil, func(in Input[C, R, S], snap *Snapshot) {
		var sum []float64
		for i := 0; i < in.Population.Len(); i++ {
			v := m.Of(in.Population.At(i))
			if sum == nil {
				sum = make([]float64, len(v))
			}
			floats.Add(sum, v[:len(sum)])
		}
		snap.Set(name, sum)
	})
}

// Average divides the total by the population size.
func Average[C, R, S any](m Metric[C, R, S]) Model[C, R, S] {
	name, total := AverageName(m.Name), TotalName(m.Name)
	return Func(name, []string{total}, func(in Input[C, R, S], snap *Snapshot) {
		sum, _ := Value[[]float64](*snap, total)
		avg := append([]float64(nil), sum...)
		if n := in.Population.Len(); n > 0 {
			floats.Scale(1/float64(n), avg)
		}
		snap.Set(name, avg)
	})
}

// Variance is the unbiased sample variance around the average. It is zero
// for fewer than two individuals.
func Variance[C, R, S any](m Metric[C, R, S]) Model[C, R, S] {
	name, average := VarianceName(m.Name), AverageName(m.Name)
	return Func(name, []string{average}, func(in Input[C, R, S], snap *Snapshot) {
		mean, _ := Value[[]float64](*snap, average)
		acc := make([]float64, len(mean))
		n := in.Population.Len()
		if n > 1 {
			diff := make([]float64, len(mean))
			for i := 0; i < n; i++ {
				floats.SubTo(diff, m.Of(in.Population.At(i))[:len(mean)], mean)
				floats.AddScaled(acc, 1, mulSelf(diff))
			}
			floats.Scale(1/float64(n-1), acc)
		}
		snap.Set(name, acc)
	})
}

func mulSelf(v []float64) []float64 {
	floats.Mul(v, v)
	return v
}

// Deviation is the square root of the variance.
func Deviation[C, R, S any](m Metric[C, R, S]) Model[C, R, S] {
	name, variance := DeviationName(m.Name), VarianceName(m.Name)
	return Func(name, []string{variance}, func(in Input[C, R, S], snap *Snapshot) {
		v, _ := Value[[]float64](*snap, variance)
		dev := make([]float64, len(v))
		for i, x := range v {
			dev[i] = math.Sqrt(x)
		}
		snap.Set(name, dev)
	})
}

// Moments is Total, Average, Variance and Deviation of one metric.
func Moments[C, R, S any](m Metric[C, R, S]) []Model[C, R, S] {
	return []Model[C, R, S]{Total(m), Average(m), Variance(m), Deviation(m)}
}

// Counter records a named counter as an int64.
func Counter[C, R, S any](name string) Model[C, R, S] {
	return Func(name, nil, func(in Input[C, R, S], snap *Snapshot) {
		snap.Set(name, in.Counters.Get(name))
	})
}

// Timer records the accumulated duration of a named timer.
func Timer[C, R, S any](name string) Model[C, R, S] {
	return Func(name, nil, func(in Input[C, R, S], snap *Snapshot) {
		snap.Set(name, in.Timers.Get(name))
	})
}
