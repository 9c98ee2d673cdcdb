package evo

import (
	"math/rand"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/stats"
	"evoframe/internal/tag"
)

// Fragments stored in a config.Record by the staged builders. Steps whose
// fragment is a single operator store the operator itself.

// SpawnFragment is contributed by the spawn step.
type SpawnFragment[C any] struct {
	Size int
	Init Initializer[C]
}

// ReproduceFragment is contributed by the reproduce step.
type ReproduceFragment[C any] struct {
	Crossover Crossover[C]
	Mutation  Mutation[C]
	Clone     func(C) C
}

// EvaluateFragment is contributed by the evaluate step.
type EvaluateFragment[C, R any] struct {
	Evaluator  Evaluator[C, R]
	Comparator fitness.Comparator[R]
}

// ScaledFitnessFragment is contributed by the scale_fitness step.
type ScaledFitnessFragment[S any] struct {
	Comparator fitness.Comparator[S]
}

// Enabled reports whether scaled fitness carries data.
func (f ScaledFitnessFragment[S]) Enabled() bool {
	return f.Comparator != nil && !fitness.IsEmpty[S]()
}

// TrackFragment is contributed by the track step.
type TrackFragment[C, R, S any] struct {
	Depth  int
	Models []stats.Model[C, R, S]
}

// Reproduction bundles what coupling needs to turn chromosomes into
// evaluated children.
type Reproduction[C, R, S any] struct {
	Crossover Crossover[C]
	Mutation  Mutation[C]
	Evaluator Evaluator[C, R]
	// Clone copies parents when no crossover is set, so mutation does not
	// reach into the parents' chromosomes.
	Clone func(C) C
	// Scaling is applied to every child when it is a LocalScaling.
	Scaling Scaling[C, R, S]
	Tags    []tag.Initializer
	// Counters receives the "evaluations" count when set.
	Counters *stats.Counters
}

// EvaluationsCounter is the counter incremented for every evaluation.
const EvaluationsCounter = "evaluations"

// Offspring mutates c, evaluates it and returns the child individual.
func (r *Reproduction[C, R, S]) Offspring(rng *rand.Rand, c C) population.Individual[C, R, S] {
	if r.Mutation != nil {
		r.Mutation.Mutate(rng, &c)
	}
	ind := population.NewIndividual[C, R, S](c, r.Tags...)
	tag.Put(&ind.Tags, tag.LineageChild)
	r.evaluate(&ind)
	return ind
}

func (r *Reproduction[C, R, S]) evaluate(ind *population.Individual[C, R, S]) {
	ind.Eval.Raw = r.Evaluator(ind.Chromosome)
	if r.Counters != nil {
		r.Counters.Add(EvaluationsCounter, 1)
	}
	if local, ok := r.Scaling.(LocalScaling[C, R, S]); ok {
		local.Scale(ind)
	}
}

// Cross recombines two parents, or copies them when no crossover is set.
func (r *Reproduction[C, R, S]) Cross(rng *rand.Rand, a, b C) (C, C) {
	if r.Crossover == nil {
		if r.Clone != nil {
			return r.Clone(a), r.Clone(b)
		}
		return a, b
	}
	return r.Crossover.Cross(rng, a, b)
}
