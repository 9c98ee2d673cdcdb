package evo

import (
	"math/rand"

	"evoframe/internal/fitness"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/stats"
)

// Initializer creates a fresh chromosome.
type Initializer[C any] func(rng *rand.Rand) C

// Evaluator computes the raw fitness of a chromosome.
type Evaluator[C, R any] func(c C) R

// Crossover recombines two parents into two children. Implementations must
// not modify the parents.
type Crossover[C any] interface {
	Cross(rng *rand.Rand, a, b C) (C, C)
}

// CrossoverFunc adapts a function to Crossover.
type CrossoverFunc[C any] func(rng *rand.Rand, a, b C) (C, C)

func (f CrossoverFunc[C]) Cross(rng *rand.Rand, a, b C) (C, C) {
	return f(rng, a, b)
}

// Mutation modifies a chromosome in place.
type Mutation[C any] interface {
	Mutate(rng *rand.Rand, c *C)
}

// MutationFunc adapts a function to Mutation.
type MutationFunc[C any] func(rng *rand.Rand, c *C)

func (f MutationFunc[C]) Mutate(rng *rand.Rand, c *C) {
	f(rng, c)
}

// Selection picks parents and returns their indices into the population.
// It may reorder the population.
type Selection[C, R, S any] interface {
	Select(rng *rand.Rand, pop *population.Population[C, R, S]) []int
}

// Coupling turns selected parents into evaluated children, each paired with
// the parent slot it competes for.
type Coupling[C, R, S any] interface {
	Couple(rng *rand.Rand, pop *population.Population[C, R, S], parents []int, r *Reproduction[C, R, S]) []population.Replacement[C, R, S]
}

// Replacement merges the coupled children into the population and returns
// the individuals that left it.
type Replacement[C, R, S any] interface {
	Replace(rng *rand.Rand, pop *population.Population[C, R, S], offspring []population.Replacement[C, R, S]) []population.Individual[C, R, S]
}

// Criterion decides whether the run is over. It sees the population after
// the generation's statistics were recorded.
type Criterion[C, R, S any] interface {
	Done(pop *population.Population[C, R, S], history *stats.History) bool
}

// CriterionFunc adapts a function to Criterion.
type CriterionFunc[C, R, S any] func(pop *population.Population[C, R, S], history *stats.History) bool

func (f CriterionFunc[C, R, S]) Done(pop *population.Population[C, R, S], history *stats.History) bool {
	return f(pop, history)
}

// Scaling derives the scaled fitness from the raw fitness. A stable scaling
// preserves raw order in scaled fitness. Every scaling is either a
// LocalScaling or a GlobalScaling.
type Scaling[C, R, S any] interface {
	Stable() bool
}

// LocalScaling scales one individual at a time, as children are created.
type LocalScaling[C, R, S any] interface {
	Scaling[C, R, S]
	Scale(ind *population.Individual[C, R, S])
}

// GlobalScaling runs once per generation over a population sorted by raw
// fitness, best first; ordinal is the individual's position.
type GlobalScaling[C, R, S any] interface {
	Scaling[C, R, S]
	ScaleAt(pop *population.Population[C, R, S], ordinal int, ind *population.Individual[C, R, S])
}

// Ranking classifies a multi-objective population into frontiers.
type Ranking[C, R, S any] interface {
	Rank(pop *population.Population[C, R, S]) pareto.Archive[population.Individual[C, R, S]]
}

// Clustering groups individuals and labels them with tag.ClusterLabel.
type Clustering[C, R, S any] interface {
	Cluster(pop *population.Population[C, R, S]) pareto.ClusterSet
}

// Crowding writes tag.CrowdDensity.
type Crowding[C, R, S any] interface {
	Crowd(pop *population.Population[C, R, S])
}

// Pruning removes individuals and returns them.
type Pruning[C, R, S any] interface {
	Prune(pop *population.Population[C, R, S]) []population.Individual[C, R, S]
}

// Projection writes a scaled fitness derived from ranking tags.
type Projection[C, R, S any] interface {
	Project(pop *population.Population[C, R, S])
}

// Observer receives the generation event.
type Observer[C, R, S any] func(ev Generation[C, R, S])

// Generation is the payload of the generation event.
type Generation[C, R, S any] struct {
	RunID      string
	Number     int
	Population *population.Population[C, R, S]
	History    *stats.History
}

// fitnessKind is the fitness downstream operators order by: scaled when
// scaling is enabled, raw otherwise.
func fitnessKind[C, R, S any](pop *population.Population[C, R, S]) population.Kind {
	if pop.ScalingEnabled() {
		return population.Scaled
	}
	return population.Raw
}

// compareBy returns the comparator for the fitness downstream operators use.
func compareBy[C, R, S any](pop *population.Population[C, R, S]) func(a, b *population.Individual[C, R, S]) fitness.Ordering {
	return pop.Compare(fitnessKind(pop))
}
