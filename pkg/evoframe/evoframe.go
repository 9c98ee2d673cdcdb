// Package evoframe is the public surface of the framework. It re-exports the
// core generic types, the single- and multi-objective builders, and a
// Client running the bundled sample problems.
package evoframe

import (
	"golang.org/x/exp/constraints"

	"evoframe/internal/evo"
	"evoframe/internal/fitness"
	"evoframe/internal/moo"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/soo"
	"evoframe/internal/stats"
)

type (
	Ordering = fitness.Ordering
	Empty    = fitness.Empty
	Strategy = pareto.Strategy
	Policy   = pareto.Policy
	Snapshot = stats.Snapshot
	History  = stats.History
	Option   = evo.Option
)

type Comparator[F any] = fitness.Comparator[F]

type Evaluation[R, S any] = population.Evaluation[R, S]

type Individual[C, R, S any] = population.Individual[C, R, S]

type Population[C, R, S any] = population.Population[C, R, S]

type Archive[I any] = pareto.Archive[I]

type SOOBuilder[C, R, S any] = soo.Builder[C, R, S]

type MOOBuilder[C, R, S any] = moo.Builder[C, R, S]

type Monitor[C, R, S any] = evo.PopulationMonitor[C, R, S]

type Result[C, R, S any] = evo.Result[C, R, S]

type Generation[C, R, S any] = evo.Generation[C, R, S]

const (
	Less       = fitness.Less
	Equivalent = fitness.Equivalent
	Greater    = fitness.Greater
	Unordered  = fitness.Unordered
)

const (
	Binary              = pareto.Binary
	Level               = pareto.Level
	AccumulatedLevel    = pareto.AccumulatedLevel
	Strength            = pareto.Strength
	AccumulatedStrength = pareto.AccumulatedStrength
)

const (
	Preserved    = pareto.Preserved
	Reduced      = pareto.Reduced
	Nondominated = pareto.Nondominated
	Erased       = pareto.Erased
)

var (
	WithLogger  = evo.WithLogger
	WithSeed    = evo.WithSeed
	WithRand    = evo.WithRand
	WithRunID   = evo.WithRunID
	WithWorkers = evo.WithWorkers
)

func Minimize[F constraints.Ordered]() Comparator[F] { return fitness.Minimize[F]() }

func Maximize[F constraints.Ordered]() Comparator[F] { return fitness.Maximize[F]() }

// Dominate lifts a per-objective comparator to Pareto dominance over
// objective vectors.
func Dominate[F any](inner Comparator[F]) Comparator[[]F] { return fitness.Dominate(inner) }

// SOO starts a single-objective configuration chain.
func SOO[C, R, S any]() SOOBuilder[C, R, S] { return soo.Begin[C, R, S]() }

// MOO starts a multi-objective configuration chain.
func MOO[C, R, S any]() MOOBuilder[C, R, S] { return moo.Begin[C, R, S]() }

// NSGA2 completes a tracked multi-objective chain with the NSGA-II stages.
func NSGA2[C any, F fitness.Number, S any](b MOOBuilder[C, []F, S], policy Policy) MOOBuilder[C, []F, S] {
	return moo.NSGA2(b, policy)
}

// Rank runs a ranking strategy over a population and returns its archive.
func Rank[C, R, S any](pop *Population[C, R, S], strategy Strategy, policy Policy) Archive[Individual[C, R, S]] {
	return pareto.Rank(pop, strategy, policy)
}
