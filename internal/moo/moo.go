// Package moo assembles multi-objective runs: the predefined entry map, a
// builder over it and ready-made stage pipelines.
package moo

import (
	"fmt"

	"evoframe/internal/config"
	"evoframe/internal/evo"
	"evoframe/internal/fitness"
	"evoframe/internal/pareto"
	"evoframe/internal/stats"
	"evoframe/internal/tag"
)

func scaledFitnessEnabled(r *config.Record) bool {
	f, ok := config.Get[interface{ Enabled() bool }](r, config.ScaleFitness)
	return ok && f.Enabled()
}

// Map is the multi-objective entry map. Ranking follows track; a run with
// scaled fitness projects the ranking tags into it before select.
var Map = config.MustEntryMap("moo", map[config.Step]config.Entry{
	config.Begin:        {Unlocks: config.Unlock(config.Limit, config.Spawn, config.Tag)},
	config.Spawn:        {Unlocks: config.Unlock(config.Evaluate, config.Reproduce)},
	config.Evaluate:     {Unlocks: config.Unlock(config.ScaleFitness)},
	config.ScaleFitness: {Unlocks: config.Unlock(config.Track)},
	config.Track:        {Unlocks: config.Unlock(config.Rank, config.Stop, config.Observe, config.Tag)},
	config.Rank: {Unlocks: config.Union(
		config.Unlock(config.Elite, config.Cluster, config.Crowd, config.Prune),
		config.If(scaledFitnessEnabled, config.Unlock(config.Project), config.Unlock(config.Select)),
	)},
	config.Project:   {Unlocks: config.Unlock(config.Select)},
	config.Select:    {Unlocks: config.Unlock(config.Couple)},
	config.Couple:    {Unlocks: config.Unlock(config.Replace), Requires: []config.Step{config.Reproduce}},
	config.Limit:     {},
	config.Tag:       {},
	config.Reproduce: {},
	config.Elite:     {},
	config.Cluster:   {},
	config.Crowd:     {},
	config.Prune:     {},
	config.Stop:      {},
	config.Observe:   {},
	config.Replace:   {},
})

// Builder is one value of a multi-objective configuration chain. R is
// usually a slice of objectives compared with fitness.Dominate.
type Builder[C, R, S any] struct {
	node config.Node
}

// Begin starts a chain on Map.
func Begin[C, R, S any]() Builder[C, R, S] {
	return Builder[C, R, S]{node: config.Start(Map)}
}

func (b Builder[C, R, S]) apply(step config.Step, fragment any) Builder[C, R, S] {
	return Builder[C, R, S]{node: b.node.Apply(step, fragment)}
}

func (b Builder[C, R, S]) Limit(size int) Builder[C, R, S] {
	return b.apply(config.Limit, size)
}

func (b Builder[C, R, S]) Tag(inits ...tag.Initializer) Builder[C, R, S] {
	return b.apply(config.Tag, inits)
}

func (b Builder[C, R, S]) Spawn(size int, init evo.Initializer[C]) Builder[C, R, S] {
	return b.apply(config.Spawn, evo.SpawnFragment[C]{Size: size, Init: init})
}

func (b Builder[C, R, S]) Reproduce(f evo.ReproduceFragment[C]) Builder[C, R, S] {
	return b.apply(config.Reproduce, f)
}

func (b Builder[C, R, S]) Evaluate(evaluator evo.Evaluator[C, R], compare fitness.Comparator[R]) Builder[C, R, S] {
	return b.apply(config.Evaluate, evo.EvaluateFragment[C, R]{Evaluator: evaluator, Comparator: compare})
}

// ScaleFitness sets the comparator of the projected fitness. Leave it nil
// (or S fitness.Empty) to select on ranking tags directly.
func (b Builder[C, R, S]) ScaleFitness(compare fitness.Comparator[S]) Builder[C, R, S] {
	return b.apply(config.ScaleFitness, evo.ScaledFitnessFragment[S]{Comparator: compare})
}

func (b Builder[C, R, S]) Track(depth int, models ...stats.Model[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Track, evo.TrackFragment[C, R, S]{Depth: depth, Models: models})
}

func (b Builder[C, R, S]) Rank(r evo.Ranking[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Rank, r)
}

func (b Builder[C, R, S]) Elite(n int) Builder[C, R, S] {
	return b.apply(config.Elite, n)
}

func (b Builder[C, R, S]) Cluster(c evo.Clustering[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Cluster, c)
}

func (b Builder[C, R, S]) Crowd(c evo.Crowding[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Crowd, c)
}

func (b Builder[C, R, S]) Prune(p evo.Pruning[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Prune, p)
}

func (b Builder[C, R, S]) Project(p evo.Projection[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Project, p)
}

func (b Builder[C, R, S]) Stop(c evo.Criterion[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Stop, c)
}

func (b Builder[C, R, S]) Observe(observers ...evo.Observer[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Observe, observers)
}

func (b Builder[C, R, S]) Select(s evo.Selection[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Select, s)
}

func (b Builder[C, R, S]) Couple(c evo.Coupling[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Couple, c)
}

func (b Builder[C, R, S]) Replace(r evo.Replacement[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Replace, r)
}

func (b Builder[C, R, S]) Available() []config.Step {
	return b.node.Available()
}

func (b Builder[C, R, S]) Err() error {
	return b.node.Err()
}

func (b Builder[C, R, S]) End() (*config.Record, error) {
	return b.node.End()
}

// Build ends the chain and hands the record to a population monitor. A
// multi-objective run must rank.
func (b Builder[C, R, S]) Build(opts ...evo.Option) (*evo.PopulationMonitor[C, R, S], error) {
	rec, err := b.End()
	if err != nil {
		return nil, err
	}
	if !rec.Has(config.Rank) {
		return nil, fmt.Errorf("%w: %s", evo.ErrMissingOperator, config.Rank)
	}
	return evo.FromRecord[C, R, S](rec, opts...)
}

// NSGA2 continues a chain that has just tracked with the NSGA-II pipeline:
// level ranking under policy, crowding, crowded tournament selection,
// pairwise coupling and elitist frontier replacement. Stop and Observe stay
// available on the returned builder.
func NSGA2[C any, F fitness.Number, S any](b Builder[C, []F, S], policy pareto.Policy) Builder[C, []F, S] {
	return b.
		Rank(evo.RankBy[C, []F, S]{Strategy: pareto.Level, Policy: policy}).
		Crowd(evo.Crowd[C, F, S]{}).
		Select(evo.CrowdedTournament[C, []F, S]{}).
		Couple(evo.Pairwise[C, []F, S]{}).
		Replace(evo.ReplaceFrontier[C, F, S]{})
}

// Strength continues a chain that has just tracked with a strength
// pipeline: accumulated strength ranking under policy, the real rank
// projected into the scaled fitness, binary tournament on it, pairwise
// coupling and replacement of the worst. The scaled comparator must be
// fitness.Minimize; add Elite to keep the best across generations.
func Strength[C any, F fitness.Number, S fitness.Number](b Builder[C, []F, S], policy pareto.Policy) Builder[C, []F, S] {
	return b.
		Rank(evo.RankBy[C, []F, S]{Strategy: pareto.AccumulatedStrength, Policy: policy}).
		Project(evo.ProjectRank[C, []F, S]{}).
		Select(evo.Tournament[C, []F, S]{Size: 2}).
		Couple(evo.Pairwise[C, []F, S]{}).
		Replace(evo.ReplaceWorst[C, []F, S]{})
}
