// Package soo assembles single-objective runs: the predefined entry map and
// a builder that walks it with typed operator slots.
package soo

import (
	"evoframe/internal/config"
	"evoframe/internal/evo"
	"evoframe/internal/fitness"
	"evoframe/internal/stats"
	"evoframe/internal/tag"
)

// scaledFitnessEnabled reads the scale_fitness fragment without knowing its
// type parameter.
func scaledFitnessEnabled(r *config.Record) bool {
	f, ok := config.Get[interface{ Enabled() bool }](r, config.ScaleFitness)
	return ok && f.Enabled()
}

// Map is the single-objective entry map. After track, a run with scaled
// fitness must pass through scale before select.
var Map = config.MustEntryMap("soo", map[config.Step]config.Entry{
	config.Begin:        {Unlocks: config.Unlock(config.Limit, config.Spawn, config.Tag)},
	config.Spawn:        {Unlocks: config.Unlock(config.Evaluate, config.Reproduce)},
	config.Evaluate:     {Unlocks: config.Unlock(config.ScaleFitness)},
	config.ScaleFitness: {Unlocks: config.Unlock(config.Track)},
	config.Track: {Unlocks: config.Union(
		config.If(scaledFitnessEnabled,
			config.Unlock(config.Scale, config.Stop, config.Observe, config.Elite),
			config.Unlock(config.Select, config.Stop, config.Observe, config.Elite),
		),
		config.Unlock(config.Tag),
	)},
	config.Scale:     {Unlocks: config.Unlock(config.Select)},
	config.Select:    {Unlocks: config.Unlock(config.Couple)},
	config.Couple:    {Unlocks: config.Unlock(config.Replace), Requires: []config.Step{config.Reproduce}},
	config.Limit:     {},
	config.Tag:       {},
	config.Reproduce: {},
	config.Elite:     {},
	config.Stop:      {},
	config.Observe:   {},
	config.Replace:   {},
})

// Builder is one value of a single-objective configuration chain. C is the
// chromosome, R the raw fitness and S the scaled fitness; use fitness.Empty
// for S when no scaling is wanted. Builders are values: every step returns a
// new one and leaves the receiver usable.
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

// Limit sets the size the population is trimmed to after each generation.
// It defaults to the spawn size.
func (b Builder[C, R, S]) Limit(size int) Builder[C, R, S] {
	return b.apply(config.Limit, size)
}

// Tag seeds every new individual with the given tags.
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

// ScaleFitness sets the scaled fitness comparator. A nil comparator, or S
// being fitness.Empty, disables scaling and unlocks select directly.
func (b Builder[C, R, S]) ScaleFitness(compare fitness.Comparator[S]) Builder[C, R, S] {
	return b.apply(config.ScaleFitness, evo.ScaledFitnessFragment[S]{Comparator: compare})
}

// Track keeps depth snapshots of the given models. Generation and size are
// always tracked.
func (b Builder[C, R, S]) Track(depth int, models ...stats.Model[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Track, evo.TrackFragment[C, R, S]{Depth: depth, Models: models})
}

func (b Builder[C, R, S]) Scale(s evo.Scaling[C, R, S]) Builder[C, R, S] {
	return b.apply(config.Scale, s)
}

// Elite keeps the n best individuals of each generation.
func (b Builder[C, R, S]) Elite(n int) Builder[C, R, S] {
	return b.apply(config.Elite, n)
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

// Available lists the steps that can be taken next.
func (b Builder[C, R, S]) Available() []config.Step {
	return b.node.Available()
}

func (b Builder[C, R, S]) Err() error {
	return b.node.Err()
}

// End returns the accumulated record, or the first error of the chain.
func (b Builder[C, R, S]) End() (*config.Record, error) {
	return b.node.End()
}

// Build ends the chain and hands the record to a population monitor.
func (b Builder[C, R, S]) Build(opts ...evo.Option) (*evo.PopulationMonitor[C, R, S], error) {
	rec, err := b.End()
	if err != nil {
		return nil, err
	}
	return evo.FromRecord[C, R, S](rec, opts...)
}
