package soo

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"evoframe/internal/config"
	"evoframe/internal/evo"
	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/stats"
)

const bits = 12

func randomBits(rng *rand.Rand) []bool {
	c := make([]bool, bits)
	for i := range c {
		c[i] = rng.Intn(2) == 0
	}
	return c
}

func ones(c []bool) int {
	n := 0
	for _, b := range c {
		if b {
			n++
		}
	}
	return n
}

func reproduce() evo.ReproduceFragment[[]bool] {
	return evo.ReproduceFragment[[]bool]{
		Crossover: evo.Uniform[[]bool, bool]{},
		Mutation:  evo.BitFlip[[]bool]{Rate: 1.0 / bits},
	}
}

func quiet() evo.Option {
	return evo.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMapValidates(t *testing.T) {
	require.Equal(t, "soo", Map.Name())
	for _, step := range []config.Step{config.Begin, config.Spawn, config.Track, config.Couple, config.Replace} {
		_, ok := Map.Entry(step)
		require.True(t, ok, "missing row for %s", step)
	}
	_, ok := Map.Entry(config.Rank)
	require.False(t, ok, "single-objective map has no rank step")
}

func TestUnscaledChainUnlocksSelect(t *testing.T) {
	b := Begin[[]bool, int, fitness.Empty]()
	require.Equal(t, []config.Step{config.Limit, config.Tag, config.Spawn}, b.Available())

	b = b.Spawn(10, randomBits)
	require.Equal(t, []config.Step{config.Limit, config.Tag, config.Reproduce, config.Evaluate}, b.Available())

	b = b.Evaluate(ones, fitness.Maximize[int]()).ScaleFitness(nil).Track(4)
	require.NoError(t, b.Err())
	require.Equal(t, []config.Step{
		config.Limit, config.Tag, config.Reproduce, config.Elite, config.Stop, config.Select, config.Observe,
	}, b.Available())

	b = b.Select(evo.Tournament[[]bool, int, fitness.Empty]{})
	require.NotContains(t, b.Available(), config.Couple, "couple requires reproduce")
	b = b.Reproduce(reproduce())
	require.Contains(t, b.Available(), config.Couple)
}

func TestScaledChainRequiresScale(t *testing.T) {
	b := Begin[[]bool, int, float64]().
		Spawn(10, randomBits).
		Evaluate(ones, fitness.Maximize[int]()).
		ScaleFitness(fitness.Maximize[float64]()).
		Track(2)
	require.NoError(t, b.Err())
	require.Contains(t, b.Available(), config.Scale)
	require.NotContains(t, b.Available(), config.Select)

	skipped := b.Select(evo.Tournament[[]bool, int, float64]{})
	require.ErrorIs(t, skipped.Err(), config.ErrStepUnavailable)

	b = b.Scale(evo.Rank[[]bool, int, float64]{})
	require.Contains(t, b.Available(), config.Select)
}

func TestBuilderIsAValue(t *testing.T) {
	base := Begin[[]bool, int, fitness.Empty]().Spawn(10, randomBits)
	withLimit := base.Limit(5)
	require.NoError(t, withLimit.Err())
	require.Contains(t, base.Available(), config.Limit, "the receiver keeps its availability")
	require.NotContains(t, withLimit.Available(), config.Limit)
}

func TestBuilderKeepsFirstError(t *testing.T) {
	b := Begin[[]bool, int, fitness.Empty]().
		Select(evo.Tournament[[]bool, int, fitness.Empty]{}).
		Spawn(10, randomBits).
		Spawn(10, randomBits)

	var stepErr *config.StepError
	require.ErrorAs(t, b.Err(), &stepErr)
	require.Equal(t, config.Select, stepErr.Step)
	require.ErrorIs(t, b.Err(), config.ErrStepUnavailable)
	require.Nil(t, b.Available())

	_, err := b.Build()
	require.ErrorIs(t, err, config.ErrStepUnavailable)
}

func TestBuilderRejectsReuse(t *testing.T) {
	b := Begin[[]bool, int, fitness.Empty]().Spawn(10, randomBits).Limit(4).Limit(5)
	require.ErrorIs(t, b.Err(), config.ErrStepUsed)
}

func TestBuildWithoutCriterion(t *testing.T) {
	_, err := Begin[[]bool, int, fitness.Empty]().
		Spawn(10, randomBits).
		Reproduce(reproduce()).
		Evaluate(ones, fitness.Maximize[int]()).
		ScaleFitness(nil).
		Track(1).
		Select(evo.Tournament[[]bool, int, fitness.Empty]{}).
		Couple(evo.Pairwise[[]bool, int, fitness.Empty]{}).
		Replace(evo.ReplaceWorst[[]bool, int, fitness.Empty]{}).
		Build(quiet())
	require.ErrorIs(t, err, evo.ErrMissingOperator)
	require.ErrorContains(t, err, "stop")
}

func TestBuildAndRunOneMax(t *testing.T) {
	generations := 0
	m, err := Begin[[]bool, int, fitness.Empty]().
		Limit(16).
		Spawn(20, randomBits).
		Reproduce(reproduce()).
		Evaluate(ones, fitness.Maximize[int]()).
		ScaleFitness(nil).
		Track(5, stats.Extremes[[]bool, int, fitness.Empty](population.Raw)).
		Elite(1).
		Stop(evo.Generations[[]bool, int, fitness.Empty]{Limit: 10}).
		Observe(func(evo.Generation[[]bool, int, fitness.Empty]) { generations++ }).
		Select(evo.Tournament[[]bool, int, fitness.Empty]{Size: 2}).
		Couple(evo.Pairwise[[]bool, int, fitness.Empty]{}).
		Replace(evo.ReplaceWorst[[]bool, int, fitness.Empty]{}).
		Build(evo.WithSeed(9), quiet())
	require.NoError(t, err)

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 10, result.Generations)
	require.Equal(t, 11, generations)
	require.Equal(t, 16, result.Population.Len(), "limit trims the spawned population")

	latest, ok := result.History.Latest()
	require.True(t, ok)
	bounds, ok := stats.Value[stats.Bounds[int, fitness.Empty]](latest, stats.ExtremesName(population.Raw))
	require.True(t, ok)
	require.True(t, bounds.Valid)
	require.GreaterOrEqual(t, bounds.Best.Raw, bounds.Worst.Raw)
}

func TestBuildAndRunScaled(t *testing.T) {
	m, err := Begin[[]bool, int, float64]().
		Spawn(12, randomBits).
		Reproduce(reproduce()).
		Evaluate(ones, fitness.Maximize[int]()).
		ScaleFitness(fitness.Maximize[float64]()).
		Track(3).
		Scale(evo.Exponential[[]bool, int, float64]{Base: 0.9}).
		Stop(evo.Generations[[]bool, int, float64]{Limit: 5}).
		Select(evo.RouletteScaled[[]bool, int, float64](0)).
		Couple(evo.Pairwise[[]bool, int, float64]{}).
		Replace(evo.ReplaceParents[[]bool, int, float64]{}).
		Build(evo.WithSeed(2), quiet())
	require.NoError(t, err)

	result, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 5, result.Generations)
	require.Equal(t, 3, result.History.Len())
}
