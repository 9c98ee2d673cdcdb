package evoframe

import (
	"evoframe/internal/evo"
	"evoframe/internal/pareto"
)

var (
	oneMaxSelections = evo.NewRegistry[evo.Selection[[]bool, int, Empty]]("selection")
	oneMaxCrossovers = evo.NewRegistry[evo.Crossover[[]bool]]("crossover")
)

func init() {
	oneMaxSelections.MustRegister("tournament", evo.Tournament[[]bool, int, Empty]{Size: 3})
	oneMaxSelections.MustRegister("binary_tournament", evo.Tournament[[]bool, int, Empty]{Size: 2})
	oneMaxSelections.MustRegister("roulette", evo.RouletteRaw[[]bool, int, Empty](0))
	oneMaxSelections.MustRegister("best", evo.Best[[]bool, int, Empty]{})
	oneMaxSelections.MustRegister("random", evo.Random[[]bool, int, Empty]{})

	oneMaxCrossovers.MustRegister("single_point", evo.SinglePoint[[]bool, bool]{})
	oneMaxCrossovers.MustRegister("two_point", evo.NPoint[[]bool, bool]{Points: 2})
	oneMaxCrossovers.MustRegister("uniform", evo.Uniform[[]bool, bool]{})
}

// SelectionNames lists the selections RunOneMax accepts.
func SelectionNames() []string { return oneMaxSelections.Names() }

// CrossoverNames lists the crossovers RunOneMax accepts.
func CrossoverNames() []string { return oneMaxCrossovers.Names() }

// RankingNames lists the ranking strategies RunZDT1 accepts.
func RankingNames() []string {
	out := make([]string, 0, 5)
	for _, s := range []Strategy{pareto.Binary, pareto.Level, pareto.AccumulatedLevel, pareto.Strength, pareto.AccumulatedStrength} {
		out = append(out, s.String())
	}
	return out
}

// ArchiveNames lists the archive policies RunZDT1 accepts.
func ArchiveNames() []string {
	out := make([]string, 0, 4)
	for _, p := range []Policy{pareto.Preserved, pareto.Reduced, pareto.Nondominated, pareto.Erased} {
		out = append(out, p.String())
	}
	return out
}
