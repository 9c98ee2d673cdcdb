package evoframe

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sort"
	"strings"

	"evoframe/internal/evo"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/stats"
	"evoframe/internal/tag"
)

const (
	defaultBits        = 32
	defaultVars        = 30
	defaultPopulation  = 50
	defaultGenerations = 100
	defaultSelection   = "tournament"
	defaultCrossover   = "uniform"
	defaultRanking     = "level"
	defaultArchive     = "nondominated"
)

type Options struct {
	Logger  *slog.Logger
	Workers int
}

// Client runs the sample problems.
type Client struct {
	logger  *slog.Logger
	workers int
}

func New(opts Options) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{logger: logger, workers: opts.Workers}
}

// Progress is reported once per generation.
type Progress struct {
	RunID      string
	Generation int
	Stats      string
}

type OneMaxRequest struct {
	Bits         int
	Population   int
	Generations  int
	Seed         int64
	Selection    string
	Crossover    string
	MutationRate float64
	Elite        int
	Progress     func(Progress)
}

type OneMaxSummary struct {
	RunID            string
	Generations      int
	Evaluations      int64
	BestByGeneration []int
	FinalBest        int
	Best             string
	Interrupted      bool
}

type ZDT1Request struct {
	Vars        int
	Population  int
	Generations int
	Seed        int64
	Ranking     string
	Archive     string
	Elite       int
	Progress    func(Progress)
}

// Point is one objective vector of the ZDT1 problem.
type Point struct {
	F1 float64
	F2 float64
}

type ZDT1Summary struct {
	RunID       string
	Generations int
	Evaluations int64
	FirstFront  []Point
	ArchiveSize int
	Clusters    int
	Interrupted bool
}

func (c *Client) options(seed int64) []evo.Option {
	return []evo.Option{evo.WithSeed(seed), evo.WithLogger(c.logger), evo.WithWorkers(c.workers)}
}

func progress[C, R, S any](report func(Progress)) evo.Observer[C, R, S] {
	return func(ev evo.Generation[C, R, S]) {
		if report == nil {
			return
		}
		p := Progress{RunID: ev.RunID, Generation: ev.Number}
		if latest, ok := ev.History.Latest(); ok {
			p.Stats = latest.String()
		}
		report(p)
	}
}

// RunOneMax maximises the number of set bits in a bit string.
func (c *Client) RunOneMax(ctx context.Context, req OneMaxRequest) (OneMaxSummary, error) {
	if req.Bits <= 0 {
		req.Bits = defaultBits
	}
	if req.Bits < 2 {
		return OneMaxSummary{}, fmt.Errorf("bits must be >= 2")
	}
	if req.Population <= 0 {
		req.Population = defaultPopulation
	}
	if req.Generations <= 0 {
		req.Generations = defaultGenerations
	}
	if req.Selection == "" {
		req.Selection = defaultSelection
	}
	if req.Crossover == "" {
		req.Crossover = defaultCrossover
	}
	if req.MutationRate <= 0 {
		req.MutationRate = 1 / float64(req.Bits)
	}
	if req.MutationRate > 1 {
		return OneMaxSummary{}, fmt.Errorf("mutation rate must be <= 1")
	}
	if req.Elite == 0 {
		req.Elite = max(req.Population/5, 1)
	}
	selection, err := oneMaxSelections.Resolve(req.Selection)
	if err != nil {
		return OneMaxSummary{}, err
	}
	crossover, err := oneMaxCrossovers.Resolve(req.Crossover)
	if err != nil {
		return OneMaxSummary{}, err
	}

	var bests []int
	record := func(ev evo.Generation[[]bool, int, Empty]) {
		latest, _ := ev.History.Latest()
		if b, ok := stats.Value[stats.Bounds[int, Empty]](latest, stats.ExtremesName(population.Raw)); ok && b.Valid {
			bests = append(bests, b.Best.Raw)
		}
	}

	m, err := SOO[[]bool, int, Empty]().
		Spawn(req.Population, randomBits(req.Bits)).
		Reproduce(evo.ReproduceFragment[[]bool]{
			Crossover: crossover,
			Mutation:  evo.BitFlip[[]bool]{Rate: req.MutationRate},
		}).
		Evaluate(countOnes, Maximize[int]()).
		ScaleFitness(nil).
		Track(1,
			stats.Extremes[[]bool, int, Empty](population.Raw),
			stats.Total(stats.RawScalar[[]bool, int, Empty]()),
			stats.Average(stats.RawScalar[[]bool, int, Empty]()),
		).
		Elite(req.Elite).
		Stop(evo.Any[[]bool, int, Empty]{
			evo.Goal[[]bool, int, Empty]{Target: req.Bits},
			evo.Generations[[]bool, int, Empty]{Limit: req.Generations},
		}).
		Observe(record, progress[[]bool, int, Empty](req.Progress)).
		Select(selection).
		Couple(evo.Pairwise[[]bool, int, Empty]{}).
		Replace(evo.ReplaceWorst[[]bool, int, Empty]{}).
		Build(c.options(req.Seed)...)
	if err != nil {
		return OneMaxSummary{}, fmt.Errorf("configure onemax: %w", err)
	}
	result, err := m.Run(ctx)
	if err != nil {
		return OneMaxSummary{}, err
	}

	summary := OneMaxSummary{
		RunID:            result.RunID,
		Generations:      result.Generations,
		Evaluations:      result.Evaluations,
		BestByGeneration: bests,
		Interrupted:      result.Interrupted,
	}
	if pop := result.Population; pop.Len() > 0 {
		pop.Sort(population.Raw)
		best := pop.At(0)
		summary.FinalBest = best.Eval.Raw
		summary.Best = bitString(best.Chromosome)
	}
	return summary, nil
}

// RunZDT1 approximates the Pareto front of the two-objective ZDT1 problem
// with frontier ranking, crowding and elitist frontier replacement.
func (c *Client) RunZDT1(ctx context.Context, req ZDT1Request) (ZDT1Summary, error) {
	if req.Vars <= 0 {
		req.Vars = defaultVars
	}
	if req.Vars < 2 {
		return ZDT1Summary{}, fmt.Errorf("vars must be >= 2")
	}
	if req.Population <= 0 {
		req.Population = defaultPopulation
	}
	if req.Generations <= 0 {
		req.Generations = defaultGenerations
	}
	if req.Ranking == "" {
		req.Ranking = defaultRanking
	}
	if req.Archive == "" {
		req.Archive = defaultArchive
	}
	strategy, err := pareto.ParseStrategy(req.Ranking)
	if err != nil {
		return ZDT1Summary{}, err
	}
	policy, err := pareto.ParsePolicy(req.Archive)
	if err != nil {
		return ZDT1Summary{}, err
	}

	b := MOO[[]float64, []float64, Empty]().
		Spawn(req.Population, uniformPoint(req.Vars)).
		Reproduce(evo.ReproduceFragment[[]float64]{
			Crossover: evo.SimulatedBinary[[]float64, float64]{Eta: 15, Probability: 0.9, Lower: 0, Upper: 1},
			Mutation:  evo.Gaussian[[]float64, float64]{Rate: 1 / float64(req.Vars), Sigma: 0.1, Lower: 0, Upper: 1},
		}).
		Evaluate(zdt1, Dominate(Minimize[float64]())).
		ScaleFitness(nil).
		Track(1,
			stats.Total(stats.RawVector[[]float64, float64, Empty]()),
			stats.Average(stats.RawVector[[]float64, float64, Empty]()),
			stats.Func[[]float64, []float64, Empty]("first_front", nil, countFirstFront),
		).
		Rank(evo.RankBy[[]float64, []float64, Empty]{Strategy: strategy, Policy: policy}).
		Crowd(evo.Crowd[[]float64, float64, Empty]{}).
		Cluster(evo.NewAdaptiveClustering[[]float64, float64, Empty](req.Population)).
		Select(evo.CrowdedTournament[[]float64, []float64, Empty]{}).
		Couple(evo.Pairwise[[]float64, []float64, Empty]{}).
		Replace(evo.ReplaceFrontier[[]float64, float64, Empty]{}).
		Stop(evo.Generations[[]float64, []float64, Empty]{Limit: req.Generations}).
		Observe(progress[[]float64, []float64, Empty](req.Progress))
	if req.Elite > 0 {
		b = b.Elite(req.Elite)
	}
	m, err := b.Build(c.options(req.Seed)...)
	if err != nil {
		return ZDT1Summary{}, fmt.Errorf("configure zdt1: %w", err)
	}
	result, err := m.Run(ctx)
	if err != nil {
		return ZDT1Summary{}, err
	}

	summary := ZDT1Summary{
		RunID:       result.RunID,
		Generations: result.Generations,
		Evaluations: result.Evaluations,
		ArchiveSize: result.Archive.Size(),
		Clusters:    result.Clusters.Clusters(),
		Interrupted: result.Interrupted,
	}
	for i := 0; i < result.Population.Len(); i++ {
		ind := result.Population.At(i)
		if tag.Get[tag.FrontierLevel](ind.Tags) == 1 {
			summary.FirstFront = append(summary.FirstFront, Point{F1: ind.Eval.Raw[0], F2: ind.Eval.Raw[1]})
		}
	}
	sort.Slice(summary.FirstFront, func(i, j int) bool {
		return summary.FirstFront[i].F1 < summary.FirstFront[j].F1
	})
	return summary, nil
}

func randomBits(n int) evo.Initializer[[]bool] {
	return func(rng *rand.Rand) []bool {
		c := make([]bool, n)
		for i := range c {
			c[i] = rng.Intn(2) == 0
		}
		return c
	}
}

func countOnes(c []bool) int {
	n := 0
	for _, b := range c {
		if b {
			n++
		}
	}
	return n
}

func bitString(c []bool) string {
	var b strings.Builder
	b.Grow(len(c))
	for _, bit := range c {
		if bit {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func uniformPoint(n int) evo.Initializer[[]float64] {
	return func(rng *rand.Rand) []float64 {
		x := make([]float64, n)
		for i := range x {
			x[i] = rng.Float64()
		}
		return x
	}
}

// zdt1 has the convex front f2 = 1 - sqrt(f1) where every variable but the
// first is zero.
func zdt1(x []float64) []float64 {
	g := 0.0
	for _, v := range x[1:] {
		g += v
	}
	g = 1 + 9*g/float64(len(x)-1)
	return []float64{x[0], g * (1 - math.Sqrt(x[0]/g))}
}

func countFirstFront(in stats.Input[[]float64, []float64, Empty], snap *stats.Snapshot) {
	n := 0
	for i := 0; i < in.Population.Len(); i++ {
		if tag.Get[tag.FrontierLevel](in.Population.At(i).Tags) == 1 {
			n++
		}
	}
	snap.Set("first_front", n)
}
