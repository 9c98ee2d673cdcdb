package evo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"evoframe/internal/config"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/stats"
	"evoframe/internal/tag"
)

var ErrMissingOperator = errors.New("missing operator")

// MonitorConfig is the assembled operator set of a run.
type MonitorConfig[C, R, S any] struct {
	TargetSize    int
	Tags          []tag.Initializer
	Spawn         SpawnFragment[C]
	Reproduce     ReproduceFragment[C]
	Evaluate      EvaluateFragment[C, R]
	ScaledFitness ScaledFitnessFragment[S]
	Track         TrackFragment[C, R, S]
	Scaling       Scaling[C, R, S]
	Elite         int

	Ranking    Ranking[C, R, S]
	Clustering Clustering[C, R, S]
	Crowding   Crowding[C, R, S]
	Pruning    Pruning[C, R, S]
	Projection Projection[C, R, S]

	Criterion   Criterion[C, R, S]
	Observers   []Observer[C, R, S]
	Selection   Selection[C, R, S]
	Coupling    Coupling[C, R, S]
	Replacement Replacement[C, R, S]
}

// ConfigFromRecord collects the fragments of a finished configuration chain.
// Fragments of unused steps are left zero.
func ConfigFromRecord[C, R, S any](rec *config.Record) MonitorConfig[C, R, S] {
	var cfg MonitorConfig[C, R, S]
	cfg.TargetSize, _ = config.Get[int](rec, config.Limit)
	cfg.Tags, _ = config.Get[[]tag.Initializer](rec, config.Tag)
	cfg.Spawn, _ = config.Get[SpawnFragment[C]](rec, config.Spawn)
	cfg.Reproduce, _ = config.Get[ReproduceFragment[C]](rec, config.Reproduce)
	cfg.Evaluate, _ = config.Get[EvaluateFragment[C, R]](rec, config.Evaluate)
	cfg.ScaledFitness, _ = config.Get[ScaledFitnessFragment[S]](rec, config.ScaleFitness)
	cfg.Track, _ = config.Get[TrackFragment[C, R, S]](rec, config.Track)
	cfg.Scaling, _ = config.Get[Scaling[C, R, S]](rec, config.Scale)
	cfg.Elite, _ = config.Get[int](rec, config.Elite)
	cfg.Ranking, _ = config.Get[Ranking[C, R, S]](rec, config.Rank)
	cfg.Clustering, _ = config.Get[Clustering[C, R, S]](rec, config.Cluster)
	cfg.Crowding, _ = config.Get[Crowding[C, R, S]](rec, config.Crowd)
	cfg.Pruning, _ = config.Get[Pruning[C, R, S]](rec, config.Prune)
	cfg.Projection, _ = config.Get[Projection[C, R, S]](rec, config.Project)
	cfg.Criterion, _ = config.Get[Criterion[C, R, S]](rec, config.Stop)
	cfg.Observers, _ = config.Get[[]Observer[C, R, S]](rec, config.Observe)
	cfg.Selection, _ = config.Get[Selection[C, R, S]](rec, config.Select)
	cfg.Coupling, _ = config.Get[Coupling[C, R, S]](rec, config.Couple)
	cfg.Replacement, _ = config.Get[Replacement[C, R, S]](rec, config.Replace)
	return cfg
}

type monitorOptions struct {
	logger  *slog.Logger
	rng     *rand.Rand
	runID   string
	workers int
}

type Option func(*monitorOptions)

// WithLogger sets the run logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *monitorOptions) {
		o.logger = l
	}
}

// WithSeed seeds the run's random source.
func WithSeed(seed int64) Option {
	return func(o *monitorOptions) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(o *monitorOptions) {
		o.rng = rng
	}
}

// WithRunID replaces the generated run id.
func WithRunID(id string) Option {
	return func(o *monitorOptions) {
		o.runID = id
	}
}

// WithWorkers evaluates the initial population on n goroutines. The
// evaluator must then be safe for concurrent use.
func WithWorkers(n int) Option {
	return func(o *monitorOptions) {
		o.workers = n
	}
}

// Result is the outcome of a run.
type Result[C, R, S any] struct {
	RunID       string
	Generations int
	Evaluations int64
	Population  *population.Population[C, R, S]
	History     *stats.History
	// Archive ranks the final population when a ranking is configured.
	// Clusters come from the last clustering stage.
	Archive     pareto.Archive[population.Individual[C, R, S]]
	Clusters    pareto.ClusterSet
	Interrupted bool
}

// PopulationMonitor drives the generational loop over a configured operator
// set.
type PopulationMonitor[C, R, S any] struct {
	cfg     MonitorConfig[C, R, S]
	opts    monitorOptions
	tracker *stats.Tracker[C, R, S]
	local   LocalScaling[C, R, S]
	global  GlobalScaling[C, R, S]
}

// FromRecord builds a monitor from a finished configuration chain.
func FromRecord[C, R, S any](rec *config.Record, opts ...Option) (*PopulationMonitor[C, R, S], error) {
	return NewPopulationMonitor(ConfigFromRecord[C, R, S](rec), opts...)
}

func missing(step config.Step) error {
	return fmt.Errorf("%w: %s", ErrMissingOperator, step)
}

func NewPopulationMonitor[C, R, S any](cfg MonitorConfig[C, R, S], opts ...Option) (*PopulationMonitor[C, R, S], error) {
	switch {
	case cfg.Spawn.Init == nil:
		return nil, missing(config.Spawn)
	case cfg.Evaluate.Evaluator == nil || cfg.Evaluate.Comparator == nil:
		return nil, missing(config.Evaluate)
	case cfg.Criterion == nil:
		return nil, missing(config.Stop)
	case cfg.Selection == nil:
		return nil, missing(config.Select)
	case cfg.Coupling == nil:
		return nil, missing(config.Couple)
	case cfg.Replacement == nil:
		return nil, missing(config.Replace)
	case cfg.ScaledFitness.Enabled() && cfg.Scaling == nil && cfg.Projection == nil:
		return nil, missing(config.Scale)
	}
	if cfg.Spawn.Size <= 0 {
		return nil, fmt.Errorf("population size must be > 0")
	}
	if cfg.TargetSize < 0 {
		return nil, fmt.Errorf("target size must be >= 0")
	}
	if cfg.TargetSize == 0 {
		cfg.TargetSize = cfg.Spawn.Size
	}
	if cfg.Elite < 0 || cfg.Elite > cfg.TargetSize {
		return nil, fmt.Errorf("elite count must be in [0, target size]")
	}

	m := &PopulationMonitor[C, R, S]{cfg: cfg}
	if cfg.Scaling != nil {
		local, isLocal := cfg.Scaling.(LocalScaling[C, R, S])
		global, isGlobal := cfg.Scaling.(GlobalScaling[C, R, S])
		if !isLocal && !isGlobal {
			return nil, fmt.Errorf("scaling %T is neither local nor global", cfg.Scaling)
		}
		if isLocal {
			m.local = local
		} else {
			m.global = global
		}
	}

	tracker, err := stats.NewTracker(cfg.Track.Models...)
	if err != nil {
		return nil, fmt.Errorf("track: %w", err)
	}
	m.tracker = tracker

	for _, opt := range opts {
		opt(&m.opts)
	}
	if m.opts.logger == nil {
		m.opts.logger = slog.Default()
	}
	if m.opts.rng == nil {
		m.opts.rng = rand.New(rand.NewSource(1))
	}
	if m.opts.workers <= 0 {
		m.opts.workers = 1
	}
	return m, nil
}

func (m *PopulationMonitor[C, R, S]) newPopulation() *population.Population[C, R, S] {
	opts := []population.Option{
		population.WithCapacity(2 * max(m.cfg.TargetSize, m.cfg.Spawn.Size)),
		population.WithTargetSize(m.cfg.TargetSize),
	}
	if m.cfg.Scaling != nil {
		opts = append(opts, population.WithStableScaling(m.cfg.Scaling.Stable()))
	}
	scaled := m.cfg.ScaledFitness.Comparator
	if !m.cfg.ScaledFitness.Enabled() {
		scaled = nil
	}
	return population.New[C, R, S](m.cfg.Evaluate.Comparator, scaled, opts...)
}

func (m *PopulationMonitor[C, R, S]) reproduction(counters *stats.Counters) *Reproduction[C, R, S] {
	var scaling Scaling[C, R, S]
	if m.local != nil {
		scaling = m.local
	}
	return &Reproduction[C, R, S]{
		Crossover: m.cfg.Reproduce.Crossover,
		Mutation:  m.cfg.Reproduce.Mutation,
		Clone:     m.cfg.Reproduce.Clone,
		Evaluator: m.cfg.Evaluate.Evaluator,
		Scaling:   scaling,
		Tags:      m.cfg.Tags,
		Counters:  counters,
	}
}

// Run spawns the initial population and evolves it until the criterion is
// met or ctx is cancelled. Cancellation is checked once per generation,
// after the generation event, and ends the run cleanly with
// Result.Interrupted set. A cancellation while the initial population is
// evaluated is returned as an error.
func (m *PopulationMonitor[C, R, S]) Run(ctx context.Context) (Result[C, R, S], error) {
	runID := m.opts.runID
	if runID == "" {
		runID = uuid.NewString()
	}
	log := m.opts.logger.With("run_id", runID)
	rng := m.opts.rng

	counters, timers := stats.NewCounters(), stats.NewTimers()
	history := stats.NewHistory(m.cfg.Track.Depth)
	repro := m.reproduction(counters)
	pop := m.newPopulation()
	result := Result[C, R, S]{RunID: runID, Population: pop, History: history}

	log.Info("run started", "size", m.cfg.Spawn.Size, "target_size", m.cfg.TargetSize)
	if err := m.spawn(ctx, rng, pop, repro); err != nil {
		return Result[C, R, S]{}, err
	}

	for gen := 0; ; gen++ {
		if m.global != nil {
			applyGlobal(pop, m.global)
		}
		history.Push(m.tracker.Snapshot(stats.Input[C, R, S]{
			Generation: gen,
			Population: pop,
			Counters:   counters,
			Timers:     timers,
		}))
		result.Generations = gen
		result.Evaluations = counters.Get(EvaluationsCounter)
		log.Debug("generation",
			"generation", gen,
			"size", pop.Len(),
			"evaluations", humanize.Comma(result.Evaluations),
		)

		ev := Generation[C, R, S]{RunID: runID, Number: gen, Population: pop, History: history}
		for _, observe := range m.cfg.Observers {
			observe(ev)
		}

		if ctx.Err() != nil {
			result.Interrupted = true
			m.finish(pop, &result)
			log.Info("run interrupted", "generation", gen, "size", pop.Len(), "evaluations", humanize.Comma(result.Evaluations))
			return result, nil
		}
		if m.cfg.Criterion.Done(pop, history) {
			break
		}

		stop := timers.Start("stages")
		m.stages(pop, &result)
		stop()
		m.breed(rng, pop, repro, timers)
	}

	m.finish(pop, &result)
	log.Info("run finished",
		"generation", result.Generations,
		"size", pop.Len(),
		"evaluations", humanize.Comma(result.Evaluations),
	)
	return result, nil
}

func (m *PopulationMonitor[C, R, S]) finish(pop *population.Population[C, R, S], result *Result[C, R, S]) {
	if m.cfg.Ranking != nil {
		result.Archive = m.cfg.Ranking.Rank(pop)
	}
}

// spawn creates and evaluates the initial population.
func (m *PopulationMonitor[C, R, S]) spawn(ctx context.Context, rng *rand.Rand, pop *population.Population[C, R, S], repro *Reproduction[C, R, S]) error {
	individuals := make([]population.Individual[C, R, S], m.cfg.Spawn.Size)
	for i := range individuals {
		individuals[i] = population.NewIndividual[C, R, S](m.cfg.Spawn.Init(rng), m.cfg.Tags...)
	}
	if err := m.evaluateAll(ctx, individuals); err != nil {
		return err
	}
	for i := range individuals {
		repro.Counters.Add(EvaluationsCounter, 1)
		if m.local != nil {
			m.local.Scale(&individuals[i])
		}
	}
	pop.Insert(individuals...)
	return nil
}

func (m *PopulationMonitor[C, R, S]) evaluateAll(ctx context.Context, individuals []population.Individual[C, R, S]) error {
	evaluate := m.cfg.Evaluate.Evaluator
	workers := min(m.opts.workers, len(individuals))
	if workers <= 1 {
		for i := range individuals {
			if err := ctx.Err(); err != nil {
				return err
			}
			individuals[i].Eval.Raw = evaluate(individuals[i].Chromosome)
		}
		return nil
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				individuals[i].Eval.Raw = evaluate(individuals[i].Chromosome)
			}
		}()
	}
	var err error
	for i := range individuals {
		if err = ctx.Err(); err != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return err
}

// stages runs the multi-objective stages that were configured, in order.
func (m *PopulationMonitor[C, R, S]) stages(pop *population.Population[C, R, S], result *Result[C, R, S]) {
	if m.cfg.Ranking != nil {
		m.cfg.Ranking.Rank(pop)
	}
	if m.cfg.Clustering != nil {
		result.Clusters = m.cfg.Clustering.Cluster(pop)
	}
	if m.cfg.Crowding != nil {
		m.cfg.Crowding.Crowd(pop)
	}
	if m.cfg.Pruning != nil {
		m.cfg.Pruning.Prune(pop)
	}
	if m.cfg.Projection != nil {
		m.cfg.Projection.Project(pop)
	}
}

// breed runs selection, coupling and replacement, then restores displaced
// elites and trims to the target size.
func (m *PopulationMonitor[C, R, S]) breed(rng *rand.Rand, pop *population.Population[C, R, S], repro *Reproduction[C, R, S], timers *stats.Timers) {
	elites := captureElites(pop, m.cfg.Elite)
	markParents(pop)

	stop := timers.Start("select")
	parents := m.cfg.Selection.Select(rng, pop)
	stop()

	stop = timers.Start("couple")
	offspring := m.cfg.Coupling.Couple(rng, pop, parents, repro)
	stop()

	stop = timers.Start("replace")
	m.cfg.Replacement.Replace(rng, pop, offspring)
	reinstateElites(pop, elites, func() { m.refresh(pop) })
	pop.TrimToTarget()
	stop()
}

// refresh recomputes the fitness that elitism orders by after replacement:
// global scaling, and the ranking tags with their crowding and projection.
// Fresh children carry none of these yet.
func (m *PopulationMonitor[C, R, S]) refresh(pop *population.Population[C, R, S]) {
	if m.global != nil {
		applyGlobal(pop, m.global)
	}
	if m.cfg.Ranking == nil {
		return
	}
	m.cfg.Ranking.Rank(pop)
	if m.cfg.Crowding != nil {
		m.cfg.Crowding.Crowd(pop)
	}
	if m.cfg.Projection != nil {
		m.cfg.Projection.Project(pop)
	}
}

// sortBest orders the population best first. Ranked populations without a
// scaled fitness use the crowded comparison, since dominance alone is only a
// partial order.
func sortBest[C, R, S any](pop *population.Population[C, R, S]) {
	if !pop.ScalingEnabled() {
		for i := 0; i < pop.Len(); i++ {
			if tag.Has[tag.FrontierLevel](pop.At(i).Tags) {
				sortCrowded(pop)
				return
			}
		}
	}
	pop.Sort(fitnessKind(pop))
}

// eliteMark identifies an elite across selection, coupling and replacement.
type eliteMark int

// captureElites marks the n best individuals and returns copies of them.
func captureElites[C, R, S any](pop *population.Population[C, R, S], n int) []population.Individual[C, R, S] {
	if n <= 0 || pop.Len() == 0 {
		return nil
	}
	sortBest(pop)
	n = min(n, pop.Len())
	elites := make([]population.Individual[C, R, S], n)
	for i := 0; i < n; i++ {
		ind := pop.At(i)
		tag.Put(&ind.Tags, eliteMark(i+1))
		elites[i] = *ind
		elites[i].Tags = ind.Tags.Clone()
	}
	return elites
}

// reinstateElites puts every elite that replacement displaced back over the
// worst individuals, then clears the marks. refresh runs before the worst
// are chosen.
func reinstateElites[C, R, S any](pop *population.Population[C, R, S], elites []population.Individual[C, R, S], refresh func()) {
	if len(elites) == 0 {
		return
	}
	present := make(map[eliteMark]bool, len(elites))
	for i := 0; i < pop.Len(); i++ {
		if mark, ok := tag.Lookup[eliteMark](pop.At(i).Tags); ok {
			present[mark] = true
		}
	}

	var displaced []population.Individual[C, R, S]
	for i, elite := range elites {
		if !present[eliteMark(i+1)] {
			displaced = append(displaced, elite)
		}
	}
	if len(displaced) > 0 {
		if refresh != nil {
			refresh()
		}
		sortBest(pop)
		pairs := make([]population.Replacement[C, R, S], 0, len(displaced))
		for slot := pop.Len() - 1; slot >= 0 && len(pairs) < len(displaced); slot-- {
			if tag.Has[eliteMark](pop.At(slot).Tags) {
				continue
			}
			pairs = append(pairs, population.Replacement[C, R, S]{Parent: slot, Child: displaced[len(pairs)]})
		}
		pop.Replace(pairs)
	}
	for i := 0; i < pop.Len(); i++ {
		tag.Delete[eliteMark](&pop.At(i).Tags)
	}
}
