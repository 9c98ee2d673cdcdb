package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/dustin/go-humanize"

	"evoframe/pkg/evoframe"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "onemax":
		return runOneMax(ctx, args[1:])
	case "zdt1":
		return runZDT1(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func newClient(workers int, verbose bool) *evoframe.Client {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return evoframe.New(evoframe.Options{Logger: logger, Workers: workers})
}

func printProgress(p evoframe.Progress) {
	fmt.Printf("gen=%d %s\n", p.Generation, p.Stats)
}

func runOneMax(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("onemax", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	bits := fs.Int("bits", 32, "chromosome length")
	population := fs.Int("population", 50, "population size")
	generations := fs.Int("generations", 100, "generation limit")
	seed := fs.Int64("seed", 1, "rng seed")
	selection := fs.String("selection", "tournament", "parent selection: "+strings.Join(evoframe.SelectionNames(), "|"))
	crossover := fs.String("crossover", "uniform", "crossover: "+strings.Join(evoframe.CrossoverNames(), "|"))
	mutationRate := fs.Float64("mutation-rate", 0, "per-bit flip probability (0 uses 1/bits)")
	elite := fs.Int("elite", 0, "individuals kept across generations (0 uses population/5)")
	workers := fs.Int("workers", 1, "goroutines evaluating the initial population")
	verbose := fs.Bool("v", false, "log every generation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req := evoframe.OneMaxRequest{
		Bits:         *bits,
		Population:   *population,
		Generations:  *generations,
		Seed:         *seed,
		Selection:    *selection,
		Crossover:    *crossover,
		MutationRate: *mutationRate,
		Elite:        *elite,
	}
	nWorkers := *workers
	if *configPath != "" {
		raw, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		req = oneMaxRequestFromConfig(raw)
		if v, ok := asInt(raw["workers"]); ok && !setFlags["workers"] {
			nWorkers = v
		}
		if err := overrideOneMaxFromFlags(&req, setFlags, map[string]any{
			"bits":          *bits,
			"population":    *population,
			"generations":   *generations,
			"seed":          *seed,
			"selection":     *selection,
			"crossover":     *crossover,
			"mutation-rate": *mutationRate,
			"elite":         *elite,
		}); err != nil {
			return err
		}
	}
	req.Progress = printProgress

	summary, err := newClient(nWorkers, *verbose).RunOneMax(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s generations=%d evaluations=%s interrupted=%t\n",
		summary.RunID, summary.Generations, humanize.Comma(summary.Evaluations), summary.Interrupted)
	fmt.Printf("best=%d chromosome=%s\n", summary.FinalBest, summary.Best)
	return nil
}

func runZDT1(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("zdt1", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run config JSON path")
	vars := fs.Int("vars", 30, "decision variables")
	population := fs.Int("population", 50, "population size")
	generations := fs.Int("generations", 100, "generation limit")
	seed := fs.Int64("seed", 1, "rng seed")
	ranking := fs.String("ranking", "level", "ranking strategy: "+strings.Join(evoframe.RankingNames(), "|"))
	archive := fs.String("archive", "nondominated", "archive policy: "+strings.Join(evoframe.ArchiveNames(), "|"))
	elite := fs.Int("elite", 0, "individuals kept across generations")
	workers := fs.Int("workers", 1, "goroutines evaluating the initial population")
	verbose := fs.Bool("v", false, "log every generation")
	if err := fs.Parse(args); err != nil {
		return err
	}
	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		setFlags[f.Name] = true
	})

	req := evoframe.ZDT1Request{
		Vars:        *vars,
		Population:  *population,
		Generations: *generations,
		Seed:        *seed,
		Ranking:     *ranking,
		Archive:     *archive,
		Elite:       *elite,
	}
	nWorkers := *workers
	if *configPath != "" {
		raw, err := loadConfig(*configPath)
		if err != nil {
			return err
		}
		req = zdt1RequestFromConfig(raw)
		if v, ok := asInt(raw["workers"]); ok && !setFlags["workers"] {
			nWorkers = v
		}
		if err := overrideZDT1FromFlags(&req, setFlags, map[string]any{
			"vars":        *vars,
			"population":  *population,
			"generations": *generations,
			"seed":        *seed,
			"ranking":     *ranking,
			"archive":     *archive,
			"elite":       *elite,
		}); err != nil {
			return err
		}
	}
	req.Progress = printProgress

	summary, err := newClient(nWorkers, *verbose).RunZDT1(ctx, req)
	if err != nil {
		return err
	}
	fmt.Printf("run completed run_id=%s generations=%d evaluations=%s interrupted=%t\n",
		summary.RunID, summary.Generations, humanize.Comma(summary.Evaluations), summary.Interrupted)
	fmt.Printf("first_front=%d archive=%d clusters=%d\n", len(summary.FirstFront), summary.ArchiveSize, summary.Clusters)
	for _, p := range summary.FirstFront {
		fmt.Printf("  f1=%.4f f2=%.4f\n", p.F1, p.F2)
	}
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: evoctl <onemax|zdt1> [flags]", msg)
}
