package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"evoframe/pkg/evoframe"
)

func writeConfig(t *testing.T, payload map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run_config.json")
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestOneMaxRequestFromConfig(t *testing.T) {
	raw, err := loadConfig(writeConfig(t, map[string]any{
		"bits":          24,
		"population":    30,
		"generations":   12,
		"seed":          77,
		"selection":     "roulette",
		"crossover":     "two_point",
		"mutation_rate": 0.05,
		"elite":         3,
		"workers":       2,
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	req := oneMaxRequestFromConfig(raw)
	if req.Bits != 24 || req.Population != 30 || req.Generations != 12 || req.Seed != 77 {
		t.Fatalf("unexpected sizes: %+v", req)
	}
	if req.Selection != "roulette" || req.Crossover != "two_point" || req.MutationRate != 0.05 || req.Elite != 3 {
		t.Fatalf("unexpected operators: %+v", req)
	}
}

func TestZDT1RequestFromConfigIgnoresWrongTypes(t *testing.T) {
	raw, err := loadConfig(writeConfig(t, map[string]any{
		"vars":    "many",
		"ranking": "strength",
		"archive": 3,
		"elite":   2,
	}))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	req := zdt1RequestFromConfig(raw)
	if req.Vars != 0 || req.Archive != "" {
		t.Fatalf("mistyped fields should be ignored: %+v", req)
	}
	if req.Ranking != "strength" || req.Elite != 2 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestLoadConfigRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfig(path); err == nil || !strings.Contains(err.Error(), "broken.json") {
		t.Fatalf("expected parse error naming the file, got %v", err)
	}
}

func TestOverrideOneMaxFromFlags(t *testing.T) {
	req := evoframe.OneMaxRequest{Bits: 24, Selection: "roulette", Seed: 1}
	err := overrideOneMaxFromFlags(&req,
		map[string]bool{"bits": true, "seed": true, "config": true},
		map[string]any{"bits": 10, "seed": int64(9), "selection": "best"},
	)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if req.Bits != 10 || req.Seed != 9 || req.Selection != "roulette" {
		t.Fatalf("only set flags should override: %+v", req)
	}

	err = overrideOneMaxFromFlags(&req, map[string]bool{"ranking": true}, map[string]any{"ranking": "level"})
	if err == nil {
		t.Fatal("expected unsupported flag error")
	}
}

func TestOverrideZDT1FromFlags(t *testing.T) {
	req := evoframe.ZDT1Request{Archive: "preserved"}
	err := overrideZDT1FromFlags(&req,
		map[string]bool{"archive": true, "vars": true},
		map[string]any{"archive": "reduced", "vars": 5},
	)
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if req.Archive != "reduced" || req.Vars != 5 {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestRunCommands(t *testing.T) {
	if err := run(context.Background(), nil); err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(context.Background(), []string{"sphere"}); err == nil {
		t.Fatal("expected unknown command error")
	}
	if err := run(context.Background(), []string{"onemax", "-bits", "8", "-population", "8", "-generations", "2"}); err != nil {
		t.Fatalf("onemax: %v", err)
	}
	config := writeConfig(t, map[string]any{"vars": 4, "population": 10, "generations": 2, "archive": "reduced"})
	if err := run(context.Background(), []string{"zdt1", "-config", config, "-ranking", "binary"}); err != nil {
		t.Fatalf("zdt1: %v", err)
	}
	if err := run(context.Background(), []string{"zdt1", "-archive", "everything"}); err == nil {
		t.Fatal("expected unknown archive error")
	}
}
