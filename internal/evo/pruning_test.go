package evo

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"evoframe/internal/fitness"
	"evoframe/internal/tag"
)

func TestPruneDuplicates(t *testing.T) {
	pop := minimised(1, 2, 1, 3, 2)
	removed := PruneDuplicates[[]float64, float64, fitness.Empty]{}.Prune(pop)

	if diff := cmp.Diff([]float64{1, 2, 3}, raws(pop)); diff != "" {
		t.Fatalf("population mismatch (-want +got):\n%s", diff)
	}
	if len(removed) != 2 {
		t.Fatalf("expected 2 removed, got %d", len(removed))
	}
}

func TestPruneCrowdedDropsWorstFrontierDensestFirst(t *testing.T) {
	pop := minimised(0, 1, 2, 3, 4)
	for i, lv := range []struct {
		level   uint
		density float64
	}{
		{1, 0},
		{2, 0.4},
		{2, 0.6},
		{1, 0.9},
		{2, 0.5},
	} {
		tag.Put(&pop.At(i).Tags, tag.FrontierLevel(lv.level))
		tag.Put(&pop.At(i).Tags, tag.CrowdDensity(lv.density))
	}

	removed := PruneCrowded[[]float64, float64, fitness.Empty]{Limit: 3}.Prune(pop)

	if diff := cmp.Diff([]float64{0, 1, 3}, raws(pop)); diff != "" {
		t.Fatalf("population mismatch (-want +got):\n%s", diff)
	}
	var gone []float64
	for _, ind := range removed {
		gone = append(gone, ind.Eval.Raw)
	}
	if diff := cmp.Diff([]float64{2, 4}, gone); diff != "" {
		t.Fatalf("removed mismatch (-want +got):\n%s", diff)
	}
}

func TestPruneCrowdedWithinLimit(t *testing.T) {
	pop := minimised(0, 1)
	if removed := (PruneCrowded[[]float64, float64, fitness.Empty]{Limit: 2}).Prune(pop); removed != nil {
		t.Fatalf("expected nothing removed, got %v", removed)
	}
	if removed := (PruneCrowded[[]float64, float64, fitness.Empty]{}).Prune(pop); removed != nil {
		t.Fatalf("a zero limit disables pruning, got %v", removed)
	}
}
