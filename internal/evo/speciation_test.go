package evo

import (
	"math"
	"testing"

	"evoframe/internal/fitness"
	"evoframe/internal/pareto"
	"evoframe/internal/tag"
)

func TestAdaptiveClusteringLabels(t *testing.T) {
	pop := points(
		[]float64{0, 1},
		[]float64{0.01, 0.99},
		[]float64{1, 0},
		[]float64{0.99, 0.01},
		[]float64{0.5, 0.5},
	)
	pareto.RankLevel(pop, pareto.Erased)

	clustering := NewAdaptiveClustering[string, float64, fitness.Empty](4)
	set := clustering.Cluster(pop)

	if set.Levels() != 1 || set.Clusters() != 3 {
		t.Fatalf("expected one level of three clusters, got %d levels %d clusters", set.Levels(), set.Clusters())
	}
	counts := []int{}
	for _, c := range set.Level(0) {
		counts = append(counts, c.Count)
	}
	if len(counts) != 3 || counts[0] != 2 || counts[1] != 2 || counts[2] != 1 {
		t.Fatalf("unexpected cluster sizes %v", counts)
	}

	wantLabels := []tag.ClusterLabel{tag.Proper(0), tag.Proper(0), tag.Proper(1), tag.Proper(1), tag.Unique()}
	for i, want := range wantLabels {
		if got := tag.Get[tag.ClusterLabel](pop.At(i).Tags); got != want {
			t.Fatalf("individual %d: label %s want %s", i, got, want)
		}
	}

	stats := clustering.Stats()
	if stats.Clusters != 3 || stats.Largest != 2 || math.Abs(stats.MeanSize-5.0/3) > 1e-12 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	// Three clusters against a target of two widens the threshold.
	if math.Abs(clustering.Threshold-0.11) > 1e-12 {
		t.Fatalf("threshold %v want 0.11", clustering.Threshold)
	}
}

func TestAdaptiveClusteringPerFrontier(t *testing.T) {
	pop := points(
		[]float64{0, 0},
		[]float64{1, 1},
		[]float64{1.01, 1.01},
	)
	pareto.RankLevel(pop, pareto.Erased)

	clustering := NewAdaptiveClustering[string, float64, fitness.Empty](4)
	set := clustering.Cluster(pop)
	if set.Levels() != 3 {
		t.Fatalf("expected a level per frontier, got %d", set.Levels())
	}
	for i := 0; i < pop.Len(); i++ {
		if label := tag.Get[tag.ClusterLabel](pop.At(i).Tags); !label.IsUnique() {
			t.Fatalf("individual %d: label %s want unique", i, label)
		}
	}
}

func TestAdaptiveClusteringThresholdBounds(t *testing.T) {
	clustering := &AdaptiveClustering[string, float64, fitness.Empty]{
		TargetClusters: 5,
		Threshold:      0.02,
		MinThreshold:   0.015,
		MaxThreshold:   1,
		AdjustStep:     0.01,
	}
	clustering.adjust(1)
	if clustering.Threshold != 0.015 {
		t.Fatalf("threshold %v must stop at the minimum", clustering.Threshold)
	}
	clustering.adjust(5)
	if clustering.Threshold != 0.015 {
		t.Fatalf("threshold must hold at the target, got %v", clustering.Threshold)
	}
}

func TestNewAdaptiveClusteringTarget(t *testing.T) {
	if got := NewAdaptiveClustering[string, float64, fitness.Empty](100).TargetClusters; got != 10 {
		t.Fatalf("target %d want 10", got)
	}
	if got := NewAdaptiveClustering[string, float64, fitness.Empty](1).TargetClusters; got != 2 {
		t.Fatalf("target %d want 2", got)
	}
}
