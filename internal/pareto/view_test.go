package pareto

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"evoframe/internal/fitness"
)

var dominance = fitness.Dominate(fitness.Minimize[float64]())

func pointCompare(points [][]float64) func(a, b int) fitness.Ordering {
	return func(a, b int) fitness.Ordering {
		return dominance(points[a], points[b])
	}
}

func indices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestViewEmitsFrontiersInRankOrder(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	got := Frontiers(indices(len(points)), pointCompare(points))
	want := [][]int{{0}, {1, 2}, {3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("frontiers mismatch (-want +got):\n%s", diff)
	}
}

func TestViewIsLazy(t *testing.T) {
	points := [][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	calls := 0
	compare := pointCompare(points)
	view := NewView(indices(len(points)), func(a, b int) fitness.Ordering {
		calls++
		return compare(a, b)
	})
	if calls != 0 {
		t.Fatal("view must not compare before iteration")
	}
	first, ok := view.Next()
	if !ok || first.Level() != 1 || first.Len() != 1 {
		t.Fatalf("unexpected first frontier level=%d len=%d", first.Level(), first.Len())
	}
	if calls != 6 {
		t.Fatalf("expected one comparison per pair, got %d", calls)
	}
	if first.DominatorsTotal(0) != 0 || first.DominatedCount(0) != 3 {
		t.Fatalf("unexpected counters for frontier 1")
	}
	if diff := cmp.Diff([]int{1, 2, 3}, first.Dominated(0)); diff != "" {
		t.Fatalf("dominated mismatch (-want +got):\n%s", diff)
	}

	copyOfView := view
	second, ok := copyOfView.Next()
	if !ok || second.Level() != 2 {
		t.Fatal("copies share the cursor")
	}
}

func TestViewBoundaryCases(t *testing.T) {
	if got := Frontiers([]int{}, pointCompare(nil)); len(got) != 0 {
		t.Fatalf("empty input yields no frontiers, got %v", got)
	}

	single := [][]float64{{3, 3}}
	got := Frontiers(indices(1), pointCompare(single))
	if diff := cmp.Diff([][]int{{0}}, got); diff != "" {
		t.Fatalf("single input mismatch (-want +got):\n%s", diff)
	}

	front := [][]float64{{0, 3}, {1, 2}, {2, 1}, {3, 0}}
	got = Frontiers(indices(len(front)), pointCompare(front))
	if diff := cmp.Diff([][]int{{0, 1, 2, 3}}, got); diff != "" {
		t.Fatalf("mutually non-dominated mismatch (-want +got):\n%s", diff)
	}

	var zero View[int]
	if _, ok := zero.Next(); ok {
		t.Fatal("zero view is exhausted")
	}
}

func TestViewPartitionsRandomInput(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	points := make([][]float64, 60)
	for i := range points {
		points[i] = []float64{float64(rng.Intn(8)), float64(rng.Intn(8)), float64(rng.Intn(8))}
	}

	level := make(map[int]int, len(points))
	for f := range NewView(indices(len(points)), pointCompare(points)).All() {
		handles := f.Handles()
		if !slices.IsSorted(handles) {
			t.Fatalf("frontier %d does not preserve input order: %v", f.Level(), handles)
		}
		for _, h := range handles {
			if _, seen := level[h]; seen {
				t.Fatalf("handle %d emitted twice", h)
			}
			level[h] = f.Level()
		}
	}
	if len(level) != len(points) {
		t.Fatalf("union of frontiers has %d handles, want %d", len(level), len(points))
	}
	for a := range points {
		for b := range points {
			if fitness.Dominates(dominance, points[a], points[b]) && level[a] >= level[b] {
				t.Fatalf("%v dominates %v but levels are %d and %d", points[a], points[b], level[a], level[b])
			}
		}
	}
}
