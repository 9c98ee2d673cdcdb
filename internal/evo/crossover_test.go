package evo

import (
	"math"
	"math/rand"
	"slices"
	"strings"
	"testing"
)

func zeros(n int) []int { return make([]int, n) }

func ones(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = 1
	}
	return out
}

// conserved reports whether every position of the children holds the two
// parent genes of that position.
func conserved(a, b, x, y []int) bool {
	if len(x) != len(a) || len(y) != len(b) {
		return false
	}
	for i := range a {
		if !(x[i] == a[i] && y[i] == b[i]) && !(x[i] == b[i] && y[i] == a[i]) {
			return false
		}
	}
	return true
}

func TestSinglePointSwapsTails(t *testing.T) {
	a, b := zeros(8), ones(8)
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 20; round++ {
		x, y := SinglePoint[[]int, int]{}.Cross(rng, a, b)
		if !conserved(a, b, x, y) {
			t.Fatalf("genes not conserved: %v %v", x, y)
		}
		cut := slices.Index(x, 1)
		if cut < 1 || cut > 7 {
			t.Fatalf("cut %d outside (0, 8): %v", cut, x)
		}
		if slices.Contains(x[cut:], 0) {
			t.Fatalf("first child is not head(a)+tail(b): %v", x)
		}
	}
	if !slices.Equal(a, zeros(8)) || !slices.Equal(b, ones(8)) {
		t.Fatalf("parents were modified")
	}
}

func TestNPointAndUniformConserveGenes(t *testing.T) {
	a, b := zeros(10), ones(10)
	rng := rand.New(rand.NewSource(4))
	crossovers := []Crossover[[]int]{
		NPoint[[]int, int]{Points: 3},
		Uniform[[]int, int]{},
		Uniform[[]int, int]{Mix: 0.9},
	}
	for _, x := range crossovers {
		for round := 0; round < 10; round++ {
			c1, c2 := x.Cross(rng, a, b)
			if !conserved(a, b, c1, c2) {
				t.Fatalf("%T: genes not conserved: %v %v", x, c1, c2)
			}
		}
	}
}

func TestCrossoverProbabilitySkips(t *testing.T) {
	a, b := zeros(6), ones(6)
	rng := rand.New(rand.NewSource(8))
	x, y := NPoint[[]int, int]{Points: 2, Probability: 1e-12}.Cross(rng, a, b)
	if !slices.Equal(x, a) || !slices.Equal(y, b) {
		t.Fatalf("expected copies of the parents, got %v %v", x, y)
	}
	x[0] = 7
	if a[0] != 0 {
		t.Fatalf("skipped crossover returned a parent's backing array")
	}
}

func TestCrossoverPanicsOnShortChromosomes(t *testing.T) {
	crossovers := map[string]func(){
		"single point": func() { SinglePoint[[]int, int]{}.Cross(rand.New(rand.NewSource(1)), []int{1}, []int{2}) },
		"uniform":      func() { Uniform[[]int, int]{}.Cross(rand.New(rand.NewSource(1)), []int{1, 2}, []int{}) },
		"blend":        func() { Blend[[]float64, float64]{}.Cross(rand.New(rand.NewSource(1)), nil, nil) },
	}
	for name, cross := range crossovers {
		func() {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("%s: expected panic", name)
				}
				if msg, _ := r.(string); !strings.Contains(msg, "length >= 2") {
					t.Fatalf("%s: unexpected panic %v", name, r)
				}
			}()
			cross()
		}()
	}
}

func TestBlendStaysInWidenedInterval(t *testing.T) {
	a, b := []float64{0, 10}, []float64{1, 20}
	rng := rand.New(rand.NewSource(6))
	for round := 0; round < 50; round++ {
		x, y := Blend[[]float64, float64]{Alpha: 0.5}.Cross(rng, a, b)
		for _, c := range [][]float64{x, y} {
			if c[0] < -0.5 || c[0] > 1.5 || c[1] < 5 || c[1] > 25 {
				t.Fatalf("child outside widened interval: %v", c)
			}
		}
	}
}

func TestSimulatedBinaryPreservesMidpoint(t *testing.T) {
	a, b := []float64{0.2, 0.8, 0.5}, []float64{0.6, 0.1, 0.5}
	rng := rand.New(rand.NewSource(10))
	x, y := SimulatedBinary[[]float64, float64]{Eta: 15}.Cross(rng, a, b)
	for i := range a {
		if math.Abs((x[i]+y[i])-(a[i]+b[i])) > 1e-12 {
			t.Fatalf("gene %d: children %v %v do not keep the parents' midpoint", i, x[i], y[i])
		}
	}
}

func TestSimulatedBinaryClamps(t *testing.T) {
	a, b := []float64{0, 1}, []float64{1, 0}
	rng := rand.New(rand.NewSource(12))
	sbx := SimulatedBinary[[]float64, float64]{Eta: 0.5, Lower: 0, Upper: 1}
	for round := 0; round < 100; round++ {
		x, y := sbx.Cross(rng, a, b)
		for _, c := range [][]float64{x, y} {
			for _, g := range c {
				if g < 0 || g > 1 {
					t.Fatalf("gene %v outside [0, 1]", g)
				}
			}
		}
	}
}
