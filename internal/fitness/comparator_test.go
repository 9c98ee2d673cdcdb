package fitness

import "testing"

func TestMinimizeAndMaximize(t *testing.T) {
	minimize := Minimize[float64]()
	maximize := Maximize[int]()

	cases := []struct {
		name string
		got  Ordering
		want Ordering
	}{
		{"min less", minimize(1, 2), Less},
		{"min greater", minimize(3, 2), Greater},
		{"min equal", minimize(2, 2), Equivalent},
		{"max less", maximize(5, 2), Less},
		{"max greater", maximize(1, 2), Greater},
		{"max equal", maximize(7, 7), Equivalent},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, tc.got, tc.want)
		}
	}
}

func TestDisabledComparatorIsAlwaysUnordered(t *testing.T) {
	c := Disabled[Empty]()
	if got := c(Empty{}, Empty{}); got != Unordered {
		t.Fatalf("expected unordered, got %s", got)
	}
	if !IsEmpty[Empty]() {
		t.Fatal("expected Empty to be recognised")
	}
	if IsEmpty[float64]() {
		t.Fatal("float64 is not the empty marker")
	}
}

func TestDominate(t *testing.T) {
	c := Dominate(Minimize[float64]())

	cases := []struct {
		name string
		a, b []float64
		want Ordering
	}{
		{"dominates", []float64{0, 0}, []float64{1, 0}, Less},
		{"dominated", []float64{1, 1}, []float64{0, 1}, Greater},
		{"equal", []float64{1, 2}, []float64{1, 2}, Equivalent},
		{"mutually non-dominating", []float64{1, 0}, []float64{0, 1}, Unordered},
		{"common prefix", []float64{0, 5}, []float64{1}, Less},
	}
	for _, tc := range cases {
		if got := c(tc.a, tc.b); got != tc.want {
			t.Fatalf("%s: got %s want %s", tc.name, got, tc.want)
		}
	}
	if !Dominates(c, []float64{0, 0}, []float64{1, 1}) {
		t.Fatal("expected (0,0) to dominate (1,1)")
	}
}

func TestOrderingHelpers(t *testing.T) {
	if Less.Reverse() != Greater || Greater.Reverse() != Less || Unordered.Reverse() != Unordered {
		t.Fatal("unexpected reverse")
	}
	if Less.Sign() != -1 || Greater.Sign() != 1 || Unordered.Sign() != 0 || Equivalent.Sign() != 0 {
		t.Fatal("unexpected sign")
	}
	if !Minimize[int]().Better(1, 2) {
		t.Fatal("expected 1 to be better than 2 when minimizing")
	}
}
