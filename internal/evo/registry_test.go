package evo

import (
	"errors"
	"slices"
	"testing"

	"evoframe/internal/fitness"
)

type selectionFactory func(count int) Selection[[]float64, float64, fitness.Empty]

func TestRegisterAndResolve(t *testing.T) {
	r := NewRegistry[selectionFactory]("selection")
	if err := r.Register("random", func(count int) Selection[[]float64, float64, fitness.Empty] {
		return Random[[]float64, float64, fitness.Empty]{Count: count}
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	factory, err := r.Resolve("random")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := factory(3).(Random[[]float64, float64, fitness.Empty]); !ok {
		t.Fatalf("unexpected operator %T", factory(3))
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry[int]("crossover")
	if err := r.Register("one", 1); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if err := r.Register("one", 2); !errors.Is(err, ErrOperatorExists) {
		t.Fatalf("expected ErrOperatorExists, got: %v", err)
	}
	if v, _ := r.Resolve("one"); v != 1 {
		t.Fatalf("duplicate register replaced the entry: %d", v)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := NewRegistry[int]("mutation")
	if err := r.Register("", 1); err == nil {
		t.Fatalf("expected error for empty name")
	}
	if _, err := r.Resolve("missing"); !errors.Is(err, ErrOperatorNotFound) {
		t.Fatalf("expected ErrOperatorNotFound, got: %v", err)
	}
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := NewRegistry[int]("ranking")
	r.MustRegister("level", 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	r.MustRegister("level", 2)
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry[int]("selection")
	for i, name := range []string{"tournament", "best", "roulette"} {
		r.MustRegister(name, i)
	}
	if got := r.Names(); !slices.Equal(got, []string{"best", "roulette", "tournament"}) {
		t.Fatalf("unexpected names %v", got)
	}
}
