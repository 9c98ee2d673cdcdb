package fitness

import "golang.org/x/exp/constraints"

// Ordering is the three-way (plus unordered) result of comparing two fitness
// values. Less always means "better": comparators fold the optimisation
// direction in, so ranking and sorting code reads a single polarity.
type Ordering int8

const (
	Less       Ordering = -1
	Equivalent Ordering = 0
	Greater    Ordering = 1
	Unordered  Ordering = 2
)

func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equivalent:
		return "equivalent"
	case Greater:
		return "greater"
	case Unordered:
		return "unordered"
	default:
		return "unknown"
	}
}

// Reverse swaps Less and Greater.
func (o Ordering) Reverse() Ordering {
	switch o {
	case Less:
		return Greater
	case Greater:
		return Less
	default:
		return o
	}
}

// Sign maps the ordering onto the int convention of slices.SortStableFunc.
// Equivalent and unordered values compare as equal.
func (o Ordering) Sign() int {
	switch o {
	case Less:
		return -1
	case Greater:
		return 1
	default:
		return 0
	}
}

// Number is the set of scalar fitness types the numeric helpers accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Comparator orders two fitness values. It must be pure.
type Comparator[F any] func(a, b F) Ordering

// Better reports whether a is strictly better than b.
func (c Comparator[F]) Better(a, b F) bool {
	return c(a, b) == Less
}

// Minimize orders scalars so that smaller values are better.
func Minimize[F constraints.Ordered]() Comparator[F] {
	return func(a, b F) Ordering {
		switch {
		case a < b:
			return Less
		case a > b:
			return Greater
		default:
			return Equivalent
		}
	}
}

// Maximize orders scalars so that larger values are better.
func Maximize[F constraints.Ordered]() Comparator[F] {
	return func(a, b F) Ordering {
		switch {
		case a > b:
			return Less
		case a < b:
			return Greater
		default:
			return Equivalent
		}
	}
}

// Disabled never orders anything. It is the comparator of a fitness that is
// not meant to be ordered, typically the Empty scaled fitness.
func Disabled[F any]() Comparator[F] {
	return func(F, F) Ordering {
		return Unordered
	}
}

// Empty is the scaled fitness type of an algorithm without scaling.
type Empty struct{}

// IsEmpty reports whether F is the Empty marker.
func IsEmpty[F any]() bool {
	var zero F
	_, ok := any(zero).(Empty)
	return ok
}
