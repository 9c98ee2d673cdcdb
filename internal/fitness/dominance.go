package fitness

// Dominate lifts a component comparator to Pareto dominance over vectors.
// The result is Less when a dominates b, Greater when b dominates a,
// Equivalent when neither has a better component and Unordered when both do.
// Vectors are compared over their common prefix.
func Dominate[F any](inner Comparator[F]) Comparator[[]F] {
	return func(a, b []F) Ordering {
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		anyA, anyB := false, false
		for i := 0; i < n; i++ {
			switch inner(a[i], b[i]) {
			case Less:
				anyA = true
			case Greater:
				anyB = true
			}
			if anyA && anyB {
				return Unordered
			}
		}
		switch {
		case anyA:
			return Less
		case anyB:
			return Greater
		default:
			return Equivalent
		}
	}
}

// Dominates reports whether a dominates b under a dominance comparator.
func Dominates[F any](c Comparator[F], a, b F) bool {
	return c(a, b) == Less
}
