package pareto

import "fmt"

// Policy selects how much of the frontier decomposition a ranking returns.
// Tags on the population are written regardless of the policy.
type Policy uint8

const (
	// Preserved keeps every frontier in order.
	Preserved Policy = iota
	// Reduced keeps the first frontier plus one bucket with everything else.
	Reduced
	// Nondominated keeps only the first frontier.
	Nondominated
	// Erased returns an empty archive.
	Erased
)

func (p Policy) String() string {
	switch p {
	case Preserved:
		return "preserved"
	case Reduced:
		return "reduced"
	case Nondominated:
		return "nondominated"
	case Erased:
		return "erased"
	default:
		return "unknown"
	}
}

// ParsePolicy resolves a policy by name.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range []Policy{Preserved, Reduced, Nondominated, Erased} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown archive policy: %s", name)
}

// Archive is a flat vector of pointers into a population with frontier
// boundaries. It is valid until the population is next mutated.
type Archive[I any] struct {
	items  []*I
	bounds []int
}

// Len is the number of frontiers.
func (a Archive[I]) Len() int {
	return len(a.bounds)
}

// Size is the number of individuals across all frontiers.
func (a Archive[I]) Size() int {
	return len(a.items)
}

// Frontier returns the k-th frontier, 0-based.
func (a Archive[I]) Frontier(k int) []*I {
	start := 0
	if k > 0 {
		start = a.bounds[k-1]
	}
	return a.items[start:a.bounds[k]]
}

func (a Archive[I]) Sizes() []int {
	out := make([]int, len(a.bounds))
	start := 0
	for k, end := range a.bounds {
		out[k] = end - start
		start = end
	}
	return out
}

// Items returns every archived individual in frontier order.
func (a Archive[I]) Items() []*I {
	return a.items
}

type archiveBuilder[I any] struct {
	policy  Policy
	archive Archive[I]
}

func (b *archiveBuilder[I]) add(members []*I) {
	if len(members) == 0 {
		return
	}
	a := &b.archive
	switch b.policy {
	case Erased:
		return
	case Nondominated:
		if len(a.bounds) > 0 {
			return
		}
	case Reduced:
		if len(a.bounds) == 2 {
			a.items = append(a.items, members...)
			a.bounds[1] = len(a.items)
			return
		}
	}
	a.items = append(a.items, members...)
	a.bounds = append(a.bounds, len(a.items))
}
