package population

import "evoframe/internal/tag"

// Evaluation pairs the raw fitness with the scaled fitness. When the scaled
// type is fitness.Empty scaling is disabled and Scaled carries nothing.
type Evaluation[R, S any] struct {
	Raw    R
	Scaled S
}

// Individual is a chromosome with its evaluation and tags.
type Individual[C, R, S any] struct {
	Chromosome C
	Eval       Evaluation[R, S]
	Tags       tag.Tags
}

// NewIndividual builds an unevaluated individual and applies the tag initializers.
func NewIndividual[C, R, S any](chromosome C, inits ...tag.Initializer) Individual[C, R, S] {
	ind := Individual[C, R, S]{Chromosome: chromosome}
	for _, init := range inits {
		init(&ind.Tags)
	}
	return ind
}

// Kind selects which fitness of an evaluation an operation uses.
type Kind uint8

const (
	Raw Kind = iota
	Scaled
)

func (k Kind) String() string {
	if k == Scaled {
		return "scaled"
	}
	return "raw"
}

// SortState records which fitness the population is currently sorted by.
type SortState uint8

const (
	SortedNone SortState = iota
	SortedRaw
	SortedScaled
	SortedBoth
)

// Covers reports whether the state implies a sort by k.
func (s SortState) Covers(k Kind) bool {
	switch s {
	case SortedBoth:
		return true
	case SortedRaw:
		return k == Raw
	case SortedScaled:
		return k == Scaled
	default:
		return false
	}
}

func (s SortState) String() string {
	switch s {
	case SortedRaw:
		return "raw"
	case SortedScaled:
		return "scaled"
	case SortedBoth:
		return "both"
	default:
		return "none"
	}
}
