package tag

import "fmt"

// FrontierLevel is the 1-based Pareto frontier an individual belongs to.
// Zero means undefined.
type FrontierLevel uint

type BinaryRank uint8

const (
	RankUndefined BinaryRank = iota
	RankNondominated
	RankDominated
)

func (r BinaryRank) String() string {
	switch r {
	case RankNondominated:
		return "nondominated"
	case RankDominated:
		return "dominated"
	default:
		return "undefined"
	}
}

// IntegerRank is written by level and accumulated level ranking.
type IntegerRank int

// RealRank is written by strength and accumulated strength ranking.
type RealRank float64

// CrowdDensity is non-negative; lower means less crowded.
type CrowdDensity float64

type clusterKind uint8

const (
	clusterUnassigned clusterKind = iota
	clusterUnique
	clusterProper
)

// ClusterLabel is one of unassigned, unique or proper(index). The zero value
// is unassigned.
type ClusterLabel struct {
	kind  clusterKind
	index int
}

func Unassigned() ClusterLabel {
	return ClusterLabel{kind: clusterUnassigned}
}

func Unique() ClusterLabel {
	return ClusterLabel{kind: clusterUnique}
}

func Proper(index int) ClusterLabel {
	return ClusterLabel{kind: clusterProper, index: index}
}

func (l ClusterLabel) IsUnassigned() bool { return l.kind == clusterUnassigned }
func (l ClusterLabel) IsUnique() bool { return l.kind == clusterUnique }

// Index returns the cluster index of a proper label.
func (l ClusterLabel) Index() (int, bool) {
	if l.kind != clusterProper {
		return 0, false
	}
	return l.index, true
}

func (l ClusterLabel) String() string {
	switch l.kind {
	case clusterUnique:
		return "unique"
	case clusterProper:
		return fmt.Sprintf("proper(%d)", l.index)
	default:
		return "unassigned"
	}
}

// Lineage marks parents and children during a MOO generation.
type Lineage uint8

const (
	LineageNone Lineage = iota
	LineageParent
	LineageChild
)

func (l Lineage) String() string {
	switch l {
	case LineageParent:
		return "parent"
	case LineageChild:
		return "child"
	default:
		return "none"
	}
}

// Age counts generations survived.
type Age uint
