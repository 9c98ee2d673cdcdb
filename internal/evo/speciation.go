package evo

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"evoframe/internal/fitness"
	"evoframe/internal/pareto"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

// ClusterStats captures the partition of the last Cluster call.
type ClusterStats struct {
	Clusters       int
	TargetClusters int
	Threshold      float64
	MeanSize       float64
	Largest        int
}

// AdaptiveClustering groups the members of each frontier by Euclidean
// distance in objective space. An individual joins the nearest cluster
// representative within Threshold or founds a new cluster. After each call
// the threshold is nudged toward TargetClusters clusters per frontier.
//
// Members of single-member clusters are labelled unique, the others
// proper(index) with the index local to their frontier.
type AdaptiveClustering[C any, F fitness.Number, S any] struct {
	TargetClusters int
	Threshold      float64
	MinThreshold   float64
	MaxThreshold   float64
	AdjustStep     float64

	last ClusterStats
}

// NewAdaptiveClustering targets about sqrt(populationSize) clusters.
func NewAdaptiveClustering[C any, F fitness.Number, S any](populationSize int) *AdaptiveClustering[C, F, S] {
	target := int(math.Sqrt(float64(populationSize)))
	if target < 2 {
		target = 2
	}
	return &AdaptiveClustering[C, F, S]{
		TargetClusters: target,
		Threshold:      0.1,
		MinThreshold:   0.001,
		MaxThreshold:   10.0,
		AdjustStep:     0.01,
	}
}

func (a *AdaptiveClustering[C, F, S]) Cluster(pop *population.Population[C, []F, S]) pareto.ClusterSet {
	var set pareto.ClusterSet
	for i := 0; i < pop.Len(); i++ {
		tag.Put(&pop.At(i).Tags, tag.Unassigned())
	}

	type group struct {
		representative []float64
		members        []int
	}
	total, largest, count := 0, 0, 0
	for _, members := range byLevel(pop) {
		var groups []*group
		for _, idx := range members {
			point := toFloats(pop.At(idx).Eval.Raw)
			best, bestDistance := -1, math.MaxFloat64
			for g, grp := range groups {
				if len(grp.representative) != len(point) {
					continue
				}
				if d := floats.Distance(point, grp.representative, 2); d < bestDistance {
					best, bestDistance = g, d
				}
			}
			if best == -1 || bestDistance > a.Threshold {
				groups = append(groups, &group{representative: point, members: []int{idx}})
				continue
			}
			groups[best].members = append(groups[best].members, idx)
		}

		level := set.AddLevel()
		for _, grp := range groups {
			index := set.AddCluster(level, len(grp.members))
			label := tag.Proper(index)
			if len(grp.members) == 1 {
				label = tag.Unique()
			}
			for _, idx := range grp.members {
				tag.Put(&pop.At(idx).Tags, label)
			}
			total += len(grp.members)
			largest = max(largest, len(grp.members))
		}
		count += len(groups)
		a.adjust(len(groups))
	}

	a.last = ClusterStats{
		Clusters:       count,
		TargetClusters: a.TargetClusters,
		Threshold:      a.Threshold,
		Largest:        largest,
	}
	if count > 0 {
		a.last.MeanSize = float64(total) / float64(count)
	}
	return set
}

func (a *AdaptiveClustering[C, F, S]) adjust(clusters int) {
	if clusters > a.TargetClusters {
		a.Threshold = math.Min(a.MaxThreshold, a.Threshold+a.AdjustStep)
	} else if clusters < a.TargetClusters {
		a.Threshold = math.Max(a.MinThreshold, a.Threshold-a.AdjustStep)
	}
}

// Stats describes the last partition.
func (a *AdaptiveClustering[C, F, S]) Stats() ClusterStats {
	return a.last
}

func toFloats[F fitness.Number](v []F) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}
