package pareto

// Cluster is one cluster of a level: its index and member count.
type Cluster struct {
	Index int
	Count int
}

// ClusterSet is an ordered sequence of levels, each a list of clusters.
// Individuals refer to clusters through tag.ClusterLabel.
type ClusterSet struct {
	levels [][]Cluster
}

// AddLevel appends an empty level and returns its position.
func (s *ClusterSet) AddLevel() int {
	s.levels = append(s.levels, nil)
	return len(s.levels) - 1
}

// AddCluster appends a cluster to the given level and returns its index
// within the level.
func (s *ClusterSet) AddCluster(level, count int) int {
	idx := len(s.levels[level])
	s.levels[level] = append(s.levels[level], Cluster{Index: idx, Count: count})
	return idx
}

func (s *ClusterSet) Levels() int {
	return len(s.levels)
}

func (s *ClusterSet) Level(k int) []Cluster {
	return s.levels[k]
}

// Clusters is the total number of clusters across levels.
func (s *ClusterSet) Clusters() int {
	total := 0
	for _, level := range s.levels {
		total += len(level)
	}
	return total
}

func (s *ClusterSet) Reset() {
	s.levels = s.levels[:0]
}
