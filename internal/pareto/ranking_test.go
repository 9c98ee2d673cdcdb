package pareto

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"evoframe/internal/fitness"
	"evoframe/internal/population"
	"evoframe/internal/tag"
)

type (
	mooIndividual = population.Individual[string, []float64, fitness.Empty]
	mooPopulation = population.Population[string, []float64, fitness.Empty]
)

// squarePopulation is A=(0,0), B=(1,0), C=(0,1), D=(1,1), minimised.
func squarePopulation() *mooPopulation {
	pop := population.New[string, []float64, fitness.Empty](dominance, nil)
	for _, item := range []struct {
		name string
		raw  []float64
	}{
		{"A", []float64{0, 0}},
		{"B", []float64{1, 0}},
		{"C", []float64{0, 1}},
		{"D", []float64{1, 1}},
	} {
		pop.Insert(mooIndividual{Chromosome: item.name, Eval: population.Evaluation[[]float64, fitness.Empty]{Raw: item.raw}})
	}
	return pop
}

func archiveNames(a Archive[mooIndividual]) [][]string {
	out := make([][]string, a.Len())
	for k := 0; k < a.Len(); k++ {
		for _, ind := range a.Frontier(k) {
			out[k] = append(out[k], ind.Chromosome)
		}
	}
	return out
}

func tagValues[T any](pop *mooPopulation) map[string]T {
	out := make(map[string]T, pop.Len())
	for _, ind := range pop.Individuals() {
		out[ind.Chromosome] = tag.Get[T](ind.Tags)
	}
	return out
}

func TestLevelRankingPreserved(t *testing.T) {
	pop := squarePopulation()
	archive := RankLevel(pop, Preserved)

	if diff := cmp.Diff([][]string{{"A"}, {"B", "C"}, {"D"}}, archiveNames(archive)); diff != "" {
		t.Fatalf("frontiers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 1}, archive.Sizes()); diff != "" {
		t.Fatalf("sizes mismatch (-want +got):\n%s", diff)
	}
	wantRanks := map[string]tag.IntegerRank{"A": 1, "B": 2, "C": 2, "D": 3}
	if diff := cmp.Diff(wantRanks, tagValues[tag.IntegerRank](pop)); diff != "" {
		t.Fatalf("integer ranks mismatch (-want +got):\n%s", diff)
	}
	wantLevels := map[string]tag.FrontierLevel{"A": 1, "B": 2, "C": 2, "D": 3}
	if diff := cmp.Diff(wantLevels, tagValues[tag.FrontierLevel](pop)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestBinaryRankingPreserved(t *testing.T) {
	pop := squarePopulation()
	archive := RankBinary(pop, Preserved)

	if diff := cmp.Diff([][]string{{"A"}, {"B", "C", "D"}}, archiveNames(archive)); diff != "" {
		t.Fatalf("frontiers mismatch (-want +got):\n%s", diff)
	}
	want := map[string]tag.BinaryRank{
		"A": tag.RankNondominated,
		"B": tag.RankDominated,
		"C": tag.RankDominated,
		"D": tag.RankDominated,
	}
	if diff := cmp.Diff(want, tagValues[tag.BinaryRank](pop)); diff != "" {
		t.Fatalf("binary ranks mismatch (-want +got):\n%s", diff)
	}
	wantLevels := map[string]tag.FrontierLevel{"A": 1, "B": 2, "C": 2, "D": 2}
	if diff := cmp.Diff(wantLevels, tagValues[tag.FrontierLevel](pop)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestLevelRankingNondominatedStillTagsEveryone(t *testing.T) {
	pop := squarePopulation()
	archive := RankLevel(pop, Nondominated)

	if diff := cmp.Diff([][]string{{"A"}}, archiveNames(archive)); diff != "" {
		t.Fatalf("frontiers mismatch (-want +got):\n%s", diff)
	}
	wantRanks := map[string]tag.IntegerRank{"A": 1, "B": 2, "C": 2, "D": 3}
	if diff := cmp.Diff(wantRanks, tagValues[tag.IntegerRank](pop)); diff != "" {
		t.Fatalf("integer ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestAccumulatedStrengthRanking(t *testing.T) {
	pop := squarePopulation()
	archive := RankAccumulatedStrength(pop, Preserved)

	if archive.Len() != 3 {
		t.Fatalf("expected 3 frontiers, got %d", archive.Len())
	}
	want := map[string]tag.RealRank{"A": 0, "B": 3, "C": 3, "D": 5}
	if diff := cmp.Diff(want, tagValues[tag.RealRank](pop)); diff != "" {
		t.Fatalf("real ranks mismatch (-want +got):\n%s", diff)
	}
}

func TestStrengthRanking(t *testing.T) {
	pop := squarePopulation()
	archive := RankStrength(pop, Preserved)

	if diff := cmp.Diff([][]string{{"A"}, {"B", "C"}, {"D"}}, archiveNames(archive)); diff != "" {
		t.Fatalf("frontiers mismatch (-want +got):\n%s", diff)
	}
	want := map[string]tag.RealRank{"A": 0, "B": 2, "C": 2, "D": 2 + 2.0/3.0}
	approx := cmpopts.EquateApprox(0, 1e-9)
	if diff := cmp.Diff(want, tagValues[tag.RealRank](pop), approx); diff != "" {
		t.Fatalf("real ranks mismatch (-want +got):\n%s", diff)
	}
	strengths := tagValues[StrengthValue](pop)
	if math.Abs(float64(strengths["A"])-1) > 1e-9 || math.Abs(float64(strengths["B"])-1.0/3.0) > 1e-9 {
		t.Fatalf("unexpected strengths %v", strengths)
	}
}

func TestAccumulatedLevelRanking(t *testing.T) {
	pop := squarePopulation()
	RankAccumulatedLevel(pop, Preserved)

	// A: 1, adds 1 to B, C, D. B: 2, adds 2 to D. C: 2, adds 2 to D. D: 5+1.
	want := map[string]tag.IntegerRank{"A": 1, "B": 2, "C": 2, "D": 6}
	if diff := cmp.Diff(want, tagValues[tag.IntegerRank](pop)); diff != "" {
		t.Fatalf("accumulated ranks mismatch (-want +got):\n%s", diff)
	}
	wantLevels := map[string]tag.FrontierLevel{"A": 1, "B": 2, "C": 2, "D": 3}
	if diff := cmp.Diff(wantLevels, tagValues[tag.FrontierLevel](pop)); diff != "" {
		t.Fatalf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestPoliciesShapeTheArchive(t *testing.T) {
	cases := []struct {
		policy Policy
		want   [][]string
	}{
		{Preserved, [][]string{{"A"}, {"B", "C"}, {"D"}}},
		{Reduced, [][]string{{"A"}, {"B", "C", "D"}}},
		{Nondominated, [][]string{{"A"}}},
		{Erased, [][]string{}},
	}
	for _, tc := range cases {
		t.Run(tc.policy.String(), func(t *testing.T) {
			pop := squarePopulation()
			archive := RankLevel(pop, tc.policy)
			if diff := cmp.Diff(tc.want, archiveNames(archive), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("archive mismatch (-want +got):\n%s", diff)
			}
			if got := tag.Get[tag.IntegerRank](pop.At(3).Tags); got != 3 {
				t.Fatalf("tags must be written under every policy, got rank %d", got)
			}
		})
	}
}

func TestRankingsAreIdempotent(t *testing.T) {
	for _, strategy := range []Strategy{Binary, Level, AccumulatedLevel, Strength, AccumulatedStrength} {
		t.Run(strategy.String(), func(t *testing.T) {
			pop := squarePopulation()
			first := Rank(pop, strategy, Preserved)
			firstTags := make([]string, pop.Len())
			for i, ind := range pop.Individuals() {
				firstTags[i] = ind.Tags.String()
			}
			second := Rank(pop, strategy, Preserved)
			for i, ind := range pop.Individuals() {
				if ind.Tags.String() != firstTags[i] {
					t.Fatalf("tags changed on second run: %s vs %s", firstTags[i], ind.Tags.String())
				}
			}
			if diff := cmp.Diff(first.Sizes(), second.Sizes()); diff != "" {
				t.Fatalf("archive sizes changed (-first +second):\n%s", diff)
			}
		})
	}
}

func TestRankingsOnEmptyAndSingletonPopulations(t *testing.T) {
	for _, strategy := range []Strategy{Binary, Level, AccumulatedLevel, Strength, AccumulatedStrength} {
		empty := population.New[string, []float64, fitness.Empty](dominance, nil)
		if archive := Rank(empty, strategy, Preserved); archive.Len() != 0 || archive.Size() != 0 {
			t.Fatalf("%s: empty population must give an empty archive", strategy)
		}

		single := population.New[string, []float64, fitness.Empty](dominance, nil)
		single.Insert(mooIndividual{Chromosome: "only", Eval: population.Evaluation[[]float64, fitness.Empty]{Raw: []float64{1, 1}}})
		archive := Rank(single, strategy, Preserved)
		if diff := cmp.Diff([]int{1}, archive.Sizes()); diff != "" {
			t.Fatalf("%s: singleton sizes mismatch (-want +got):\n%s", strategy, diff)
		}
		if tag.Get[tag.FrontierLevel](single.At(0).Tags) != 1 {
			t.Fatalf("%s: singleton must be level 1", strategy)
		}
	}
}

func TestParseNames(t *testing.T) {
	if s, err := ParseStrategy("accumulated_strength"); err != nil || s != AccumulatedStrength {
		t.Fatalf("unexpected strategy %v err=%v", s, err)
	}
	if _, err := ParseStrategy("nope"); err == nil {
		t.Fatal("expected unknown strategy error")
	}
	if p, err := ParsePolicy("reduced"); err != nil || p != Reduced {
		t.Fatalf("unexpected policy %v err=%v", p, err)
	}
}

func TestClusterSet(t *testing.T) {
	var set ClusterSet
	level := set.AddLevel()
	set.AddCluster(level, 3)
	idx := set.AddCluster(level, 1)
	if idx != 1 || set.Clusters() != 2 || set.Levels() != 1 {
		t.Fatalf("unexpected cluster set state: idx=%d clusters=%d levels=%d", idx, set.Clusters(), set.Levels())
	}
	if diff := cmp.Diff([]Cluster{{Index: 0, Count: 3}, {Index: 1, Count: 1}}, set.Level(0)); diff != "" {
		t.Fatalf("level mismatch (-want +got):\n%s", diff)
	}
	set.Reset()
	if set.Levels() != 0 {
		t.Fatal("expected reset set")
	}
}
