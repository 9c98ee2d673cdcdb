// Package config is the staged configuration engine. An EntryMap declares,
// per step, which steps it unlocks and which must already be used; a Node
// threads the accumulated Record through those transitions.
package config

import "fmt"

// Step is a named configuration transition.
type Step uint8

const (
	Begin Step = iota
	Limit
	Tag
	Spawn
	Reproduce
	Evaluate
	ScaleFitness
	Track
	Scale
	Rank
	Elite
	Cluster
	Crowd
	Prune
	Project
	Stop
	Select
	Couple
	Replace
	Observe

	stepCount
)

var stepNames = [stepCount]string{
	Begin:        "begin",
	Limit:        "limit",
	Tag:          "tag",
	Spawn:        "spawn",
	Reproduce:    "reproduce",
	Evaluate:     "evaluate",
	ScaleFitness: "scale_fitness",
	Track:        "track",
	Scale:        "scale",
	Rank:         "rank",
	Elite:        "elite",
	Cluster:      "cluster",
	Crowd:        "crowd",
	Prune:        "prune",
	Project:      "project",
	Stop:         "stop",
	Select:       "select",
	Couple:       "couple",
	Replace:      "replace",
	Observe:      "observe",
}

func (s Step) String() string {
	if !s.Valid() {
		return fmt.Sprintf("step(%d)", uint8(s))
	}
	return stepNames[s]
}

func (s Step) Valid() bool {
	return s < stepCount
}

// ParseStep resolves a step by its name.
func ParseStep(name string) (Step, error) {
	for s, n := range stepNames {
		if n == name {
			return Step(s), nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownStep, name)
}

// Steps lists every known step in declaration order.
func Steps() []Step {
	out := make([]Step, stepCount)
	for i := range out {
		out[i] = Step(i)
	}
	return out
}

// stepSet is a bitset over the known steps.
type stepSet uint32

func setOf(steps ...Step) stepSet {
	var s stepSet
	for _, step := range steps {
		s = s.with(step)
	}
	return s
}

func (s stepSet) with(step Step) stepSet {
	return s | 1<<step
}

func (s stepSet) without(step Step) stepSet {
	return s &^ (1 << step)
}

func (s stepSet) has(step Step) bool {
	return s&(1<<step) != 0
}

func (s stepSet) steps() []Step {
	var out []Step
	for step := Step(0); step < stepCount; step++ {
		if s.has(step) {
			out = append(out, step)
		}
	}
	return out
}
