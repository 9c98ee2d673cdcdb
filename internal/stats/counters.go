package stats

import (
	"maps"
	"slices"
	"time"
)

// Counters is a set of named monotonic counters.
type Counters struct {
	m map[string]int64
}

func NewCounters() *Counters {
	return &Counters{m: make(map[string]int64)}
}

func (c *Counters) Add(name string, delta int64) {
	c.m[name] += delta
}

func (c *Counters) Get(name string) int64 {
	if c == nil {
		return 0
	}
	return c.m[name]
}

func (c *Counters) Names() []string {
	return slices.Sorted(maps.Keys(c.m))
}

// Timers accumulates wall time per name.
type Timers struct {
	m   map[string]time.Duration
	now func() time.Time
}

func NewTimers() *Timers {
	return &Timers{m: make(map[string]time.Duration), now: time.Now}
}

func (t *Timers) Add(name string, d time.Duration) {
	t.m[name] += d
}

// Start begins timing name; the returned func stops it.
func (t *Timers) Start(name string) func() {
	begin := t.now()
	return func() {
		t.Add(name, t.now().Sub(begin))
	}
}

func (t *Timers) Get(name string) time.Duration {
	if t == nil {
		return 0
	}
	return t.m[name]
}

func (t *Timers) Names() []string {
	return slices.Sorted(maps.Keys(t.m))
}
