// Package stats tracks per-generation statistics. Models are computed in
// dependency order into a Snapshot and snapshots are kept in a bounded
// History.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Snapshot holds the values computed by each tracked model for one
// generation, keyed by model name.
type Snapshot struct {
	order  []string
	values map[string]any
}

func newSnapshot(capacity int) Snapshot {
	return Snapshot{order: make([]string, 0, capacity), values: make(map[string]any, capacity)}
}

// Set stores a model value. Setting a name twice keeps its original position.
func (s *Snapshot) Set(name string, v any) {
	if s.values == nil {
		s.values = make(map[string]any)
	}
	if _, exists := s.values[name]; !exists {
		s.order = append(s.order, name)
	}
	s.values[name] = v
}

// Names returns the model names in computation order.
func (s Snapshot) Names() []string {
	return append([]string(nil), s.order...)
}

func (s Snapshot) Len() int {
	return len(s.order)
}

// Value returns the value of a model as T.
func Value[T any](s Snapshot, name string) (T, bool) {
	var zero T
	v, ok := s.values[name]
	if !ok {
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}

// Generation is the value of the generation model, or -1 if it is not
// tracked.
func (s Snapshot) Generation() int {
	g, ok := Value[int](s, GenerationName)
	if !ok {
		return -1
	}
	return g
}

func (s Snapshot) String() string {
	var b strings.Builder
	for i, name := range s.order {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(render(s.values[name]))
	}
	return b.String()
}

func render(v any) string {
	switch x := v.(type) {
	case int:
		return humanize.Comma(int64(x))
	case int64:
		return humanize.Comma(x)
	case float64:
		return humanize.FormatFloat("#,###.####", x)
	case []float64:
		parts := make([]string, len(x))
		for i, f := range x {
			parts[i] = humanize.FormatFloat("#,###.####", f)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case time.Duration:
		return x.String()
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
