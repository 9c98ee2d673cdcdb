package stats

import "iter"

// History is a bounded sequence of snapshots. Once full, pushing drops the
// oldest snapshot.
type History struct {
	ring  []Snapshot
	start int
	size  int
}

// NewHistory keeps up to depth snapshots. A depth below one keeps one.
func NewHistory(depth int) *History {
	if depth < 1 {
		depth = 1
	}
	return &History{ring: make([]Snapshot, depth)}
}

func (h *History) Depth() int {
	return len(h.ring)
}

func (h *History) Len() int {
	return h.size
}

func (h *History) Push(s Snapshot) {
	if h.size < len(h.ring) {
		h.ring[(h.start+h.size)%len(h.ring)] = s
		h.size++
		return
	}
	h.ring[h.start] = s
	h.start = (h.start + 1) % len(h.ring)
}

// At returns the i-th most recent snapshot; At(0) is the latest.
func (h *History) At(i int) (Snapshot, bool) {
	if i < 0 || i >= h.size {
		return Snapshot{}, false
	}
	return h.ring[(h.start+h.size-1-i)%len(h.ring)], true
}

func (h *History) Latest() (Snapshot, bool) {
	return h.At(0)
}

// All ranges from the oldest snapshot to the latest.
func (h *History) All() iter.Seq[Snapshot] {
	return func(yield func(Snapshot) bool) {
		for i := h.size - 1; i >= 0; i-- {
			s, _ := h.At(i)
			if !yield(s) {
				return
			}
		}
	}
}

func (h *History) Clear() {
	clear(h.ring)
	h.start, h.size = 0, 0
}
