package visualizer

// HistoryLimit is the number of keys kept for display.
const HistoryLimit = 10

// History is a bounded, insertion-ordered list of display strings.
// The oldest entry is evicted once the limit is exceeded.
// It is not safe for concurrent use.
type History struct {
	entries []string
	limit   int
}

// NewHistory creates a history holding at most limit entries.
// A limit below one is raised to one.
func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{
		entries: make([]string, 0, limit+1),
		limit:   limit,
	}
}

// Append adds key as the newest entry.
func (h *History) Append(key string) {
	h.entries = append(h.entries, key)
	if len(h.entries) > h.limit {
		// Shift in place to keep the backing array bounded.
		n := copy(h.entries, h.entries[len(h.entries)-h.limit:])
		h.entries = h.entries[:n]
	}
}

// Snapshot returns a copy of the entries, oldest first.
func (h *History) Snapshot() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the maximum number of entries.
func (h *History) Limit() int {
	return h.limit
}
