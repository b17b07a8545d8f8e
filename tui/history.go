// Package tui provides a Bubble Tea terminal UI for the KarmaVerse engine.
package tui

// History is a bounded command history backing the Up/Down recall keys
// on the input line. Entries are stored oldest first; the cursor walks
// backward from the end and -1 means the user is typing fresh input.
type History struct {
	entries []string
	max     int
	cursor  int
}

// NewHistory creates a history buffer holding at most max entries.
func NewHistory(max int) *History {
	return &History{max: max, cursor: -1}
}

// Push records a submitted command. Repeating the previous command adds
// nothing, and the oldest entry falls off once the buffer is full.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	if h.max > 0 && len(h.entries) == h.max {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:h.max-1]
	}
	h.entries = append(h.entries, cmd)
}

// Prev steps to the next older entry, entering navigation mode on the
// first call. It reports false only when the history is empty.
func (h *History) Prev() (string, bool) {
	switch {
	case len(h.entries) == 0:
		return "", false
	case h.cursor < 0:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next steps toward newer entries. Walking past the most recent one
// leaves navigation mode and reports false, returning to fresh input.
func (h *History) Next() (string, bool) {
	if h.cursor < 0 {
		return "", false
	}
	if h.cursor++; h.cursor == len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
