// Package history keeps a bounded ring of recently seen item names for
// shopping-list autosuggestion. The buffer is owned and injected by the
// caller's session; nothing here is global.
package history

import (
	"strings"
	"sync"
)

// Ring is a bounded, most-recent-first name buffer. Safe for concurrent
// use by one session's handlers.
type Ring struct {
	mu    sync.Mutex
	names []string
	head  int
	size  int
}

// NewRing builds a ring holding at most capacity names. Capacity below 1
// is raised to 1.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{names: make([]string, capacity)}
}

// Add records a name, evicting the oldest entry once full. Re-adding a
// name moves it to the front instead of duplicating it.
func (r *Ring) Add(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := 0; i < r.size; i++ {
		if strings.EqualFold(r.at(i), name) {
			r.removeAt(i)
			break
		}
	}
	r.head = (r.head - 1 + len(r.names)) % len(r.names)
	r.names[r.head] = name
	if r.size < len(r.names) {
		r.size++
	}
}

// Recent returns up to n names matching the prefix (case-insensitive),
// most recent first. An empty prefix matches everything.
func (r *Ring) Recent(prefix string, n int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lower := strings.ToLower(prefix)
	out := make([]string, 0, n)
	for i := 0; i < r.size && len(out) < n; i++ {
		name := r.at(i)
		if lower == "" || strings.HasPrefix(strings.ToLower(name), lower) {
			out = append(out, name)
		}
	}
	return out
}

// Len returns the number of stored names.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

func (r *Ring) at(i int) string {
	return r.names[(r.head+i)%len(r.names)]
}

// removeAt deletes the i-th most recent entry, shifting newer entries
// toward the vacated slot.
func (r *Ring) removeAt(i int) {
	for j := i; j > 0; j-- {
		r.names[(r.head+j)%len(r.names)] = r.names[(r.head+j-1)%len(r.names)]
	}
	r.head = (r.head + 1) % len(r.names)
	r.size--
}
