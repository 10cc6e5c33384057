package repulse

import (
	"runtime"
	"slices"
	"sync"
	"weak"
)

// Tracked is the registry entry of one element. ID is a stable handle in
// registration order.
type Tracked struct {
	ID    int
	Class Class
	State *State
}

// Registry maps elements to their physics state without keeping the
// elements alive. Entries disappear once their element is collected.
type Registry struct {
	// guards entries against GC cleanups, which run on their own goroutine
	mu      sync.Mutex
	entries map[weak.Pointer[Element]]*Tracked
	nextID  int
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[weak.Pointer[Element]]*Tracked)}
}

// Register creates a zeroed state for el unless it already has one. The
// second return reports whether a new entry was created.
func (r *Registry) Register(el *Element, class Class) (*Tracked, bool) {
	if el == nil {
		return nil, false
	}
	key := weak.Make(el)

	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.entries[key]; ok {
		return t, false
	}
	t := &Tracked{ID: r.nextID, Class: class, State: &State{}}
	r.nextID++
	r.entries[key] = t
	runtime.AddCleanup(el, r.forget, key)
	return t, true
}

func (r *Registry) forget(key weak.Pointer[Element]) {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
}

func (r *Registry) Lookup(el *Element) (*Tracked, bool) {
	if el == nil {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.entries[weak.Make(el)]
	return t, ok
}

// Len counts entries, including ones whose element is already unreachable
// but not yet cleaned up.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// LiveEntry pairs a live element with its registry record.
type LiveEntry struct {
	Element *Element
	*Tracked
}

// Live returns the entries whose element is still reachable, ordered by ID.
func (r *Registry) Live() []LiveEntry {
	r.mu.Lock()
	out := make([]LiveEntry, 0, len(r.entries))
	for key, t := range r.entries {
		if el := key.Value(); el != nil {
			out = append(out, LiveEntry{Element: el, Tracked: t})
		}
	}
	r.mu.Unlock()

	slices.SortFunc(out, func(a, b LiveEntry) int { return a.ID - b.ID })
	return out
}
