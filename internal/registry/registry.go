package registry

import (
	"sync"
)

// Entry is the bookkeeping record kept for one proxy.
type Entry struct {
	Delegate any    `yaml:"-"`
	Name     string `yaml:"name"`
	Reads    int64  `yaml:"reads"`
	Writes   int64  `yaml:"writes"`
}

// Registry maps proxy identities to access counters. Keys are compared with
// ==, so pointer keys give identity semantics. Entries are never removed.
type Registry[K comparable] struct {
	mu      sync.RWMutex
	entries map[K]*Entry
	order   []K
}

func New[K comparable]() *Registry[K] {
	return &Registry[K]{
		entries: make(map[K]*Entry),
	}
}

// Register creates a zeroed entry for key. Registering an existing key
// resets nothing and keeps the first entry.
func (r *Registry[K]) Register(key K, delegate any, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return
	}
	r.entries[key] = &Entry{
		Delegate: delegate,
		Name:     name,
	}
	r.order = append(r.order, key)
}

func (r *Registry[K]) RecordRead(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[key]
	if !exists {
		return false
	}
	entry.Reads++
	return true
}

func (r *Registry[K]) RecordWrite(key K) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[key]
	if !exists {
		return false
	}
	entry.Writes++
	return true
}

func (r *Registry[K]) Get(key K) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[key]
	if !exists {
		return Entry{}, false
	}
	return *entry, true
}

// Snapshot copies the entries for keys in the order given. Unknown keys are
// skipped.
func (r *Registry[K]) Snapshot(keys ...K) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(keys))
	for _, key := range keys {
		if entry, exists := r.entries[key]; exists {
			out = append(out, *entry)
		}
	}
	return out
}

// Entries copies every entry in registration order.
func (r *Registry[K]) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, *r.entries[key])
	}
	return out
}

func (r *Registry[K]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
