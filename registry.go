package paprika

import (
	"github.com/paprika-go/paprika/internal/registry"
)

// Registry holds the access counters of every proxy created against it,
// keyed by proxy identity. Entries are never removed.
type Registry = registry.Registry[*Proxy]

// Entry is the counter record of one proxy.
type Entry = registry.Entry

var defaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return registry.New[*Proxy]()
}

// DefaultRegistry returns the process-wide registry used when no
// WithRegistry option is given.
func DefaultRegistry() *Registry {
	return defaultRegistry
}
