package category

import (
	"fmt"
	"strings"
	"sync"

	"bonarr/internal/domain"
)

// Registry holds category configuration for the lifetime of the process.
// Nothing persists across restarts; the native client keeps categories in
// its config file, but automation clients recreate the ones they need.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]domain.CategoryEntry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]domain.CategoryEntry)}
}

// Create registers a category, overwriting any existing entry of the
// same name.
func (r *Registry) Create(name, savePath string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: category required", domain.ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[name] = domain.CategoryEntry{Name: name, SavePath: savePath}
	return nil
}

// Remove drops the named categories. Unknown names are ignored.
func (r *Registry) Remove(names []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, name := range names {
		delete(r.entries, name)
	}
}

// List returns a snapshot of the registry keyed by category name.
func (r *Registry) List() map[string]domain.CategoryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := make(map[string]domain.CategoryEntry, len(r.entries))
	for name, entry := range r.entries {
		snapshot[name] = entry
	}
	return snapshot
}
