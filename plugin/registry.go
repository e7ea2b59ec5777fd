package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry is an Importer backed by modules linked into the binary.
// Modules are keyed by the url they would otherwise be fetched from.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]Module)}
}

// Register adds a module under url, replacing any module already there.
func (r *Registry) Register(url string, m Module) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("module url is required")
	}
	if m.Default == nil {
		return fmt.Errorf("module %q: %w", url, ErrMissingDefaultExport)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.modules[url] = m
	return nil
}

// MustRegister is Register that panics on error, for use during program setup.
func (r *Registry) MustRegister(url string, m Module) {
	if err := r.Register(url, m); err != nil {
		panic(err)
	}
}

// ImportModule returns the module registered under url.
func (r *Registry) ImportModule(ctx context.Context, url string) (Module, error) {
	if err := ctx.Err(); err != nil {
		return Module{}, err
	}

	r.mu.RLock()
	m, ok := r.modules[url]
	r.mu.RUnlock()
	if !ok {
		return Module{}, fmt.Errorf("%w: %s", ErrModuleNotFound, url)
	}
	return m, nil
}

// Sources lists the registered urls in sorted order.
func (r *Registry) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	urls := make([]string, 0, len(r.modules))
	for url := range r.modules {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
