// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Built-in backend names.
const (
	BackendNoop   = "noop"
	BackendVulkan = "vulkan"
)

// ErrNoBackendAvailable is returned when no registered backend is
// available on this system.
var ErrNoBackendAvailable = errors.New("surface: no backend available")

// BackendNotFoundError reports a backend name that was never registered.
type BackendNotFoundError struct {
	Name string
}

func (e *BackendNotFoundError) Error() string {
	return "surface: backend not found: " + e.Name
}

// BackendUnavailableError reports a registered backend that cannot run here.
type BackendUnavailableError struct {
	Name string
}

func (e *BackendUnavailableError) Error() string {
	return "surface: backend unavailable: " + e.Name
}

// Backend creates HAL instances. hal.Backend values and the no-op API
// both satisfy it.
type Backend interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// BackendFactory returns the Backend of a registry entry.
type BackendFactory func() (Backend, error)

// RegistryEntry is one registered backend.
type RegistryEntry struct {
	Name string

	// Priority orders automatic selection, highest first. GPU backends
	// use 100, the no-op backend 10.
	Priority int

	Factory BackendFactory

	// Available reports whether the backend can run on this system.
	Available func() bool
}

// Registry maps backend names to entries. The zero value is ready to use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]RegistryEntry
}

var defaultRegistry = &Registry{}

// NewRegistry returns an empty registry, e.g. for tests or for hosts
// that must not see globally registered backends.
func NewRegistry() *Registry {
	return &Registry{}
}

// Default returns the process-wide registry holding the built-in backends.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a backend to the default registry.
func Register(name string, priority int, factory BackendFactory, available func() bool) {
	defaultRegistry.Register(name, priority, factory, available)
}

// Available returns the available backends of the default registry.
func Available() []string { return defaultRegistry.Available() }

// Get looks up a backend in the default registry.
func Get(name string) (*RegistryEntry, bool) { return defaultRegistry.Get(name) }

// Connect connects through a named backend of the default registry.
func Connect(name string) (*Connection, error) { return defaultRegistry.Connect(name) }

// ConnectBest connects through the best backend of the default registry.
func ConnectBest() (*Connection, error) { return defaultRegistry.ConnectBest() }

// Register adds or replaces a backend. A nil available means always available.
func (r *Registry) Register(name string, priority int, factory BackendFactory, available func() bool) {
	if available == nil {
		available = func() bool { return true }
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.entries == nil {
		r.entries = make(map[string]RegistryEntry)
	}
	r.entries[name] = RegistryEntry{Name: name, Priority: priority, Factory: factory, Available: available}
}

// Unregister removes a backend.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, name)
}

// Get returns a copy of the named entry.
func (r *Registry) Get(name string) (*RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return &e, true
}

// List returns every backend name, highest priority first.
func (r *Registry) List() []string { return r.ranked(false) }

// Available returns the names of available backends, highest priority first.
func (r *Registry) Available() []string { return r.ranked(true) }

// ranked orders by priority, then by name so equal priorities are stable.
func (r *Registry) ranked(onlyAvailable bool) []string {
	r.mu.RLock()
	entries := make([]RegistryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if !onlyAvailable || e.Available() {
			entries = append(entries, e)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(entries, func(a, b RegistryEntry) int {
		if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if len(entries) == 0 {
		return nil
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// Connect creates a HAL instance through the named backend.
func (r *Registry) Connect(name string) (*Connection, error) {
	entry, ok := r.Get(name)
	if !ok {
		return nil, &BackendNotFoundError{Name: name}
	}
	if !entry.Available() {
		return nil, &BackendUnavailableError{Name: name}
	}

	backend, err := entry.Factory()
	if err != nil {
		return nil, fmt.Errorf("surface: backend %s: %w", name, err)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("surface: backend %s: create instance: %w", name, err)
	}

	slogger().Debug("surface: connected", "backend", name)
	return &Connection{backend: name, instance: instance}, nil
}

// ConnectBest tries the available backends in priority order and returns
// the first connection that succeeds, or the last error.
func (r *Registry) ConnectBest() (*Connection, error) {
	names := r.Available()
	if len(names) == 0 {
		return nil, ErrNoBackendAvailable
	}

	var lastErr error
	for _, name := range names {
		conn, err := r.Connect(name)
		if err == nil {
			return conn, nil
		}
		slogger().Warn("surface: backend connection failed", "backend", name, "err", err)
		lastErr = err
	}
	return nil, lastErr
}

// The Vulkan HAL registers itself with hal only when its package is
// linked; cmd/headless links it.
func init() {
	Register(BackendNoop, 10, func() (Backend, error) {
		return &noop.API{}, nil
	}, nil)

	Register(BackendVulkan, 100, func() (Backend, error) {
		b, ok := hal.GetBackend(gputypes.BackendVulkan)
		if !ok {
			return nil, &BackendUnavailableError{Name: BackendVulkan}
		}
		return b, nil
	}, func() bool {
		_, ok := hal.GetBackend(gputypes.BackendVulkan)
		return ok
	})
}
