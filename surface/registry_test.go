// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"testing"

	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

func noopFactory() (Backend, error) {
	return &noop.API{}, nil
}

// failingBackend fails instance creation.
type failingBackend struct {
	err error
}

func (b failingBackend) CreateInstance(*hal.InstanceDescriptor) (hal.Instance, error) {
	return nil, b.err
}

// TestRegistryRegister tests backend registration.
func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 50, noopFactory, nil)

	entry, ok := r.Get("test")
	if !ok {
		t.Fatal("registered backend not found")
	}

	if entry.Name != "test" {
		t.Errorf("Name = %s, want test", entry.Name)
	}
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50", entry.Priority)
	}
	if !entry.Available() {
		t.Error("backend should be available (nil Available func)")
	}
}

// TestRegistryUnregister tests backend removal.
func TestRegistryUnregister(t *testing.T) {
	r := NewRegistry()

	r.Register("temp", 10, noopFactory, nil)
	if _, ok := r.Get("temp"); !ok {
		t.Fatal("backend should exist before unregister")
	}

	r.Unregister("temp")

	if _, ok := r.Get("temp"); ok {
		t.Error("backend should not exist after unregister")
	}
}

// TestRegistryList tests listing backends.
func TestRegistryList(t *testing.T) {
	r := NewRegistry()

	r.Register("low", 10, noopFactory, nil)
	r.Register("high", 100, noopFactory, nil)
	r.Register("mid", 50, noopFactory, nil)

	list := r.List()
	want := []string{"high", "mid", "low"}

	if len(list) != len(want) {
		t.Fatalf("expected %d backends, got %d", len(want), len(list))
	}
	for i := range want {
		if list[i] != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, list[i], want[i])
		}
	}
}

// TestRegistryAvailable tests filtering by availability.
func TestRegistryAvailable(t *testing.T) {
	r := NewRegistry()

	r.Register("available", 100, noopFactory, func() bool { return true })
	r.Register("unavailable", 200, noopFactory, func() bool { return false })

	available := r.Available()

	if len(available) != 1 {
		t.Fatalf("expected 1 available backend, got %d", len(available))
	}
	if available[0] != "available" {
		t.Errorf("expected 'available', got %s", available[0])
	}
}

// TestRegistryConnect tests opening a named connection.
func TestRegistryConnect(t *testing.T) {
	r := NewRegistry()
	r.Register("specific", 50, noopFactory, nil)

	conn, err := r.Connect("specific")
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer conn.Close()

	if conn.Backend() != "specific" {
		t.Errorf("Backend() = %s, want specific", conn.Backend())
	}
}

// TestRegistryConnectNotFound tests error for unknown backend.
func TestRegistryConnectNotFound(t *testing.T) {
	r := NewRegistry()

	_, err := r.Connect("nonexistent")
	if err == nil {
		t.Fatal("expected error for nonexistent backend")
	}

	var notFound *BackendNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected BackendNotFoundError, got %T", err)
	}
	if notFound.Name != "nonexistent" {
		t.Errorf("error name = %s, want nonexistent", notFound.Name)
	}
}

// TestRegistryConnectUnavailable tests error for unavailable backend.
func TestRegistryConnectUnavailable(t *testing.T) {
	r := NewRegistry()
	r.Register("unavailable", 50, noopFactory, func() bool { return false })

	_, err := r.Connect("unavailable")

	var unavailable *BackendUnavailableError
	if !errors.As(err, &unavailable) {
		t.Errorf("expected BackendUnavailableError, got %v", err)
	}
}

// TestRegistryNoBackend tests error when no backends available.
func TestRegistryNoBackend(t *testing.T) {
	r := NewRegistry()

	_, err := r.ConnectBest()
	if !errors.Is(err, ErrNoBackendAvailable) {
		t.Errorf("expected ErrNoBackendAvailable, got %v", err)
	}
}

// TestRegistryFactoryError tests handling of factory errors.
func TestRegistryFactoryError(t *testing.T) {
	r := NewRegistry()

	expectedErr := errors.New("creation failed")
	r.Register("failing", 50, func() (Backend, error) {
		return nil, expectedErr
	}, nil)

	_, err := r.Connect("failing")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected factory error, got %v", err)
	}
}

// TestRegistryInstanceError tests handling of instance creation errors.
func TestRegistryInstanceError(t *testing.T) {
	r := NewRegistry()

	expectedErr := errors.New("no loader")
	r.Register("broken", 50, func() (Backend, error) {
		return failingBackend{err: expectedErr}, nil
	}, nil)

	_, err := r.Connect("broken")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected instance error, got %v", err)
	}
}

// TestRegistryBestFallsBack tests that a failing high-priority backend is skipped.
func TestRegistryBestFallsBack(t *testing.T) {
	r := NewRegistry()

	r.Register("broken", 100, func() (Backend, error) {
		return failingBackend{err: errors.New("no loader")}, nil
	}, nil)
	r.Register("working", 10, noopFactory, nil)

	conn, err := r.ConnectBest()
	if err != nil {
		t.Fatalf("ConnectBest failed: %v", err)
	}
	defer conn.Close()

	if conn.Backend() != "working" {
		t.Errorf("Backend() = %s, want working", conn.Backend())
	}
}

// TestRegistryBestAllFail tests that the last error is reported.
func TestRegistryBestAllFail(t *testing.T) {
	r := NewRegistry()

	lastErr := errors.New("last")
	r.Register("first", 100, func() (Backend, error) {
		return failingBackend{err: errors.New("first")}, nil
	}, nil)
	r.Register("second", 10, func() (Backend, error) {
		return failingBackend{err: lastErr}, nil
	}, nil)

	_, err := r.ConnectBest()
	if !errors.Is(err, lastErr) {
		t.Errorf("expected last backend error, got %v", err)
	}
}

// TestRegistryOverwrite tests that re-registering overwrites.
func TestRegistryOverwrite(t *testing.T) {
	r := NewRegistry()

	r.Register("test", 10, noopFactory, nil)
	r.Register("test", 50, noopFactory, nil)

	entry, _ := r.Get("test")
	if entry.Priority != 50 {
		t.Errorf("Priority = %d, want 50 (should be overwritten)", entry.Priority)
	}
}

// TestGlobalRegistry tests the built-in backends.
func TestGlobalRegistry(t *testing.T) {
	found := false
	for _, name := range Available() {
		if name == BackendNoop {
			found = true
			break
		}
	}
	if !found {
		t.Fatal("'noop' backend should be in global registry")
	}

	if _, ok := Get(BackendVulkan); !ok {
		t.Error("'vulkan' backend should be registered even when unavailable")
	}

	conn, err := Connect(BackendNoop)
	if err != nil {
		t.Fatalf("global Connect failed: %v", err)
	}
	conn.Close()
}

// TestBackendNotFoundError tests error message formatting.
func TestBackendNotFoundError(t *testing.T) {
	err := &BackendNotFoundError{Name: "vulkan"}
	if msg := err.Error(); msg != "surface: backend not found: vulkan" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}

// TestBackendUnavailableError tests error message formatting.
func TestBackendUnavailableError(t *testing.T) {
	err := &BackendUnavailableError{Name: "metal"}
	if msg := err.Error(); msg != "surface: backend unavailable: metal" {
		t.Errorf("error message = %q, unexpected format", msg)
	}
}
