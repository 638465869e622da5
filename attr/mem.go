package attr

import (
	"fmt"
	"sync"
)

// Mem is an in-memory Store. It backs tests that need to observe
// adapter traffic, and stands in for Xattr on filesystems without
// extended attribute support.
type Mem struct {
	mu    sync.Mutex
	attrs map[string]map[string][]byte

	// Failure modes for simulating degraded filesystems.
	Unsupported bool // every call fails with ErrUnsupported
	ReadOnly    bool // writes fail with ErrPermission

	// Call counters, useful for asserting cache behavior.
	Gets    int
	Sets    int
	Removes int
}

var _ Store = (*Mem)(nil)

// NewMem returns an empty in-memory attribute store.
func NewMem() *Mem {
	return &Mem{attrs: make(map[string]map[string][]byte)}
}

// Get returns the value stored under key on path, or ErrNotPresent.
func (m *Mem) Get(path, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.Unsupported {
		return nil, fmt.Errorf("get %s on %s: %w", key, path, ErrUnsupported)
	}
	value, ok := m.attrs[path][key]
	if !ok {
		return nil, fmt.Errorf("get %s on %s: %w", key, path, ErrNotPresent)
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value under key on path.
func (m *Mem) Set(path, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.Unsupported {
		return fmt.Errorf("set %s on %s: %w", key, path, ErrUnsupported)
	}
	if m.ReadOnly {
		return fmt.Errorf("set %s on %s: %w", key, path, ErrPermission)
	}
	if m.attrs[path] == nil {
		m.attrs[path] = make(map[string][]byte)
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.attrs[path][key] = stored
	return nil
}

// Remove deletes key from path.
func (m *Mem) Remove(path, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removes++
	if m.Unsupported {
		return fmt.Errorf("remove %s on %s: %w", key, path, ErrUnsupported)
	}
	if m.ReadOnly {
		return fmt.Errorf("remove %s on %s: %w", key, path, ErrPermission)
	}
	if _, ok := m.attrs[path][key]; !ok {
		return fmt.Errorf("remove %s on %s: %w", key, path, ErrNotPresent)
	}
	delete(m.attrs[path], key)
	if len(m.attrs[path]) == 0 {
		delete(m.attrs, path)
	}
	return nil
}
