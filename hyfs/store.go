package hyfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kitled/hyfs/attr"
)

// Store is the canonical entity store: the single source of truth
// mapping eid to record, plus the derived indexes (path, parent/child,
// tags) kept consistent with it. Records are inserted by the Scanner
// or by Add; they are never deleted.
//
// A single RWMutex guards all mutation, so one writer and any number
// of readers can share a Store. Every index update happens inside one
// lock region; a reader never observes a record present in one index
// but absent from another.
type Store struct {
	mu       sync.RWMutex
	resolver Resolver

	nodes  map[string]*Node           // eid -> record
	order  []string                   // eids in insertion order
	byPath map[string]string          // path -> eid
	byDir  map[string]map[string]bool // parent path -> child eids
	tagged map[string]map[string]bool // label -> eids
	labels map[string]map[string]bool // eid -> labels
}

// NewStore creates an empty store resolving identities through the
// given attribute store.
func NewStore(attrs attr.Store) *Store {
	return &Store{
		resolver: Resolver{Attrs: attrs},
		nodes:    make(map[string]*Node),
		byPath:   make(map[string]string),
		byDir:    make(map[string]map[string]bool),
		tagged:   make(map[string]map[string]bool),
		labels:   make(map[string]map[string]bool),
	}
}

// Attrs returns the attribute store identities are resolved through.
func (s *Store) Attrs() attr.Store {
	return s.resolver.Attrs
}

// Add resolves the entity identifier for path and inserts (or, for an
// already known eid, refreshes) its record. It returns the eid.
func (s *Store) Add(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	eid, err := s.resolver.Resolve(abs)
	if err != nil {
		return "", err
	}
	return eid, s.AddWithEID(abs, eid)
}

// AddWithEID inserts path under a caller-supplied eid, bypassing
// identity resolution. path must be absolute. Symlinks are rejected;
// only regular files and directories get records.
func (s *Store) AddWithEID(path, eid string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("%s: %w", path, ErrUnexpectedSymlink)
	}
	kind := KindFile
	if info.IsDir() {
		kind = KindDir
	}
	var ctime string
	if raw, err := s.resolver.Attrs.Get(path, attr.KeyCTime); err == nil {
		ctime = string(raw)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	node, known := s.nodes[eid]
	if !known {
		node = &Node{EID: eid, Path: path, Kind: kind}
		s.nodes[eid] = node
		s.order = append(s.order, eid)
	} else if node.Path != path {
		// Same entity observed at a new location: drop the stale
		// path mappings before reindexing.
		delete(s.byPath, node.Path)
		s.dropChild(filepath.Dir(node.Path), eid)
		node.Path = path
	}
	node.Kind = kind
	if ctime != "" {
		node.CTime = ctime
	}

	s.byPath[path] = eid
	parent := filepath.Dir(path)
	if parent != path { // filesystem root is its own parent
		if s.byDir[parent] == nil {
			s.byDir[parent] = make(map[string]bool)
		}
		s.byDir[parent][eid] = true
	}
	return nil
}

// dropChild removes eid from the parent-path bucket, pruning the
// bucket once empty.
func (s *Store) dropChild(parent, eid string) {
	if kids := s.byDir[parent]; kids != nil {
		delete(kids, eid)
		if len(kids) == 0 {
			delete(s.byDir, parent)
		}
	}
}

// Get returns the record for eid.
func (s *Store) Get(eid string) (*Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	node, ok := s.nodes[eid]
	if !ok {
		return nil, fmt.Errorf("eid %s: %w", eid, ErrNotFound)
	}
	return node, nil
}

// GetByPath returns the record whose path is path, O(1) via the path
// index.
func (s *Store) GetByPath(path string) (*Node, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	eid, ok := s.byPath[abs]
	if !ok {
		return nil, fmt.Errorf("path %s: %w", abs, ErrNotFound)
	}
	return s.nodes[eid], nil
}

// Filter returns every record matching pred, in insertion order.
func (s *Store) Filter(pred func(*Node) bool) []*Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*Node
	for _, eid := range s.order {
		if node := s.nodes[eid]; pred(node) {
			out = append(out, node)
		}
	}
	return out
}

// Find returns every record whose name (final path segment) matches
// the shell glob pattern, in insertion order.
func (s *Store) Find(pattern string) ([]*Node, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	return s.Filter(func(n *Node) bool {
		matched, _ := doublestar.Match(pattern, n.Name())
		return matched
	}), nil
}

// Children returns the eids of the records whose parent path is the
// path of eid, sorted lexically by child path. An unknown or childless
// eid yields nil.
func (s *Store) Children(eid string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.childrenLocked(eid)
}

func (s *Store) childrenLocked(eid string) []string {
	node, ok := s.nodes[eid]
	if !ok {
		return nil
	}
	kids := s.byDir[node.Path]
	if len(kids) == 0 {
		return nil
	}
	out := make([]string, 0, len(kids))
	for child := range kids {
		out = append(out, child)
	}
	sort.Slice(out, func(i, j int) bool {
		return s.nodes[out[i]].Path < s.nodes[out[j]].Path
	})
	return out
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}
