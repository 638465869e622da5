package hyfs

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TreeNode is an ephemeral hierarchical view over store records. It
// holds an independent copy of the entity data, so mutating a view
// never corrupts the store.
type TreeNode struct {
	Node
	Children []*TreeNode `json:"children,omitempty"`
}

// Tree derives the hierarchy rooted at rootPath from the parent/child
// index. With an empty rootPath the root is auto-detected: the single
// record whose path is not a descendant of any other record's path.
// Multiple candidates yield ErrAmbiguousRoot; an absent root yields
// ErrNotFound. Construction is one depth-first pass, linear in the
// number of reachable records, with children in lexical path order.
func (s *Store) Tree(rootPath string) (*TreeNode, error) {
	if rootPath == "" {
		roots := s.rootPaths()
		switch len(roots) {
		case 1:
			rootPath = roots[0]
		case 0:
			return nil, fmt.Errorf("empty store: %w", ErrNotFound)
		default:
			return nil, fmt.Errorf("%w: %d candidates", ErrAmbiguousRoot, len(roots))
		}
	}

	root, err := s.GetByPath(rootPath)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buildTreeLocked(root), nil
}

func (s *Store) buildTreeLocked(node *Node) *TreeNode {
	tn := &TreeNode{Node: *node}
	for _, eid := range s.childrenLocked(node.EID) {
		tn.Children = append(tn.Children, s.buildTreeLocked(s.nodes[eid]))
	}
	return tn
}

// rootPaths returns the paths of records not contained in any other
// record's subtree. Quadratic over the store, acceptable for the rare
// root-detection call.
func (s *Store) rootPaths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roots []string
	for _, eid := range s.order {
		path := s.nodes[eid].Path
		contained := false
		for _, other := range s.order {
			op := s.nodes[other].Path
			if op != path && strings.HasPrefix(path, op+string(filepath.Separator)) {
				contained = true
				break
			}
		}
		if !contained {
			roots = append(roots, path)
		}
	}
	return roots
}

// Show writes an indented listing of the subtree to w, one name per
// line, four spaces per depth level.
func (t *TreeNode) Show(w io.Writer, indent int) {
	fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", indent), t.Name())
	for _, child := range t.Children {
		child.Show(w, indent+1)
	}
}

// Filter returns every node in the subtree matching pred, in
// depth-first order starting with the receiver.
func (t *TreeNode) Filter(pred func(*TreeNode) bool) []*TreeNode {
	var matches []*TreeNode
	if pred(t) {
		matches = append(matches, t)
	}
	for _, child := range t.Children {
		matches = append(matches, child.Filter(pred)...)
	}
	return matches
}

// Find returns every node in the subtree whose name matches the shell
// glob pattern.
func (t *TreeNode) Find(pattern string) ([]*TreeNode, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrBadPattern, pattern)
	}
	return t.Filter(func(n *TreeNode) bool {
		matched, _ := doublestar.Match(pattern, n.Name())
		return matched
	}), nil
}
