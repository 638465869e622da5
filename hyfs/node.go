package hyfs

import "path/filepath"

// Kind distinguishes file entities from directory entities.
type Kind string

const (
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// Node is the canonical record for a filesystem entity. The EID is
// immutable once assigned; every other field tracks the entity's last
// observed filesystem state. Records live inside a Store and are never
// deleted by this core.
type Node struct {
	EID   string `json:"eid"`             // stable entity identifier
	Path  string `json:"path"`            // absolute path at last observation
	Kind  Kind   `json:"kind"`            // file or dir
	CID   string `json:"cid,omitempty"`   // session-cached content digest, files only
	CTime string `json:"ctime,omitempty"` // creation timestamp attribute value
}

// Name returns the final path segment.
func (n *Node) Name() string {
	return filepath.Base(n.Path)
}

// IsDir reports whether the entity is a directory.
func (n *Node) IsDir() bool {
	return n.Kind == KindDir
}
