package hyfs

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/kitled/hyfs/attr"
)

// Scan walks the subtree rooted at root and returns a store populated
// with an entity record for every file and directory found.
func Scan(root string, attrs attr.Store) (*Store, error) {
	s := NewStore(attrs)
	if err := s.ScanTree(root); err != nil {
		return nil, err
	}
	return s, nil
}

// ScanTree walks the subtree rooted at root and ingests every file and
// directory into the store. Parents are visited before children, so
// the parent/child index is complete after a single pass. Symlinks are
// skipped; entries deleted mid-walk are tolerated.
func (s *Store) ScanTree(root string) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	return filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.Type()&fs.ModeSymlink != 0 {
			log.Printf("skipping unsupported symlink %s", path)
			return nil
		}
		if _, err := s.Add(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		return nil
	})
}
