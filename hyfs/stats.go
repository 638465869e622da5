package hyfs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/kitled/hyfs/version"
)

// Stats summarizes a store's contents.
type Stats struct {
	Files       int       `json:"files"`
	Dirs        int       `json:"dirs"`
	Tags        int       `json:"tags"`
	HyFSVersion string    `json:"hyfs_version"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateStats counts the store's files, directories, and labels.
func (s *Store) GenerateStats() Stats {
	var st Stats
	for _, node := range s.Filter(func(*Node) bool { return true }) {
		if node.IsDir() {
			st.Dirs++
		} else {
			st.Files++
		}
	}
	st.Tags = s.TagCount()
	st.HyFSVersion = version.GetVersion()
	st.GeneratedAt = time.Now().UTC()
	return st
}

// String renders a one-line summary.
func (st Stats) String() string {
	return fmt.Sprintf("hyfs: %d files, %d dirs, %d tags", st.Files, st.Dirs, st.Tags)
}

// Save writes the stats as JSON to the specified file path.
func (st Stats) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(st)
}
