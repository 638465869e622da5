package hyfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kitled/hyfs/attr"
)

func TestHashFile(t *testing.T) {
	tmpDir := t.TempDir()

	emptyFile := filepath.Join(tmpDir, "empty.txt")
	os.WriteFile(emptyFile, []byte{}, 0644)

	helloFile := filepath.Join(tmpDir, "hello.txt")
	os.WriteFile(helloFile, []byte("hello world"), 0644)

	tests := []struct {
		name     string
		path     string
		wantHash string
		wantErr  error
	}{
		{
			name:     "empty file",
			path:     emptyFile,
			wantHash: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		},
		{
			name:     "hello world file",
			path:     helloFile,
			wantHash: "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		},
		{
			name:    "directory returns error",
			path:    tmpDir,
			wantErr: ErrExpectedFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HashFile(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("HashFile() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("HashFile() unexpected error = %v", err)
			}
			if got != tt.wantHash {
				t.Errorf("HashFile() = %v, want %v", got, tt.wantHash)
			}
		})
	}
}

func TestHashFile_LargerThanChunk(t *testing.T) {
	// Content spanning multiple 64 KiB chunks still hashes correctly.
	tmpDir := t.TempDir()
	largeFile := filepath.Join(tmpDir, "large.bin")
	data := make([]byte, 3*hashChunkSize+17)
	for i := range data {
		data[i] = byte(i % 256)
	}
	os.WriteFile(largeFile, data, 0644)

	hash, err := HashFile(largeFile)
	if err != nil {
		t.Fatalf("HashFile() error = %v", err)
	}
	if len(hash) != 64 {
		t.Errorf("HashFile() hash length = %d, want 64", len(hash))
	}
}

func contentFixture(t *testing.T) (*Store, *Node, *attr.Mem) {
	t.Helper()
	root := t.TempDir()
	path := filepath.Join(root, "hello.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	mem := attr.NewMem()
	s := NewStore(mem)
	eid, err := s.Add(path)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	node, err := s.Get(eid)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	return s, node, mem
}

const helloDigest = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

func TestContentID_ComputesAndCaches(t *testing.T) {
	_, node, mem := contentFixture(t)
	f := Fingerprinter{Attrs: mem}

	cid, err := f.ContentID(node)
	if err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}
	if cid != helloDigest {
		t.Errorf("ContentID = %q, want %q", cid, helloDigest)
	}

	// The digest lands in both cache tiers.
	if node.CID != helloDigest {
		t.Errorf("session cache = %q, want %q", node.CID, helloDigest)
	}
	stored, err := mem.Get(node.Path, attr.KeyCID)
	if err != nil {
		t.Fatalf("attribute cache not written: %v", err)
	}
	if string(stored) != helloDigest {
		t.Errorf("attribute cache = %q, want %q", stored, helloDigest)
	}

	// A second call is served from the session cache: no adapter reads.
	gets := mem.Gets
	if _, err := f.ContentID(node); err != nil {
		t.Fatalf("second ContentID failed: %v", err)
	}
	if mem.Gets != gets {
		t.Errorf("session-cached call hit the adapter: %d extra gets", mem.Gets-gets)
	}
}

func TestContentID_ReadsAttributeCache(t *testing.T) {
	_, node, mem := contentFixture(t)
	f := Fingerprinter{Attrs: mem}

	if _, err := f.ContentID(node); err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}

	// A fresh store (simulated restart) finds the digest in the
	// attribute tier without touching the file bytes.
	s2 := NewStore(mem)
	eid, err := s2.Add(node.Path)
	if err != nil {
		t.Fatalf("re-Add failed: %v", err)
	}
	fresh, err := s2.Get(eid)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if fresh.CID != "" {
		t.Fatal("fresh record should start with an empty session cache")
	}

	sets := mem.Sets
	cid, err := f.ContentID(fresh)
	if err != nil {
		t.Fatalf("ContentID on fresh record failed: %v", err)
	}
	if cid != helloDigest {
		t.Errorf("ContentID = %q, want %q", cid, helloDigest)
	}
	if mem.Sets != sets {
		t.Error("attribute-cached digest was rewritten")
	}
}

func TestContentID_Directory(t *testing.T) {
	root := t.TempDir()
	mem := attr.NewMem()
	s := NewStore(mem)
	eid, err := s.Add(root)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	node, _ := s.Get(eid)

	cid, err := (Fingerprinter{Attrs: mem}).ContentID(node)
	if err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}
	if cid != "" {
		t.Errorf("directory ContentID = %q, want empty", cid)
	}
}

func TestInvalidate_ForcesRecompute(t *testing.T) {
	_, node, mem := contentFixture(t)
	f := Fingerprinter{Attrs: mem}

	if _, err := f.ContentID(node); err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}
	setsAfterFirst := mem.Sets

	if err := f.Invalidate(node); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if node.CID != "" {
		t.Error("Invalidate left the session cache populated")
	}
	if _, err := mem.Get(node.Path, attr.KeyCID); !errors.Is(err, attr.ErrNotPresent) {
		t.Errorf("Invalidate left the attribute cache populated: %v", err)
	}

	// Recompute hits the disk and repopulates both tiers; unchanged
	// content yields the same digest.
	cid, err := f.ContentID(node)
	if err != nil {
		t.Fatalf("ContentID after Invalidate failed: %v", err)
	}
	if cid != helloDigest {
		t.Errorf("recomputed ContentID = %q, want %q", cid, helloDigest)
	}
	if mem.Sets <= setsAfterFirst {
		t.Error("recompute did not rewrite the attribute cache")
	}
}

func TestInvalidate_WithoutAttributeSupport(t *testing.T) {
	_, node, mem := contentFixture(t)
	f := Fingerprinter{Attrs: mem}

	if _, err := f.ContentID(node); err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}

	mem.Unsupported = true
	if err := f.Invalidate(node); err != nil {
		t.Errorf("Invalidate on unsupported adapter should degrade, got %v", err)
	}

	// Digest still comes out correct from disk.
	cid, err := f.ContentID(node)
	if err != nil {
		t.Fatalf("ContentID failed: %v", err)
	}
	if cid != helloDigest {
		t.Errorf("ContentID = %q, want %q", cid, helloDigest)
	}
}

func TestInvalidateAll(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte(name), 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
	}
	mem := attr.NewMem()
	s, err := Scan(root, mem)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	f := Fingerprinter{Attrs: mem}

	nodes := s.Filter(func(*Node) bool { return true }) // dirs included on purpose
	for _, node := range nodes {
		if _, err := f.ContentID(node); err != nil {
			t.Fatalf("ContentID failed: %v", err)
		}
	}

	if err := f.InvalidateAll(nodes); err != nil {
		t.Fatalf("InvalidateAll failed: %v", err)
	}
	for _, node := range nodes {
		if node.CID != "" {
			t.Errorf("node %s still has a session-cached digest", node.Path)
		}
	}
}
