package hyfs

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kitled/hyfs/attr"
)

func TestTree_Scenario(t *testing.T) {
	// root/ containing x.txt and B/y.txt must yield exactly 4 records and
	// a two-level tree.
	root := fixtureTree(t)
	s, err := Scan(root, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	if s.Len() != 4 {
		t.Fatalf("store has %d records, want 4", s.Len())
	}

	tree, err := s.Tree(root)
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}

	if tree.Kind != KindDir {
		t.Errorf("root kind = %q, want %q", tree.Kind, KindDir)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(tree.Children))
	}

	// Children come in lexical path order: B before x.txt.
	b, x := tree.Children[0], tree.Children[1]
	if b.Name() != "B" || b.Kind != KindDir {
		t.Errorf("first child = %q (%s), want directory B", b.Name(), b.Kind)
	}
	if x.Name() != "x.txt" || x.Kind != KindFile {
		t.Errorf("second child = %q (%s), want file x.txt", x.Name(), x.Kind)
	}

	if len(b.Children) != 1 {
		t.Fatalf("B has %d children, want 1", len(b.Children))
	}
	y := b.Children[0]
	if y.Name() != "y.txt" || y.Kind != KindFile {
		t.Errorf("B's child = %q (%s), want file y.txt", y.Name(), y.Kind)
	}
	if len(x.Children) != 0 || len(y.Children) != 0 {
		t.Error("file nodes must not have children")
	}
}

func TestTree_AutoDetectsSingleRoot(t *testing.T) {
	root := fixtureTree(t)
	s, err := Scan(root, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	tree, err := s.Tree("")
	if err != nil {
		t.Fatalf("Tree with auto root failed: %v", err)
	}
	if tree.Path != root {
		t.Errorf("auto-detected root = %q, want %q", tree.Path, root)
	}
}

func TestTree_AmbiguousRoot(t *testing.T) {
	rootA := fixtureTree(t)
	rootB := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootB, "other.txt"), []byte("other"), 0644); err != nil {
		t.Fatalf("failed to create file: %v", err)
	}

	s, err := Scan(rootA, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if err := s.ScanTree(rootB); err != nil {
		t.Fatalf("second ScanTree failed: %v", err)
	}

	_, err = s.Tree("")
	if !errors.Is(err, ErrAmbiguousRoot) {
		t.Errorf("Tree with two roots error = %v, want ErrAmbiguousRoot", err)
	}

	// An explicit root disambiguates.
	tree, err := s.Tree(rootB)
	if err != nil {
		t.Fatalf("Tree with explicit root failed: %v", err)
	}
	if len(tree.Children) != 1 || tree.Children[0].Name() != "other.txt" {
		t.Errorf("explicit-root tree children wrong: %+v", tree.Children)
	}
}

func TestTree_EmptyAndMissing(t *testing.T) {
	s := NewStore(attr.NewMem())

	if _, err := s.Tree(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("Tree on empty store error = %v, want ErrNotFound", err)
	}
	if _, err := s.Tree("/no/such/path"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Tree on unknown root error = %v, want ErrNotFound", err)
	}
}

func TestTree_ViewIsACopy(t *testing.T) {
	root := fixtureTree(t)
	s, err := Scan(root, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	tree, err := s.Tree(root)
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}

	tree.Path = "/mutated/by/caller"
	tree.Children[0].EID = "clobbered"

	stored, err := s.GetByPath(root)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if stored.Path != root {
		t.Error("mutating the view corrupted the stored record")
	}
	if _, err := s.Get(tree.Children[1].EID); err != nil {
		t.Errorf("store lookup broken after view mutation: %v", err)
	}
}

func TestTreeNode_Show(t *testing.T) {
	root := fixtureTree(t)
	s, err := Scan(root, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	tree, err := s.Tree(root)
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}

	var buf bytes.Buffer
	tree.Show(&buf, 0)

	want := filepath.Base(root) + "\n" +
		"    B\n" +
		"        y.txt\n" +
		"    x.txt\n"
	if buf.String() != want {
		t.Errorf("Show output = %q, want %q", buf.String(), want)
	}
}

func TestTreeNode_FindAndFilter(t *testing.T) {
	root := fixtureTree(t)
	s, err := Scan(root, attr.NewMem())
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	tree, err := s.Tree(root)
	if err != nil {
		t.Fatalf("Tree failed: %v", err)
	}

	files := tree.Filter(func(n *TreeNode) bool { return n.Kind == KindFile })
	if len(files) != 2 {
		t.Errorf("Filter found %d files, want 2", len(files))
	}

	matches, err := tree.Find("*.txt")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("Find(*.txt) found %d nodes, want 2", len(matches))
	}

	if _, err := tree.Find("[bad"); !errors.Is(err, ErrBadPattern) {
		t.Errorf("Find malformed pattern error = %v, want ErrBadPattern", err)
	}
}
