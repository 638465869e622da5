package hyfs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"

	"github.com/kitled/hyfs/attr"
)

// hashChunkSize is the read granularity for content hashing.
const hashChunkSize = 64 * 1024

// Fingerprinter computes content identifiers for file entities with a
// two-tier cache: the record's session field first, the attribute
// store second, the file bytes last. Assumes the single-writer
// discipline of the owning Store.
type Fingerprinter struct {
	Attrs attr.Store
}

// ContentID returns the SHA-256 content digest for node, computing and
// caching it on first access. Directories always yield "".
func (f Fingerprinter) ContentID(node *Node) (string, error) {
	if node.IsDir() {
		return "", nil
	}
	if node.CID != "" {
		return node.CID, nil
	}

	cached, err := f.Attrs.Get(node.Path, attr.KeyCID)
	if err == nil {
		node.CID = string(cached)
		return node.CID, nil
	}
	if !errors.Is(err, attr.ErrNotPresent) && !attr.Recoverable(err) {
		return "", err
	}

	cid, err := HashFile(node.Path)
	if err != nil {
		return "", err
	}

	// Write-back is best-effort: a filesystem that cannot hold the
	// attribute still gets a correct digest every call.
	if werr := f.Attrs.Set(node.Path, attr.KeyCID, []byte(cid)); werr != nil && !attr.Recoverable(werr) {
		return "", werr
	}
	node.CID = cid
	return cid, nil
}

// Invalidate clears both cache tiers for node so the next ContentID
// call recomputes the digest from disk.
func (f Fingerprinter) Invalidate(node *Node) error {
	node.CID = ""
	err := f.Attrs.Remove(node.Path, attr.KeyCID)
	if err == nil || errors.Is(err, attr.ErrNotPresent) || attr.Recoverable(err) {
		return nil
	}
	return err
}

// InvalidateAll clears the caches for every file node in nodes,
// typically the result of a Find or Filter call.
func (f Fingerprinter) InvalidateAll(nodes []*Node) error {
	for _, node := range nodes {
		if node.IsDir() {
			continue
		}
		if err := f.Invalidate(node); err != nil {
			return err
		}
	}
	return nil
}

// HashFile streams the file at path through SHA-256 in fixed 64 KiB
// chunks and returns the digest as a hexadecimal string.
func HashFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.CopyBuffer(h, file, make([]byte, hashChunkSize)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
