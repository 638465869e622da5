package hyfs

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/google/uuid"

	"github.com/kitled/hyfs/attr"
)

// Resolver computes the stable entity identifier for a path.
//
// Resolution is tiered: a uuid already persisted in the attribute store
// wins; otherwise a fresh random identifier is generated and persisted;
// if the filesystem refuses the write, a deterministic fallback derived
// from the stat triple (device, inode, ctime) is used instead. Only
// attribute-unsupported and permission-denied failures trigger the
// fallback; any other attribute error propagates.
type Resolver struct {
	Attrs attr.Store
}

// Resolve returns the entity identifier for path.
func (r Resolver) Resolve(path string) (string, error) {
	st, err := statT(path)
	if err != nil {
		return "", err
	}

	// Seed the ctime attribute from the modification time before
	// anything else; it anchors fallback identity across later edits.
	// Failure to persist it is non-fatal.
	ctime, err := r.ensureCTime(path, st)
	if err != nil {
		return "", err
	}

	stored, err := r.Attrs.Get(path, attr.KeyUUID)
	if err == nil {
		return string(stored), nil
	}
	if !errors.Is(err, attr.ErrNotPresent) && !attr.Recoverable(err) {
		return "", err
	}

	id := uuid.New().String()
	werr := r.Attrs.Set(path, attr.KeyUUID, []byte(id))
	if werr == nil {
		return id, nil
	}
	if !attr.Recoverable(werr) {
		return "", werr
	}

	return FallbackEID(uint64(st.Dev), st.Ino, ctime), nil
}

// ensureCTime returns the persisted creation timestamp for path,
// writing one seeded from the modification time if absent. The write
// is best-effort; the returned value is usable either way.
func (r Resolver) ensureCTime(path string, st *syscall.Stat_t) (string, error) {
	stored, err := r.Attrs.Get(path, attr.KeyCTime)
	if err == nil {
		return string(stored), nil
	}
	if !errors.Is(err, attr.ErrNotPresent) && !attr.Recoverable(err) {
		return "", err
	}

	ctime := mtimeString(st)
	if werr := r.Attrs.Set(path, attr.KeyCTime, []byte(ctime)); werr != nil && !attr.Recoverable(werr) {
		return "", werr
	}
	return ctime, nil
}

// mtimeString formats a modification time as decimal seconds with
// nanosecond precision, the on-attribute timestamp format.
func mtimeString(st *syscall.Stat_t) string {
	return fmt.Sprintf("%d.%09d", st.Mtim.Sec, st.Mtim.Nsec)
}

// FallbackEID derives a deterministic identifier from the stat triple.
// The digest is formatted in the same 8-4-4-4-12 layout as generated
// identifiers; this is a formatting convention only, not a real UUID.
// The same (device, inode, ctime) triple always yields the same id.
func FallbackEID(dev, ino uint64, ctime string) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%d:%s", dev, ino, ctime))
	h := hex.EncodeToString(sum[:])
	return h[:8] + "-" + h[8:12] + "-" + h[12:16] + "-" + h[16:20] + "-" + h[20:32]
}

// statT returns the raw stat fields for path.
func statT(path string) (*syscall.Stat_t, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("no raw stat data for %s", path)
	}
	return st, nil
}
