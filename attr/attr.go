package attr

import "errors"

// Extended attribute keys used by hyfs. The user.hyfs namespace prefix
// is fixed; every adapter implementation must store keys verbatim.
const (
	// KeyUUID holds the stable 36-character entity identifier.
	KeyUUID = "user.hyfs.uuid"
	// KeyCTime holds the creation timestamp seeded from the file's
	// modification time on first identity resolution.
	KeyCTime = "user.hyfs.ctime"
	// KeyCID holds the cached 64-hex-digit SHA-256 content digest.
	KeyCID = "user.hyfs.cid"
)

// Sentinel errors for package attr.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// ErrNotPresent means the key has no value on the given path.
	ErrNotPresent = errors.New("attribute not present")

	// ErrUnsupported means the underlying filesystem does not support
	// extended attributes. Callers fall back to derived identity.
	ErrUnsupported = errors.New("extended attributes unsupported")

	// ErrPermission means the caller lacks rights to modify attributes
	// on the path. Treated the same as ErrUnsupported by callers.
	ErrPermission = errors.New("permission denied for attribute")
)

// Store provides uniform access to per-path extended metadata.
//
// Implementations classify OS-level failures into exactly three
// recoverable outcomes (ErrNotPresent, ErrUnsupported, ErrPermission);
// any other failure is fatal and must propagate to the caller wrapped,
// never swallowed. Swallowing unrelated I/O errors here would corrupt
// identity guarantees upstream.
type Store interface {
	// Get returns the value stored under key on path, or ErrNotPresent.
	Get(path, key string) ([]byte, error)

	// Set stores value under key on path.
	Set(path, key string, value []byte) error

	// Remove deletes key from path. Removing an absent key returns
	// ErrNotPresent.
	Remove(path, key string) error
}

// Recoverable reports whether err is one of the two non-fatal write
// outcomes that trigger fallback identity derivation.
func Recoverable(err error) bool {
	return errors.Is(err, ErrUnsupported) || errors.Is(err, ErrPermission)
}
