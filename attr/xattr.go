package attr

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Xattr is the production Store backed by POSIX extended attributes.
// The zero value is ready to use.
type Xattr struct{}

var _ Store = Xattr{}

// Get reads the attribute value for key on path.
func (Xattr) Get(path, key string) ([]byte, error) {
	// First call sizes the buffer, second fetches. A concurrent writer
	// can grow the value between the two calls, so retry on ERANGE.
	for {
		size, err := unix.Getxattr(path, key, nil)
		if err != nil {
			return nil, classify("getxattr", path, key, err)
		}
		if size == 0 {
			return []byte{}, nil
		}
		buf := make([]byte, size)
		n, err := unix.Getxattr(path, key, buf)
		if errors.Is(err, unix.ERANGE) {
			continue
		}
		if err != nil {
			return nil, classify("getxattr", path, key, err)
		}
		return buf[:n], nil
	}
}

// Set writes the attribute value for key on path.
func (Xattr) Set(path, key string, value []byte) error {
	if err := unix.Setxattr(path, key, value, 0); err != nil {
		return classify("setxattr", path, key, err)
	}
	return nil
}

// Remove deletes the attribute key from path.
func (Xattr) Remove(path, key string) error {
	if err := unix.Removexattr(path, key); err != nil {
		return classify("removexattr", path, key, err)
	}
	return nil
}

// classify maps raw xattr errnos onto the package sentinels. Anything
// not recognized is fatal and propagates wrapped with call context.
func classify(op, path, key string, err error) error {
	switch {
	case errors.Is(err, unix.ENODATA):
		return fmt.Errorf("%s %s on %s: %w", op, key, path, ErrNotPresent)
	case errors.Is(err, unix.ENOTSUP):
		return fmt.Errorf("%s %s on %s: %w", op, key, path, ErrUnsupported)
	case errors.Is(err, unix.EACCES), errors.Is(err, unix.EPERM):
		return fmt.Errorf("%s %s on %s: %w", op, key, path, ErrPermission)
	default:
		return fmt.Errorf("%s %s on %s: %w", op, key, path, err)
	}
}
