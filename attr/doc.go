// Package attr provides uniform read/write/remove access to per-path
// extended metadata under the fixed user.hyfs namespace.
//
// It isolates every fallible OS-level attribute call behind the Store
// interface and classifies POSIX xattr errors into exactly three
// recoverable outcomes: not present, unsupported, and permission
// denied. Any other error propagates to the caller untouched so that
// identity resolution never silently degrades on real I/O failures.
//
// Two implementations are provided: Xattr, backed by the kernel's
// extended attribute syscalls, and Mem, an in-memory store used in
// tests and on filesystems without xattr support.
package attr
