// Package main provides the hyfs command-line interface.
//
// hyfs assigns a stable entity identifier to every file and directory,
// persisted through extended attributes so it survives renames and
// moves, and maintains a flat canonical store with path, parent/child,
// content-hash, and tag indexes from which hierarchical and semantic
// views are derived on demand.
//
// The main binary supports multiple subcommands:
//   - scan: Scan a directory tree into the entity store and report stats
//   - tree: Render the derived hierarchical view of a scanned tree
//   - find: Find entities whose name matches a glob pattern
//   - hash: Compute or refresh content identifiers for files
//   - watch: Keep a scanned tree's store current as files change
//   - seed: Generate a fixture tree for trying hyfs out
package main
