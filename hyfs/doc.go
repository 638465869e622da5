// Package hyfs maintains a flat canonical store of filesystem entities
// with stable identities and consistent derived indexes.
//
// Every file and directory gets an entity identifier (eid) that
// survives renames and moves. Identity persists through extended
// attributes where the filesystem allows it and degrades to a
// deterministic stat-derived fallback where it does not.
//
// Key Components:
//
// Identity:
//   - Resolver assigns eids: persisted uuid attribute, freshly
//     generated UUID, or SHA-256 fallback over (device, inode, ctime)
//   - Identifiers share one 8-4-4-4-12 string layout in every tier
//
// Canonical Store:
//   - Store owns all entity records, keyed by eid
//   - Path, parent/child, and tag indexes updated atomically with
//     every insertion under a single coarse lock
//   - Filter and glob Find over records in insertion order
//   - Bidirectional tag index with empty-bucket pruning
//
// Derived Views:
//   - Tree builds an ephemeral hierarchical view in one linear pass
//     over the parent/child index, with root auto-detection
//   - TreeNode supports recursive Show, Filter, and Find
//
// Content:
//   - Fingerprinter hashes file content in 64 KiB chunks with a
//     session cache and an attribute-store cache, both invalidatable
//
// Population:
//   - Scan walks a subtree and ingests every entity, parents first
//   - Watcher keeps a store current via coalesced fsnotify events
//
// The store never deletes records and assumes a single logical writer;
// concurrent readers are safe under the internal reader/writer lock.
package hyfs
