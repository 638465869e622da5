package hyfs

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeOp is the kind of filesystem change observed by a Watcher.
type ChangeOp int

const (
	OpCreate ChangeOp = iota
	OpWrite
	OpRemove
	OpRename
)

// Change is one coalesced filesystem event.
type Change struct {
	Path string
	Op   ChangeOp
}

// coalescer batches raw events and emits them after a quiet interval.
// Multiple events for the same path within the window collapse into
// one carrying the latest op.
type coalescer struct {
	interval time.Duration
	mu       sync.Mutex
	pending  map[string]Change
	timer    *time.Timer
	out      chan []Change
}

func newCoalescer(interval time.Duration) *coalescer {
	return &coalescer{
		interval: interval,
		pending:  make(map[string]Change),
		out:      make(chan []Change, 16),
	}
}

func (c *coalescer) add(path string, op ChangeOp) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[path] = Change{Path: path, Op: op}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.interval, c.flush)
}

func (c *coalescer) flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return
	}
	batch := make([]Change, 0, len(c.pending))
	for _, change := range c.pending {
		batch = append(batch, change)
	}
	c.pending = make(map[string]Change)
	c.out <- batch
}

// Watcher keeps a store current while a scanned subtree keeps changing.
// Created and written paths are re-ingested (the persisted uuid
// attribute keeps their identity stable across the session); writes
// additionally invalidate the content cache. Removed or renamed-away
// paths are only logged: the store never deletes records, and their
// tags stay valid.
type Watcher struct {
	store     *Store
	fsWatcher *fsnotify.Watcher
	coalescer *coalescer
	applied   chan []Change
}

// NewWatcher creates a recursive watcher over root feeding the store.
func NewWatcher(store *Store, root string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:     store,
		fsWatcher: fsWatcher,
		coalescer: newCoalescer(100 * time.Millisecond),
		applied:   make(chan []Change, 16),
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip entries that can't be read
		}
		if !d.IsDir() {
			return nil
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			log.Printf("failed to watch directory %s: %v", path, watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// Applied returns the channel of change batches already ingested into
// the store.
func (w *Watcher) Applied() <-chan []Change {
	return w.applied
}

// Start processes events until the watcher is closed. Call it in a
// goroutine.
func (w *Watcher) Start() {
	go w.applyLoop()
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	// A freshly created directory needs its own watch before its
	// contents start generating events.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.fsWatcher.Add(path); err != nil {
				log.Printf("failed to watch new directory %s: %v", path, err)
			}
		}
	}

	var op ChangeOp
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}
	w.coalescer.add(path, op)
}

func (w *Watcher) applyLoop() {
	for batch := range w.coalescer.out {
		w.store.ApplyChanges(batch)
		w.applied <- batch
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}

// ApplyChanges ingests a batch of coalesced changes. Exported for the
// watch loop and direct use by callers that source changes elsewhere.
func (s *Store) ApplyChanges(batch []Change) {
	prints := Fingerprinter{Attrs: s.Attrs()}
	for _, change := range batch {
		switch change.Op {
		case OpCreate, OpWrite:
			if change.Op == OpWrite {
				if node, err := s.GetByPath(change.Path); err == nil {
					if err := prints.Invalidate(node); err != nil {
						log.Printf("invalidate %s: %v", change.Path, err)
					}
				}
			}
			if _, err := s.Add(change.Path); err != nil {
				log.Printf("re-ingest %s: %v", change.Path, err)
			}
		case OpRemove, OpRename:
			// Records are never deleted; the entity may resurface
			// elsewhere with the same uuid attribute.
			log.Printf("path left the tree: %s", change.Path)
		}
	}
}
