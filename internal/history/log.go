// Package history keeps a bounded, file-backed log of applied replace
// operations for display and reuse.
package history

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"blockpad/internal/errdef"
	"blockpad/internal/search"
)

// DefaultCapacity is the number of operations retained when no override is
// configured.
const DefaultCapacity = 20

// Operation is one applied replace. Immutable once appended.
type Operation struct {
	ID         string         `json:"id"`
	ExecutedAt time.Time      `json:"executedAt"`
	Find       string         `json:"find"`
	Replace    string         `json:"replace"`
	Options    search.Options `json:"options"`
	Matches    int            `json:"matches"`
}

type Log struct {
	path     string
	capacity int
	entries  []Operation
	mu       sync.RWMutex
	loaded   bool
}

// NewLog creates a file-backed operation log holding at most capacity
// entries, oldest evicted first.
func NewLog(path string, capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{path: path, capacity: capacity}
}

// Load reads the persisted log, tolerating a missing or empty file and
// ensuring entries are sorted newest first.
func (l *Log) Load() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked()
}

func (l *Log) loadLocked() error {
	if l.loaded {
		return nil
	}

	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.entries = []Operation{}
			l.loaded = true
			return nil
		}
		return errdef.Wrap(errdef.CodeHistory, err, "read operation log")
	}

	if len(data) == 0 {
		l.entries = []Operation{}
		l.loaded = true
		return nil
	}

	if err := json.Unmarshal(data, &l.entries); err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "parse operation log")
	}

	l.sortLocked()
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}
	l.loaded = true

	return nil
}

// Append records an operation, filling its id and timestamp when unset,
// enforcing the capacity and persisting to disk.
func (l *Log) Append(op Operation) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.loadLocked(); err != nil {
		return err
	}

	if op.ID == "" {
		op.ID = uuid.NewString()
	}
	if op.ExecutedAt.IsZero() {
		op.ExecutedAt = time.Now()
	}

	l.entries = append([]Operation{op}, l.entries...)
	l.sortLocked()
	if len(l.entries) > l.capacity {
		l.entries = l.entries[:l.capacity]
	}

	return l.persist()
}

// Entries returns a copy of all operations, newest first.
func (l *Log) Entries() []Operation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	copies := make([]Operation, len(l.entries))
	copy(copies, l.entries)
	return copies
}

// Reset clears the log. Only an explicit session reset calls this.
func (l *Log) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = []Operation{}
	l.loaded = true
	return l.persist()
}

// persist atomically writes the log file by writing a temp file and renaming
// it into place.
func (l *Log) persist() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create log dir")
	}

	data, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodeHistory, err, "encode operation log")
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write log tmp")
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace log file")
	}

	return nil
}

// sortLocked orders entries newest first. Caller must hold the lock.
func (l *Log) sortLocked() {
	if len(l.entries) < 2 {
		return
	}

	sort.SliceStable(l.entries, func(i, j int) bool {
		return newerFirst(l.entries[i], l.entries[j])
	})
}

// newerFirst compares operations by timestamp, falling back to ids for a
// deterministic order.
func newerFirst(a, b Operation) bool {
	ai := a.ExecutedAt
	bi := b.ExecutedAt
	switch {
	case ai.IsZero() && bi.IsZero():
		return a.ID > b.ID
	case ai.IsZero():
		return false
	case bi.IsZero():
		return true
	case ai.Equal(bi):
		return a.ID > b.ID
	default:
		return ai.After(bi)
	}
}
