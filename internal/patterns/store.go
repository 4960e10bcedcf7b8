// Package patterns persists named find/replace patterns so a search setup
// can be saved and recalled by name.
package patterns

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"blockpad/internal/errdef"
	"blockpad/internal/search"
)

// Pattern is a saved find/replace setup. Load returns it exactly as saved.
type Pattern struct {
	Name    string         `json:"name"`
	Find    string         `json:"find"`
	Replace string         `json:"replace"`
	Options search.Options `json:"options"`
}

type Store struct {
	path    string
	entries []Pattern
	mu      sync.RWMutex
	loaded  bool
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted patterns, tolerating a missing or empty file.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked()
}

func (s *Store) loadLocked() error {
	if s.loaded {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.entries = []Pattern{}
			s.loaded = true
			return nil
		}
		return errdef.Wrap(errdef.CodePatterns, err, "read patterns")
	}

	if len(data) == 0 {
		s.entries = []Pattern{}
		s.loaded = true
		return nil
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return errdef.Wrap(errdef.CodePatterns, err, "parse patterns")
	}
	s.loaded = true

	return nil
}

// Save upserts a pattern by name and persists the store.
func (s *Store) Save(p Pattern) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errdef.New(errdef.CodePatterns, "pattern name required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return err
	}

	replaced := false
	for i, existing := range s.entries {
		if existing.Name == p.Name {
			s.entries[i] = p
			replaced = true
			break
		}
	}
	if !replaced {
		s.entries = append(s.entries, p)
	}

	return s.persist()
}

// Get returns the pattern saved under name.
func (s *Store) Get(name string) (Pattern, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	for _, p := range s.entries {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

// Delete removes a pattern by name and reports whether one was removed.
func (s *Store) Delete(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadLocked(); err != nil {
		return false, err
	}

	name = strings.TrimSpace(name)
	idx := -1
	for i, p := range s.entries {
		if p.Name == name {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, nil
	}

	copy(s.entries[idx:], s.entries[idx+1:])
	s.entries = s.entries[:len(s.entries)-1]

	if err := s.persist(); err != nil {
		return false, err
	}
	return true, nil
}

// List returns all patterns sorted by name.
func (s *Store) List() []Pattern {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copies := make([]Pattern, len(s.entries))
	copy(copies, s.entries)
	sort.Slice(copies, func(i, j int) bool {
		return copies[i].Name < copies[j].Name
	})
	return copies
}

// persist atomically writes the pattern file.
func (s *Store) persist() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "create patterns dir")
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errdef.Wrap(errdef.CodePatterns, err, "encode patterns")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "write patterns tmp")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "replace patterns file")
	}

	return nil
}
