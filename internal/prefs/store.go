// Package prefs persists the list of displays the overlay is enabled on.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
)

// document is the on-disk layout: a flat list, most recently enabled first.
type document struct {
	EnabledDisplays []uint32 `yaml:"enabled_displays"`
}

// Store is the preference collaborator the overlay reads its enabled displays from.
type Store interface {
	Enabled() display.Set
	SetEnabled(set display.Set) error
	Toggle(id display.ID) (display.Set, error)
	Watch(ctx context.Context) (*Subscription, error)
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the enabled displays in a YAML file. Writes go through a temporary file and
// a rename so readers never see a partial file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

// List returns the stored IDs in stored order. A missing file is an empty list.
func (s *FileStore) List() ([]display.ID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Enabled returns the stored set. Unreadable or corrupt files count as no displays enabled.
func (s *FileStore) Enabled() display.Set {
	ids, err := s.List()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("ignoring unreadable preferences")
		return display.Set{}
	}
	return display.NewSet(ids...)
}

// SetEnabled replaces the stored list with the members of set in ascending order.
func (s *FileStore) SetEnabled(set display.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(set.IDs())
}

// Toggle removes id when stored and inserts it at the front otherwise, returning the new set.
func (s *FileStore) Toggle(id display.ID) (display.Set, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.read()
	if err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("replacing unreadable preferences")
		ids = nil
	}

	next := make([]display.ID, 0, len(ids)+1)
	found := false
	for _, cur := range ids {
		if cur == id {
			found = true
			continue
		}
		next = append(next, cur)
	}
	if !found {
		next = append([]display.ID{id}, next...)
	}

	if err := s.write(next); err != nil {
		return display.Set{}, err
	}
	return display.NewSet(next...), nil
}

func (s *FileStore) read() ([]display.ID, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	ids := make([]display.ID, 0, len(doc.EnabledDisplays))
	seen := make(map[display.ID]bool, len(doc.EnabledDisplays))
	for _, v := range doc.EnabledDisplays {
		id := display.ID(v)
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *FileStore) write(ids []display.ID) error {
	doc := document{EnabledDisplays: make([]uint32, 0, len(ids))}
	for _, id := range ids {
		doc.EnabledDisplays = append(doc.EnabledDisplays, uint32(id))
	}
	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("create temporary preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
