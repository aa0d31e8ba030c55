package project

import (
	"errors"
	"fmt"

	"github.com/lexandro/codestudio-mcp/kv"
)

var (
	// ErrProjectNotFound is returned when no snapshot exists for an id.
	ErrProjectNotFound = errors.New("project not found")
	// ErrPersistenceFailure wraps failures of the underlying key-value store.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Key returns the storage key of a project id.
func Key(id string) string {
	return "project:" + id
}

// Store saves and loads project snapshots in a key-value store.
type Store struct {
	kv kv.Store
}

// NewStore wraps a key-value store.
func NewStore(store kv.Store) *Store {
	return &Store{kv: store}
}

// Save writes the full snapshot of p under Key(p.ID).
func (s *Store) Save(p *Project) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := s.kv.Set(Key(p.ID), data); err != nil {
		return fmt.Errorf("%w: saving project %s: %v", ErrPersistenceFailure, p.ID, err)
	}
	return nil
}

// Load reads and decodes the snapshot stored for id.
func (s *Store) Load(id string) (*Project, error) {
	data, ok, err := s.kv.Get(Key(id))
	if err != nil {
		return nil, fmt.Errorf("%w: loading project %s: %v", ErrPersistenceFailure, id, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	p, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("loading project %s: %w", id, err)
	}
	if p.ID != id {
		return nil, fmt.Errorf("loading project %s: %w: snapshot id %q does not match", id, ErrCorruptProjectData, p.ID)
	}
	return p, nil
}
