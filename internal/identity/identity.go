// Package identity hands out the anonymous client id that correlates every
// remote call from one installation.
package identity

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store persists the client id. Load returns "" with a nil error when no id
// has been saved yet.
type Store interface {
	Load() (string, error)
	Save(id string) error
}

// FileStore keeps the id as a single file, one line, in the config dir.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(id string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(id+"\n"), 0600)
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	id string
}

func (s *MemStore) Load() (string, error) { return s.id, nil }

func (s *MemStore) Save(id string) error {
	s.id = id
	return nil
}

// Provider returns a stable anonymous identifier, generating one on first
// use. When the store cannot load or persist, the generated id still serves
// for the rest of the process so uploads and workflow runs stay correlated.
type Provider struct {
	store  Store
	cached string
}

func NewProvider(store Store) *Provider {
	return &Provider{store: store}
}

// GetOrCreate never fails: a persisted id is reused, otherwise a fresh one is
// generated, saved best-effort, and cached for the session.
func (p *Provider) GetOrCreate() string {
	if p.cached != "" {
		return p.cached
	}

	if id, err := p.store.Load(); err == nil && id != "" {
		p.cached = id
		return id
	}

	id := "user_" + uuid.NewString()
	_ = p.store.Save(id)
	p.cached = id
	return id
}
