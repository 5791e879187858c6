package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the durable slot holding the bearer token between
// runs. An absent token reads as an empty string, not an error.
type TokenStore interface {
	Get() (string, error)
	Set(token string) error
	Clear() error
}

// FileStore persists the token in a single file on disk
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store at path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get reads the stored token. A missing file means no token.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Set writes the token, creating parent directories as needed.
// The file is private to the current user.
func (s *FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear removes the stored token. Clearing an empty slot is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory token store used in tests
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore creates an empty in-memory token store
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get returns the stored token
func (s *MemStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Set stores the token
func (s *MemStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear removes the stored token
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
