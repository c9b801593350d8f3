// Package session keeps the signed-in state between invocations: the bearer
// token under the fixed key "rs_token" and the last known user.
//
// The request layer reads the token through Store.Token; only Provider
// writes or clears it.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/revesshop/revesshop-client/internal/types"
)

// TokenKey is the key the bearer token is stored under.
const TokenKey = "rs_token"

// Storage persists the session.
type Storage interface {
	Token(ctx context.Context) (string, error)
	User() (*types.User, error)
	Save(token string, user *types.User) error
	Clear() error
}

// document is the on-disk layout.
type document struct {
	Token string      `json:"rs_token,omitempty"`
	User  *types.User `json:"user,omitempty"`
}

// FileStore keeps the session in a JSON file readable only by its owner.
// A missing file is an empty session.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the session file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "revesshop", "session.json"), nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Token implements client.CredentialProvider.
func (s *FileStore) Token(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return "", err
	}
	return doc.Token, nil
}

// User returns the cached user, nil when signed out.
func (s *FileStore) User() (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.load()
	if err != nil {
		return nil, err
	}
	return doc.User, nil
}

// Save replaces the stored session.
func (s *FileStore) Save(token string, user *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(document{Token: token, User: user})
}

// Clear removes the session file. Clearing an empty session is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *FileStore) load() (document, error) {
	var doc document
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return doc, fmt.Errorf("read session: %w", err)
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return doc, fmt.Errorf("decode session %s: %w", s.path, err)
	}
	return doc, nil
}

// write stores doc atomically: temp file in the same dir, then rename.
func (s *FileStore) write(doc document) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// MemoryStore keeps the session in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	doc document
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Token implements client.CredentialProvider.
func (m *MemoryStore) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.Token, nil
}

// User returns the cached user.
func (m *MemoryStore) User() (*types.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doc.User, nil
}

// Save replaces the session.
func (m *MemoryStore) Save(token string, user *types.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = document{Token: token, User: user}
	return nil
}

// Clear drops the session.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = document{}
	return nil
}
