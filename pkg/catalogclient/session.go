package catalogclient

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SessionStore persists the bearer token between runs. An empty token means
// no session.
type SessionStore interface {
	Token() (string, error)
	SetToken(token string) error
	Clear() error
}

// FileSessionStore keeps the token in a single file, mode 0600.
type FileSessionStore struct {
	Path string
}

func NewFileSessionStore(path string) (*FileSessionStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "wavestone", "session")
	}
	return &FileSessionStore{Path: path}, nil
}

func (s *FileSessionStore) Token() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read session: %w", err)
	}
	return string(data), nil
}

func (s *FileSessionStore) SetToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.Path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *FileSessionStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemorySessionStore is for tests and embedded use.
type MemorySessionStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemorySessionStore) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemorySessionStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySessionStore) Clear() error {
	return s.SetToken("")
}
