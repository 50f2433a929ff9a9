package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	tokenFile = "token"
	userFile  = "user.json"
)

// UserSnapshot is the denormalized projection of the session persisted
// alongside the token. Permissions are deliberately not part of it; they
// live in memory only until the next identity fetch.
type UserSnapshot struct {
	Username string   `json:"username"`
	Avatar   string   `json:"avatar"`
	Roles    []string `json:"roles"`
}

// FileStore persists the session under fixed keys in a directory in the
// user's home. It is the durable storage the session is rehydrated from
// at startup.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. An empty dir selects
// the default location, ~/.pmpctl.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		dir = filepath.Join(home, ".pmpctl")
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// SaveToken writes the raw bearer token.
func (s *FileStore) SaveToken(token string) error {
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600)
}

// LoadToken reads the persisted token. A missing token is not an error;
// it reads as empty.
func (s *FileStore) LoadToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// DeleteToken removes the persisted token. Deleting a missing token is a no-op.
func (s *FileStore) DeleteToken() error {
	path := filepath.Join(s.dir, tokenFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// SaveUser writes the denormalized user snapshot.
func (s *FileStore) SaveUser(u *UserSnapshot) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user snapshot: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
}

// LoadUser reads the persisted user snapshot. Returns (nil, nil) when no
// snapshot exists yet.
func (s *FileStore) LoadUser() (*UserSnapshot, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user snapshot: %w", err)
	}
	var snap UserSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user snapshot: %w", err)
	}
	return &snap, nil
}
