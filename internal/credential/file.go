package credential

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dharmasatrya/farewatch/internal/models"
)

var _ Store = (*FileStore)(nil)

type fileEntry struct {
	Token       string `json:"token"`
	TokenExpiry string `json:"token_expiry"`
}

// FileStore keeps the credential in a JSON file scoped to the current user.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns $XDG_CONFIG_HOME/farewatch/credential.json, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "farewatch", "credential.json")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "farewatch", "credential.json")
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(context.Context) (models.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Credential{}, ErrNotFound
	}
	if err != nil {
		return models.Credential{}, fmt.Errorf("reading credential file '%s': %w", s.path, err)
	}

	var entry fileEntry
	if err := json.Unmarshal(b, &entry); err != nil {
		return models.Credential{}, fmt.Errorf("decoding credential file '%s': %w", s.path, err)
	}
	if entry.Token == "" || entry.TokenExpiry == "" {
		return models.Credential{}, ErrNotFound
	}

	expiry, err := time.Parse(time.RFC3339Nano, entry.TokenExpiry)
	if err != nil {
		return models.Credential{}, fmt.Errorf("parsing token_expiry: %w", err)
	}
	return models.Credential{Token: entry.Token, ExpiresAt: expiry}, nil
}

func (s *FileStore) Save(_ context.Context, cred models.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating credential directory '%s': %w", dir, err)
	}

	data, err := json.MarshalIndent(fileEntry{
		Token:       cred.Token,
		TokenExpiry: cred.ExpiresAt.UTC().Format(time.RFC3339Nano),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding credential: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credential file '%s': %w", s.path, err)
	}
	return nil
}

func (s *FileStore) Evict(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing credential file '%s': %w", s.path, err)
	}
	return nil
}
