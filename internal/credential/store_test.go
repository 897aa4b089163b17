package credential

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/farewatch/internal/models"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	cred := models.Credential{
		Token:     "abc",
		ExpiresAt: time.Now().Add(30 * time.Minute).Truncate(time.Second),
	}
	require.NoError(t, s.Save(ctx, cred))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, cred.Token, got.Token)
	assert.True(t, cred.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, s.Evict(ctx))
	_, err = s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	// evicting twice is harmless
	require.NoError(t, s.Evict(ctx))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credential.json")
	exerciseStore(t, NewFileStore(path))
}

func TestFileStore_Layout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	s := NewFileStore(path)

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.Save(context.Background(), models.Credential{Token: "tok", ExpiresAt: exp}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"tok","token_expiry":"2030-01-02T03:04:05Z"}`, string(b))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credential.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "farewatch", "credential.json"), DefaultPath())
}
