package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"accessToken": "tok-abc", "user": {"id": 7}}`), 0o600))

	store := NewStore(path, nil)
	assert.Equal(t, "tok-abc", store.AccessToken())
}

func TestAccessTokenMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"), nil)
	assert.Empty(t, store.AccessToken())
}

func TestAccessTokenMalformedBlob(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	store := NewStore(path, nil)
	assert.Empty(t, store.AccessToken())
}

func TestAccessTokenMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"refreshToken": "r"}`), 0o600))

	store := NewStore(path, nil)
	assert.Empty(t, store.AccessToken())
}

func TestAccessTokenRereadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path, nil)
	assert.Empty(t, store.AccessToken())

	require.NoError(t, os.WriteFile(path, []byte(`{"accessToken": "fresh"}`), 0o600))
	assert.Equal(t, "fresh", store.AccessToken())
}
