package session

import (
	"encoding/json"
	"os"

	"go.uber.org/zap"
)

// Store reads the locally persisted auth session. The session blob is
// written by the external auth provider; this subsystem only reads it.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a session store reading from the given file path
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

type sessionBlob struct {
	AccessToken string `json:"accessToken"`
}

// AccessToken returns the bearer token from the persisted session, or an
// empty string if no session exists or the blob cannot be read. Absence of
// a token is not an error: order submission proceeds unauthenticated.
func (s *Store) AccessToken() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read session file", zap.Error(err), zap.String("path", s.path))
		}
		return ""
	}

	var blob sessionBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		s.logger.Warn("Failed to parse session file", zap.Error(err), zap.String("path", s.path))
		return ""
	}

	return blob.AccessToken
}
