package session

import (
	"os"
	"path/filepath"
	"strings"
)

// TokenStore persists the session token between runs. Implementations must
// return an empty token, not an error, when nothing is stored.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a 0600 file under the user config
// directory. It is read once at startup; afterwards the token lives in
// memory.
type FileTokenStore struct {
	Path string
}

// DefaultTokenPath returns the per-user token location.
func DefaultTokenPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ace", "session_token"), nil
}

func (s *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.Path, []byte(token), 0600)
}

func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.Path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryTokenStore is a TokenStore for tests.
type MemoryTokenStore struct {
	token string
}

func (s *MemoryTokenStore) Load() (string, error)      { return s.token, nil }
func (s *MemoryTokenStore) Save(token string) error    { s.token = token; return nil }
func (s *MemoryTokenStore) Clear() error               { s.token = ""; return nil }
