package store

import (
	"os"
	"strings"
)

// FileTokenStore keeps the bearer token in a local file so a session survives
// client restarts.
type FileTokenStore struct {
	// Path is the token file location.
	Path string
}

// Load returns the stored token. A missing file yields an empty token and no
// error.
func (f *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Save persists the token, readable only by the owner.
func (f *FileTokenStore) Save(token string) error {
	return os.WriteFile(f.Path, []byte(token), 0o600)
}

// Clear removes the token file. Clearing an absent file is not an error.
func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.Path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
