package store

import (
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// DefaultDir is the default per-device config store location.
const DefaultDir = "/var/lib/nutsmith/devices"

// Store is the per-device config file store: one file per device name
// under a fixed directory, holding the last rendered config written for
// that device.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir. An empty dir selects DefaultDir.
// A nil logger is replaced with a nop logger.
func New(dir string, logger *zap.Logger) *Store {
	if dir == "" {
		dir = DefaultDir
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{dir: dir, logger: logger}
}

// Dir returns the store directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the config file path for a device name.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// NeedsWrite reports whether the stored config for name differs from the
// new content. A missing or unreadable previous file counts as "no
// previous content" and forces a write; this is the normal first-time
// configuration case, not an error.
func (s *Store) NeedsWrite(name string, content string) bool {
	old, err := os.ReadFile(s.Path(name))
	if err != nil {
		s.logger.Debug("no previous config, write needed",
			zap.String("device", name),
			zap.Error(err),
		)
		return true
	}

	oldPrint := Fingerprint(old)
	newPrint := Fingerprint([]byte(content))
	s.logger.Debug("config fingerprints",
		zap.String("device", name),
		zap.String("old", oldPrint),
		zap.String("new", newPrint),
	)
	return oldPrint != newPrint
}

// Write persists content as the config file for name, creating the store
// directory on first use.
func (s *Store) Write(name string, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.Path(name), []byte(content), 0o644)
}

// Remove deletes the config file for name. Removing an absent file is not
// an error.
func (s *Store) Remove(name string) error {
	err := os.Remove(s.Path(name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// List returns the names of all devices with a stored config, sorted.
// A missing store directory yields an empty list.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Read returns the stored config content for name.
func (s *Store) Read(name string) (string, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
