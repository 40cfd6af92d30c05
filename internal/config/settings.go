package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the system-wide settings file location. CLI commands
// override it with --config.
const DefaultPath = "/etc/nutsmith/config.yaml"

// Mutex for thread-safe file operations
var fileMutex sync.Mutex

// Load reads settings from path. A missing file yields full defaults;
// a present but unparsable file is an error. Fields the file omits are
// filled with defaults through the Settings accessors.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}

	if settings.Version == 0 {
		settings.Version = 1
	}
	if settings.Devices == nil {
		settings.Devices = make(map[string]*Device)
	}

	return &settings, nil
}

// Save writes settings to path, creating parent directories as needed.
// The write goes through a temp file and rename so a crash cannot leave a
// half-written settings file.
func Save(settings *Settings, path string) error {
	if path == "" {
		path = DefaultPath
	}

	fileMutex.Lock()
	defer fileMutex.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace settings file: %w", err)
	}

	return nil
}
