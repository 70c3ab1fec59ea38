package client

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the client's durable storage. It holds the last hash handed out
// by the server and nothing else.
type State struct {
	UserHash string `yaml:"userHash,omitempty"`
}

// StateDir returns the client configuration directory.
func StateDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "hashnotes")
}

// StateFile persists State as YAML at Path.
type StateFile struct {
	Path string
}

// DefaultStateFile returns the state file under StateDir.
func DefaultStateFile() *StateFile {
	return &StateFile{Path: filepath.Join(StateDir(), "state.yaml")}
}

// Load returns the stored state, or an empty State if none was saved yet.
func (f *StateFile) Load() (*State, error) {
	st := &State{}
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Path, err)
	}
	return st, nil
}

// SaveHash records hash as the last created token.
func (f *StateFile) SaveHash(hash string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o750); err != nil {
		return err
	}
	data, err := yaml.Marshal(&State{UserHash: hash})
	if err != nil {
		return err
	}
	return os.WriteFile(f.Path, data, 0o600)
}
