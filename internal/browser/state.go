package browser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultProfile is the profile used when no browser name is given.
const DefaultProfile = "chromium"

const stateFileName = "browser-state.json"

// State is the last page the browser surface touched. It lets successive
// commands (and navigate steps without an open) pick up where the
// previous one left off.
type State struct {
	URL     string `json:"url"`
	Browser string `json:"browser"`
}

// Home returns the handsfree data directory, honoring HANDSFREE_HOME.
func Home() (string, error) {
	if dir := os.Getenv("HANDSFREE_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("browser: resolve home: %w", err)
	}
	return filepath.Join(home, ".handsfree"), nil
}

// ProfileDir returns (and creates) the persistent user-data directory for
// a named profile. Profiles keep login sessions alive between runs.
func ProfileDir(home, name string) (string, error) {
	if name == "" {
		name = DefaultProfile
	}
	dir := filepath.Join(home, "browser-profiles", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("browser: create profile dir: %w", err)
	}
	return dir, nil
}

// LoadState reads the saved browser state. A missing or unreadable file
// yields a zero state, not an error: the surface then starts fresh.
func LoadState(home string) State {
	var st State
	data, err := os.ReadFile(filepath.Join(home, stateFileName))
	if err != nil {
		return st
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}
	}
	return st
}

// SaveState persists the browser state for the next invocation.
func SaveState(home string, st State) error {
	if err := os.MkdirAll(home, 0o755); err != nil {
		return fmt.Errorf("browser: create state dir: %w", err)
	}
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("browser: encode state: %w", err)
	}
	if err := os.WriteFile(filepath.Join(home, stateFileName), data, 0o644); err != nil {
		return fmt.Errorf("browser: write state: %w", err)
	}
	return nil
}
