// Package archive handles on-disk persistence: the single active-league slot
// plus named export/import files.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cbbgm/cbbgm/internal/league"
)

const slotFile = "active.json"

// SaveLocal overwrites the active-league slot under dir.
func SaveLocal(dir string, l *league.League) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("serializing league: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, slotFile), data, 0o644); err != nil {
		return fmt.Errorf("writing local save: %w", err)
	}
	return nil
}

// LoadLocal reads the active-league slot. A missing slot returns os.ErrNotExist;
// malformed JSON is reported without touching any state.
func LoadLocal(dir string) (*league.League, error) {
	data, err := os.ReadFile(filepath.Join(dir, slotFile))
	if err != nil {
		return nil, err
	}
	var l league.League
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("local save is malformed: %w", err)
	}
	return &l, nil
}

// Export writes the league as a pretty-printed JSON document named after the
// league and returns the path written.
func Export(dir string, l *league.League) (string, error) {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing league: %w", err)
	}
	name := Slug(l.Name)
	if name == "" {
		name = "league"
	}
	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export: %w", err)
	}
	return path, nil
}

// Import reads a league export. There is no schema validation beyond JSON
// parse success; the caller replaces its league wholesale on a nil error.
func Import(path string) (*league.League, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import: %w", err)
	}
	var l league.League
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("invalid league JSON: %w", err)
	}
	return &l, nil
}

// Slug lowercases a league name and collapses whitespace runs to hyphens,
// producing a filesystem- and key-friendly name.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(name))), "-")
}
