// Package levels provides level loading and validation for Stem the Tide.
// This package depends on engine but engine does not depend on levels.
package levels

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/stem-the-tide/internal/engine"
	"github.com/vovakirdan/stem-the-tide/internal/levels/formats"
)

// Loader handles loading levels from a file tree.
type Loader struct {
	FS       fs.FS
	Geometry Geometry
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Geometry: DefaultGeometry()}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
// A file that fails to parse or validate fails the whole load.
func (l *Loader) LoadAll() ([]engine.Level, error) {
	var levels []engine.Level
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			return err
		}
		if prev, dup := seen[level.ID]; dup {
			return fmt.Errorf("duplicate level id %q in %s and %s", level.ID, prev, p)
		}
		seen[level.ID] = p

		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (engine.Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return engine.Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return engine.Level{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	level, err := Build(parsed, l.Geometry)
	if err != nil {
		return engine.Level{}, fmt.Errorf("validating file %s: %w", p, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (engine.Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return engine.Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return engine.Level{}, fmt.Errorf("levels: level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
