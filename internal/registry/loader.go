// Package registry discovers predictor artifacts on disk.
package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"predictd/internal/artifact"
	"predictd/pkg/types"
)

// Suffix is the filename suffix artifacts are discovered by.
const Suffix = ".model"

// LoadDir scans a directory for *.model files and builds a registry from
// their metadata. ID is the full filename (including extension); Path is the
// absolute file path. Files that fail to decode are skipped and reported via
// warn (which may be nil) so one corrupt artifact does not hide the rest.
func LoadDir(dir string, warn func(path string, err error)) ([]types.Model, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.Model
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), Suffix) {
			continue
		}
		p := filepath.Join(abs, name)
		meta, err := artifact.ReadMeta(p)
		if err != nil {
			if warn != nil {
				warn(p, err)
			}
			continue
		}
		display := meta.Name
		if display == "" {
			display = name
		}
		models = append(models, types.Model{
			ID:       name,
			Name:     display,
			Path:     p,
			Kind:     meta.Kind,
			Features: meta.Features,
			Classes:  meta.Classes,
		})
	}
	return models, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/predictors
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
