// Package scaffold writes the starter layout for a new predictd project:
// a models directory for artifacts, a config file, and a short README.
package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Options controls what the generated config file points at.
type Options struct {
	// Addr is the listen address written into the config (default ":8080").
	Addr string
	// ModelsDir is the models directory name inside the project
	// (default "models").
	ModelsDir string
}

const configTemplate = `# predictd configuration
addr = "%s"
models_dir = "%s"
# default_model = "example.model"
# max_loaded = 4
# max_queue_depth = 32
# max_wait_ms = 30000
log_level = "info"

[cors]
enabled = false
`

const readmeTemplate = `# %s

A predictd project. Drop serialized *.model artifacts into %s/ and start
the server:

    predictd serve --config predictd.toml

Then open http://localhost%s/ for the prediction form.
`

// Create writes the project layout into dir and returns the created paths.
// dir must not exist yet, or be an existing empty directory; files are
// never overwritten.
func Create(dir string, opts Options) ([]string, error) {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if opts.ModelsDir == "" {
		opts.ModelsDir = "models"
	}
	if err := checkTarget(dir); err != nil {
		return nil, err
	}

	var created []string
	mk := func(path string, write func() error) error {
		if err := write(); err != nil {
			return err
		}
		created = append(created, path)
		return nil
	}

	if err := mk(dir, func() error { return os.MkdirAll(dir, 0o755) }); err != nil {
		return created, err
	}
	modelsPath := filepath.Join(dir, opts.ModelsDir)
	if err := mk(modelsPath, func() error { return os.Mkdir(modelsPath, 0o755) }); err != nil {
		return created, err
	}
	// keep the empty models dir under version control
	keep := filepath.Join(modelsPath, ".gitkeep")
	if err := mk(keep, func() error { return writeNew(keep, nil) }); err != nil {
		return created, err
	}
	cfgPath := filepath.Join(dir, "predictd.toml")
	cfg := fmt.Sprintf(configTemplate, opts.Addr, opts.ModelsDir)
	if err := mk(cfgPath, func() error { return writeNew(cfgPath, []byte(cfg)) }); err != nil {
		return created, err
	}
	readmePath := filepath.Join(dir, "README.md")
	readme := fmt.Sprintf(readmeTemplate, filepath.Base(dir), opts.ModelsDir, opts.Addr)
	if err := mk(readmePath, func() error { return writeNew(readmePath, []byte(readme)) }); err != nil {
		return created, err
	}
	return created, nil
}

// checkTarget accepts a missing path or an existing empty directory.
func checkTarget(dir string) error {
	fi, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if !fi.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return fmt.Errorf("%s is not empty", dir)
	}
	return nil
}

// writeNew creates a file, failing if it already exists.
func writeNew(path string, content []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
