// Package sink places emitted units on the filesystem, one file per unit.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-schemagen/pkg/emit"
)

// ErrExists reports a unit whose target file already exists while overwrite
// is disabled.
var ErrExists = errors.New("sink: output file already exists")

// Directory writes units into a directory. It refuses to replace existing
// files unless overwrite is enabled, and creates the directory on first
// write.
type Directory struct {
	dir       string
	extension string
	overwrite bool
	fileMode  os.FileMode
}

var _ emit.Sink = (*Directory)(nil)

// Option configures a Directory sink.
type Option func(*Directory)

// WithExtension appends a file extension to unit names. The leading dot is
// added when missing.
func WithExtension(ext string) Option {
	return func(d *Directory) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		d.extension = trimmed
	}
}

// WithOverwrite allows replacing existing files.
func WithOverwrite(enabled bool) Option {
	return func(d *Directory) {
		d.overwrite = enabled
	}
}

// WithFileMode sets the permission bits for written files.
func WithFileMode(mode os.FileMode) Option {
	return func(d *Directory) {
		if mode != 0 {
			d.fileMode = mode
		}
	}
}

// NewDirectory constructs a sink rooted at dir.
func NewDirectory(dir string, options ...Option) (*Directory, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("sink: directory is required")
	}

	d := &Directory{
		dir:      filepath.Clean(dir),
		fileMode: 0o644,
	}
	for _, opt := range options {
		if opt != nil {
			opt(d)
		}
	}
	return d, nil
}

// Write places one unit as <dir>/<name><extension>.
func (d *Directory) Write(ctx context.Context, unit emit.Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateName(unit.Name); err != nil {
		return err
	}

	path := filepath.Join(d.dir, unit.Name+d.extension)
	if !d.overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("sink: stat %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("sink: create directory %s: %w", d.dir, err)
	}
	if err := os.WriteFile(path, unit.Body, d.fileMode); err != nil {
		return fmt.Errorf("sink: write %s: %w", path, err)
	}
	return nil
}

// Path returns the file a unit name would be written to.
func (d *Directory) Path(name string) string {
	return filepath.Join(d.dir, name+d.extension)
}

// validateName keeps unit names inside the sink directory.
func validateName(name string) error {
	if name == "" {
		return errors.New("sink: unit name is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return fmt.Errorf("sink: unit name %q contains path elements", name)
	}
	return nil
}
