package source

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// Local reads and writes workflow files under a directory tree.
type Local struct {
	fs   afero.Fs
	root string
}

func NewLocal(fs afero.Fs, root string) *Local {
	return &Local{fs: fs, root: root}
}

// List returns the workflow files under .github/workflows.
func (l *Local) List(_ context.Context) ([]string, error) {
	dir := filepath.Join(l.root, ".github", "workflows")
	if _, err := l.fs.Stat(dir); err != nil {
		return nil, fmt.Errorf("find the workflow directory: %w", err)
	}
	files := []string{}
	for _, pattern := range []string{"*.yml", "*.yaml"} {
		matches, err := afero.Glob(l.fs, filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("look for workflow files using glob: %w", err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func (l *Local) Read(_ context.Context, path string) ([]byte, error) {
	content, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read a workflow file: %w", err)
	}
	return content, nil
}

func (l *Local) Write(_ context.Context, path string, content []byte, _ string) error {
	mode := fs.FileMode(0o644)
	if stat, err := l.fs.Stat(path); err == nil {
		mode = stat.Mode()
	}
	if err := afero.WriteFile(l.fs, path, content, mode); err != nil {
		return fmt.Errorf("write a workflow file: %w", err)
	}
	return nil
}

// IsLocalPath reports whether repo names a directory on disk rather than
// OWNER/NAME remote coordinates.
func IsLocalPath(repo string) bool {
	stat, err := os.Stat(repo)
	return err == nil && stat.IsDir()
}
