package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"argmap/internal/common/fsutil"
	"argmap/pkg/types"
)

// LoadDir scans a directory for *.gguf files and builds a model list from filenames.
// ID is the full filename (including extension); Path is the absolute file path.
func LoadDir(dir string) ([]types.Model, error) {
	base, err := fsutil.ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	files, err := fsutil.FilesWithSuffix(abs, ".gguf")
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	models := make([]types.Model, 0, len(files))
	for _, p := range files {
		m := types.Model{ID: filepath.Base(p), Path: p}
		if fi, err := os.Stat(p); err == nil {
			m.SizeBytes = fi.Size()
		}
		models = append(models, m)
	}
	return models, nil
}

// findInDir returns the model in dir whose ID matches id, with or without the
// .gguf extension (case-insensitive).
func findInDir(dir, id string) (types.Model, bool) {
	models, err := LoadDir(dir)
	if err != nil {
		return types.Model{}, false
	}
	want := strings.ToLower(id)
	for _, m := range models {
		name := strings.ToLower(m.ID)
		if name == want || strings.TrimSuffix(name, ".gguf") == want {
			return m, true
		}
	}
	return types.Model{}, false
}
