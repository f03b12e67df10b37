package registry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"argmap/internal/common/fsutil"
	"argmap/internal/config"
)

// ErrNotFound is returned when a model identifier cannot be mapped to a local file.
var ErrNotFound = errors.New("registry: model not found")

// DefaultRevision is the hub branch used when no revision is pinned.
const DefaultRevision = "main"

// preferredQuant is picked when a repository snapshot holds several GGUF files.
const preferredQuant = "q4_k_m"

// Resolver maps model identifiers to local GGUF files.
type Resolver struct {
	// ModelsDir is scanned for *.gguf files by file name. Optional.
	ModelsDir string
	// HubCacheDir is a Hugging Face hub cache root. Empty means the standard
	// location derived from HF_HUB_CACHE / HF_HOME / ~/.cache/huggingface/hub.
	HubCacheDir string
	// Lookup reads environment variables; os.LookupEnv when nil.
	Lookup config.LookupFunc
}

// ResolveGGUF returns the path of the GGUF file for id at revision.
//
// id may be a file path, a directory holding GGUF files, a file name inside
// ModelsDir, a hub repository ("org/name"), or a repository plus file
// ("org/name/file.gguf"). The revision only applies to hub lookups.
func (r Resolver) ResolveGGUF(id string, revision config.Optional[string]) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	if p, err := fsutil.ExpandHome(id); err == nil {
		if fsutil.IsFile(p) {
			return filepath.Abs(p)
		}
		if fsutil.IsDir(p) {
			if f, ok := pickGGUF(p, ""); ok {
				return f, nil
			}
			return "", fmt.Errorf("%w: no .gguf file in %s", ErrNotFound, p)
		}
	}
	if r.ModelsDir != "" {
		if m, ok := findInDir(r.ModelsDir, id); ok {
			return m.Path, nil
		}
	}
	repo, file := splitRepoFile(id)
	if repo == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	snap, err := r.snapshotDir(repo, revision.OrElse(DefaultRevision))
	if err != nil {
		return "", err
	}
	if file != "" {
		p := filepath.Join(snap, filepath.FromSlash(file))
		if fsutil.IsFile(p) {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s not in snapshot %s", ErrNotFound, file, snap)
	}
	if f, ok := pickGGUF(snap, preferredQuant); ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: no .gguf file in snapshot %s", ErrNotFound, snap)
}

// HubCacheRoot returns the hub cache directory in effect.
func (r Resolver) HubCacheRoot() string {
	if r.HubCacheDir != "" {
		p, _ := fsutil.ExpandHome(r.HubCacheDir)
		return p
	}
	lookup := r.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := config.LookupString(lookup, "HF_HUB_CACHE").Get(); ok {
		return v
	}
	if v, ok := config.LookupString(lookup, "HF_HOME").Get(); ok {
		return filepath.Join(v, "hub")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "huggingface", "hub")
}

// snapshotDir finds snapshots/<commit> for repo at revision. A revision that
// names a ref is dereferenced through refs/<revision>; anything else is
// treated as a commit hash.
func (r Resolver) snapshotDir(repo, revision string) (string, error) {
	root := r.HubCacheRoot()
	if root == "" {
		return "", fmt.Errorf("%w: %s (no hub cache)", ErrNotFound, repo)
	}
	repoDir := filepath.Join(root, "models--"+strings.ReplaceAll(repo, "/", "--"))
	if !fsutil.IsDir(repoDir) {
		return "", fmt.Errorf("%w: %s not in hub cache %s", ErrNotFound, repo, root)
	}
	commit := revision
	if b, err := os.ReadFile(filepath.Join(repoDir, "refs", filepath.FromSlash(revision))); err == nil {
		commit = strings.TrimSpace(string(b))
	}
	snap := filepath.Join(repoDir, "snapshots", commit)
	if !fsutil.IsDir(snap) {
		return "", fmt.Errorf("%w: %s@%s has no cached snapshot", ErrNotFound, repo, revision)
	}
	return snap, nil
}

// splitRepoFile splits "org/name[/path/to/file.gguf]".
func splitRepoFile(id string) (repo, file string) {
	parts := strings.SplitN(id, "/", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", ""
	}
	repo = parts[0] + "/" + parts[1]
	if len(parts) == 3 {
		file = parts[2]
	}
	return repo, file
}

// pickGGUF returns the GGUF file in dir whose name contains prefer, or the
// lexically first one.
func pickGGUF(dir, prefer string) (string, bool) {
	files, err := fsutil.FilesWithSuffix(dir, ".gguf")
	if err != nil || len(files) == 0 {
		return "", false
	}
	if prefer != "" {
		for _, f := range files {
			if strings.Contains(strings.ToLower(filepath.Base(f)), prefer) {
				return f, true
			}
		}
	}
	return files[0], true
}
