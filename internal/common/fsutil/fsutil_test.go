package fsutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}
	cases := []struct{ in, want string }{
		{"/tmp", "/tmp"},
		{"", ""},
		{"~", home},
		{"~/models/llm", filepath.Join(home, "models", "llm")},
	}
	for _, c := range cases {
		got, err := ExpandHome(c.in)
		if err != nil {
			t.Fatalf("%q: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%q -> %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFilesWithSuffix(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.gguf", "A.GGUF", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "dir.gguf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	got, err := FilesWithSuffix(dir, ".gguf")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "A.GGUF" || filepath.Base(got[1]) != "b.gguf" {
		t.Fatalf("unexpected files: %v", got)
	}
	if !IsFile(got[0]) || IsDir(got[0]) || !IsDir(dir) || !PathExists(dir) {
		t.Fatalf("predicates disagree for %s", got[0])
	}
	if _, err := FilesWithSuffix(filepath.Join(dir, "missing"), ".gguf"); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
