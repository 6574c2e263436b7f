package enum

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/praetorian-inc/calclex/pkg/types"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
}

// collect runs e and returns the sorted paths it yielded.
func collect(t *testing.T, e Enumerator) []string {
	t.Helper()

	var mu sync.Mutex
	var found []string
	err := e.Enumerate(context.Background(), func(content []byte, id types.SourceID, prov types.Provenance) error {
		if id != types.ComputeSourceID(content) {
			t.Errorf("source ID mismatch for %s", prov.Path())
		}
		mu.Lock()
		found = append(found, prov.Path())
		mu.Unlock()
		return nil
	})
	if err != nil {
		t.Fatalf("enumerate failed: %v", err)
	}
	sort.Strings(found)
	return found
}

func TestFilesystemEnumerator(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.calc"), "1+2")
	writeFile(t, filepath.Join(tmpDir, "b.calc"), "3*4")
	writeFile(t, filepath.Join(tmpDir, "sub", "c.calc"), "(5)")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir}))
	if len(found) != 3 {
		t.Fatalf("expected 3 files, got %d: %v", len(found), found)
	}
}

func TestFilesystemEnumerator_Extensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.calc"), "1+2")
	writeFile(t, filepath.Join(tmpDir, "b.CALC"), "1+2")
	writeFile(t, filepath.Join(tmpDir, "notes.md"), "# notes")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir, Extensions: []string{"calc"}}))
	want := []string{filepath.Join(tmpDir, "a.calc"), filepath.Join(tmpDir, "b.CALC")}
	if len(found) != 2 || found[0] != want[0] || found[1] != want[1] {
		t.Errorf("got %v, want %v", found, want)
	}
}

func TestFilesystemEnumerator_SingleFileIgnoresExtension(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "expr.txt")
	writeFile(t, path, "1+2")

	found := collect(t, NewFilesystemEnumerator(Config{Root: path, Extensions: []string{".calc"}}))
	if len(found) != 1 || found[0] != path {
		t.Errorf("got %v, want [%s]", found, path)
	}
}

func TestFilesystemEnumerator_HiddenFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "visible.calc"), "1")
	writeFile(t, filepath.Join(tmpDir, ".hidden.calc"), "2")
	writeFile(t, filepath.Join(tmpDir, ".cache", "x.calc"), "3")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir}))
	if len(found) != 1 {
		t.Errorf("expected 1 visible file, got %v", found)
	}

	found = collect(t, NewFilesystemEnumerator(Config{Root: tmpDir, IncludeHidden: true}))
	if len(found) != 3 {
		t.Errorf("expected 3 files with hidden included, got %v", found)
	}
}

func TestFilesystemEnumerator_MaxFileSize(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "small.calc"), "1")
	writeFile(t, filepath.Join(tmpDir, "large.calc"), "1+1+1+1+1+1+1+1+1+1")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir, MaxFileSize: 5}))
	if len(found) != 1 || filepath.Base(found[0]) != "small.calc" {
		t.Errorf("expected only small.calc, got %v", found)
	}
}

func TestFilesystemEnumerator_BinaryFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "text.calc"), "1+2")
	writeFile(t, filepath.Join(tmpDir, "blob.calc"), "1\x002")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir}))
	if len(found) != 1 || filepath.Base(found[0]) != "text.calc" {
		t.Errorf("expected only text.calc, got %v", found)
	}
}

func TestFilesystemEnumerator_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".gitignore"), "build/\n*.tmp.calc\n")
	writeFile(t, filepath.Join(tmpDir, "keep.calc"), "1")
	writeFile(t, filepath.Join(tmpDir, "scratch.tmp.calc"), "2")
	writeFile(t, filepath.Join(tmpDir, "build", "out.calc"), "3")

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir, Extensions: []string{".calc"}}))
	if len(found) != 1 || filepath.Base(found[0]) != "keep.calc" {
		t.Errorf("expected only keep.calc, got %v", found)
	}
}

func TestFilesystemEnumerator_SkipsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(t.TempDir(), "outside.calc")
	writeFile(t, target, "1")
	writeFile(t, filepath.Join(tmpDir, "inside.calc"), "2")
	if err := os.Symlink(target, filepath.Join(tmpDir, "link.calc")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	found := collect(t, NewFilesystemEnumerator(Config{Root: tmpDir}))
	if len(found) != 1 || filepath.Base(found[0]) != "inside.calc" {
		t.Errorf("expected only inside.calc, got %v", found)
	}
}

func TestFilesystemEnumerator_MissingRoot(t *testing.T) {
	e := NewFilesystemEnumerator(Config{Root: filepath.Join(t.TempDir(), "missing")})
	err := e.Enumerate(context.Background(), func([]byte, types.SourceID, types.Provenance) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestFilesystemEnumerator_ContextCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.calc"), "1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewFilesystemEnumerator(Config{Root: tmpDir})
	err := e.Enumerate(ctx, func([]byte, types.SourceID, types.Provenance) error { return nil })
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestIsHidden(t *testing.T) {
	tests := map[string]bool{
		".":        false,
		"..":       false,
		".git":     true,
		".hidden":  true,
		"a.calc":   false,
		"dir.name": false,
	}
	for name, want := range tests {
		if got := isHidden(name); got != want {
			t.Errorf("isHidden(%q) = %v, want %v", name, got, want)
		}
	}
}
