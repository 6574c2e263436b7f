package enum

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/praetorian-inc/calclex/pkg/types"
)

// binarySniffLen is how much of a file is checked for NUL bytes.
const binarySniffLen = 8192

// FilesystemEnumerator yields expression files below a root, or the root
// itself when it names a file.
type FilesystemEnumerator struct {
	config Config
}

// NewFilesystemEnumerator creates a new filesystem enumerator.
func NewFilesystemEnumerator(config Config) *FilesystemEnumerator {
	return &FilesystemEnumerator{config: config}
}

// Enumerate selects candidate paths first, then reads them concurrently.
// A root that names a single file is yielded whatever its extension.
// Symbolic links are never followed.
func (e *FilesystemEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	paths, err := e.selectPaths(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(runtime.NumCPU(), 1))
	for _, path := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return e.emit(gctx, path, callback)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (e *FilesystemEnumerator) selectPaths(ctx context.Context) ([]string, error) {
	root := filepath.Clean(e.config.Root)
	ignore := loadGitignore(root)

	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		switch {
		case path == root:
			if !d.IsDir() {
				paths = append(paths, path)
			}
			return nil
		case d.IsDir():
			if !e.config.IncludeHidden && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		case !d.Type().IsRegular():
			return nil
		}

		ok, err := e.accept(root, path, d, ignore)
		if err != nil || !ok {
			return err
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}

// accept applies the hidden, extension, .gitignore and size filters to a
// regular file found during the walk.
func (e *FilesystemEnumerator) accept(root, path string, d fs.DirEntry, ignore *gitignore.GitIgnore) (bool, error) {
	if !e.config.IncludeHidden && isHidden(d.Name()) {
		return false, nil
	}
	if !e.config.matchesExtension(d.Name()) {
		return false, nil
	}
	if ignore != nil {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return false, err
		}
		if ignore.MatchesPath(rel) {
			return false, nil
		}
	}
	if e.config.MaxFileSize > 0 {
		info, err := d.Info()
		if err != nil {
			return false, err
		}
		if info.Size() > e.config.MaxFileSize {
			return false, nil
		}
	}
	return true, nil
}

func (e *FilesystemEnumerator) emit(ctx context.Context, path string, callback Callback) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if isBinary(content) {
		return nil
	}

	return callback(content, types.ComputeSourceID(content), types.FileProvenance{FilePath: path})
}

// loadGitignore returns the root's .gitignore matcher, or nil when there is
// none or it cannot be parsed.
func loadGitignore(root string) *gitignore.GitIgnore {
	ignore, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignore
}

// isHidden reports a dot-prefixed name; "." and ".." are not hidden.
func isHidden(name string) bool {
	if name == "." || name == ".." {
		return false
	}
	return strings.HasPrefix(name, ".")
}

func isBinary(content []byte) bool {
	return bytes.IndexByte(content[:min(len(content), binarySniffLen)], 0) != -1
}
