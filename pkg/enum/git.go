package enum

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/praetorian-inc/calclex/pkg/types"
)

// GitEnumerator yields expression files committed at HEAD of a local
// repository. The working tree is ignored.
type GitEnumerator struct {
	config Config
}

// NewGitEnumerator creates a new git enumerator rooted at config.Root.
func NewGitEnumerator(config Config) *GitEnumerator {
	return &GitEnumerator{config: config}
}

// Enumerate walks the HEAD tree in path order.
func (e *GitEnumerator) Enumerate(ctx context.Context, callback Callback) error {
	commit, err := e.headCommit()
	if err != nil {
		return err
	}

	tree, err := commit.Tree()
	if err != nil {
		return fmt.Errorf("reading tree of %s: %w", commit.Hash, err)
	}

	commitID := commit.Hash.String()
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !e.config.matchesExtension(f.Name) {
			return nil
		}
		if e.config.MaxFileSize > 0 && f.Size > e.config.MaxFileSize {
			return nil
		}

		content, err := f.Contents()
		if err != nil {
			return fmt.Errorf("reading %s: %w", f.Name, err)
		}
		data := []byte(content)
		if isBinary(data) {
			return nil
		}

		return callback(data, types.ComputeSourceID(data), types.GitProvenance{
			RepoPath: e.config.Root,
			CommitID: commitID,
			BlobPath: f.Name,
		})
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", e.config.Root, err)
	}
	return nil
}

func (e *GitEnumerator) headCommit() (*object.Commit, error) {
	repo, err := git.PlainOpen(e.config.Root)
	if err != nil {
		return nil, fmt.Errorf("opening git repository %s: %w", e.config.Root, err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("loading commit %s: %w", head.Hash(), err)
	}
	return commit, nil
}
