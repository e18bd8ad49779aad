// Package gitrepo inspects the git repository a project lives in.
package gitrepo

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-git/go-git/v5"
)

var (
	// ErrNoRepository is returned by Open when path is not inside a repository.
	ErrNoRepository = errors.New("not a git repository")
	// ErrDirty is returned by CheckClean when tracked files have uncommitted
	// changes.
	ErrDirty = errors.New("working tree has uncommitted changes")
)

// A Repository wraps go-git operations.
type Repository struct {
	repo *git.Repository
}

// Open opens the repository containing path.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, ErrNoRepository
	}
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	return &Repository{repo: repo}, nil
}

// Branch returns the short name of the checked out branch.
func (r *Repository) Branch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// CheckClean returns an error wrapping ErrDirty when tracked files are
// modified, added or deleted. Untracked files are ignored.
func (r *Repository) CheckClean() error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("reading worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}

	var changed []string
	for path, s := range status {
		if changedCode(s.Staging) || changedCode(s.Worktree) {
			changed = append(changed, path)
		}
	}
	if len(changed) == 0 {
		return nil
	}
	sort.Strings(changed)
	return fmt.Errorf("%w: %v", ErrDirty, changed)
}

func changedCode(c git.StatusCode) bool {
	return c != git.Unmodified && c != git.Untracked
}
