package gitstat

import (
	"errors"
	"fmt"
	"time"

	gitlib "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

var (
	// ErrNotRepository means the path does not exist or holds no git repository.
	ErrNotRepository = errors.New("not a git repository")
	// ErrBranchNotFound means the requested branch does not exist in the repository.
	ErrBranchNotFound = errors.New("branch not found")
)

// Commit is one commit's contribution to the statistics.
type Commit struct {
	Hash    string
	When    time.Time // author instant
	IsMerge bool
	Diff    DiffStats
}

// Repo wraps a read-only go-git repository handle.
type Repo struct {
	inner *gitlib.Repository
	name  string
}

func Open(path, name string) (*Repo, error) {
	inner, err := gitlib.PlainOpen(path)
	if err != nil {
		if errors.Is(err, gitlib.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Repo{inner: inner, name: name}, nil
}

func (r *Repo) Name() string {
	return r.name
}

// CommitsInRange walks the branch (or HEAD when branch is empty) and returns
// commits whose author instant falls within [start, end). Merge commits
// (more than one parent) are excluded unless includeMerges is set.
func (r *Repo) CommitsInRange(start, end time.Time, branch string, includeMerges bool) ([]Commit, error) {
	from, err := r.startHash(branch)
	if err != nil {
		return nil, err
	}

	iter, err := r.inner.Log(&gitlib.LogOptions{From: from, Order: gitlib.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		// The walk is ordered by committer time, newest first; once it
		// passes the window start there is nothing left to collect.
		if c.Committer.When.Before(start) {
			return storer.ErrStop
		}

		when := c.Author.When
		if when.Before(start) || !when.Before(end) {
			return nil
		}

		isMerge := c.NumParents() > 1
		if isMerge && !includeMerges {
			return nil
		}

		diff, diffErr := diffAgainstFirstParent(c)
		if diffErr != nil {
			return fmt.Errorf("diff %s: %w", c.Hash.String()[:7], diffErr)
		}

		commits = append(commits, Commit{
			Hash:    c.Hash.String()[:7],
			When:    when,
			IsMerge: isMerge,
			Diff:    diff,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commits, nil
}

func (r *Repo) startHash(branch string) (plumbing.Hash, error) {
	if branch == "" {
		head, err := r.inner.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("resolve HEAD: %w", err)
		}
		return head.Hash(), nil
	}
	ref, err := r.inner.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, fmt.Errorf("%w: %s", ErrBranchNotFound, branch)
		}
		return plumbing.ZeroHash, fmt.Errorf("resolve branch %s: %w", branch, err)
	}
	return ref.Hash(), nil
}

func diffAgainstFirstParent(c *object.Commit) (DiffStats, error) {
	currentTree, err := c.Tree()
	if err != nil {
		return DiffStats{}, err
	}

	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, err := c.Parent(0)
		if err != nil {
			return DiffStats{}, err
		}
		parentTree, err = parent.Tree()
		if err != nil {
			return DiffStats{}, err
		}
	}

	changes, err := object.DiffTree(parentTree, currentTree)
	if err != nil {
		return DiffStats{}, err
	}
	if len(changes) == 0 {
		return DiffStats{}, nil
	}

	patch, err := changes.Patch()
	if err != nil {
		return DiffStats{}, err
	}

	var stats DiffStats
	for _, fs := range patch.Stats() {
		stats.AddFile(FileChange{Path: fs.Name, Additions: fs.Addition, Deletions: fs.Deletion})
	}
	return stats, nil
}
