// Package gitrepo wraps github.com/go-git/go-git/v5 with the narrow
// operations the Spigot source needs: clone-or-open a repository,
// fetch a specific commit in when it is not yet present, and read a
// file's contents as of a given commit.
package gitrepo

import (
	"errors"
	"io"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/Techcable/minecraft-mappings/pkg/core/cerr"
)

// Repo is a clone rooted at a local directory.
type Repo struct {
	dir  string
	repo *git.Repository
}

// Open clones remoteURL into dir if dir is not already a git
// repository, otherwise opens the existing clone. A fresh clone is
// non-bare and has its working copy checked out, but file contents are
// only ever read from commit objects, via ReadFileAtCommit.
func Open(dir, remoteURL string) (*Repo, error) {
	repo, err := git.PlainOpen(dir)
	if err == nil {
		return &Repo{dir: dir, repo: repo}, nil
	}
	if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, cerr.NewGitError("open "+dir, err)
	}
	repo, err = git.PlainClone(dir, false, &git.CloneOptions{URL: remoteURL})
	if err != nil {
		return nil, cerr.NewGitError("clone "+remoteURL, err)
	}
	return &Repo{dir: dir, repo: repo}, nil
}

// HasCommit reports whether commitID is already present locally.
func (r *Repo) HasCommit(commitID string) bool {
	_, err := r.repo.CommitObject(plumbing.NewHash(commitID))
	return err == nil
}

// FetchCommit fetches commitID from the given remote name using the
// refspecs "master" and ":<commitID>" — the second refspec pulls the
// bare commit object in without needing it to be reachable from a
// named branch.
func (r *Repo) FetchCommit(remoteName, commitID string) error {
	err := r.repo.Fetch(&git.FetchOptions{
		RemoteName: remoteName,
		RefSpecs: []config.RefSpec{
			config.RefSpec("master"),
			config.RefSpec(":" + commitID),
		},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return cerr.NewGitError("fetch "+commitID, err)
	}
	return nil
}

// EnsureCommit fetches commitID if it is not already present locally.
func (r *Repo) EnsureCommit(remoteName, commitID string) error {
	if r.HasCommit(commitID) {
		return nil
	}
	return r.FetchCommit(remoteName, commitID)
}

// ReadFileAtCommit returns the contents of path as it existed in
// commitID.
func (r *Repo) ReadFileAtCommit(commitID, path string) ([]byte, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(commitID))
	if err != nil {
		return nil, cerr.NewGitError("resolve commit "+commitID, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, cerr.NewGitError("read tree of "+commitID, err)
	}
	entry, err := tree.File(path)
	if err != nil {
		return nil, cerr.NewGitError("locate "+path+" in "+commitID, err)
	}
	reader, err := entry.Reader()
	if err != nil {
		return nil, cerr.NewGitError("open blob for "+path, err)
	}
	defer reader.Close()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, cerr.NewGitError("read blob for "+path, err)
	}
	return data, nil
}
