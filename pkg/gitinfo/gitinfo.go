// Package gitinfo supplies repository metadata for the snapshot header.
// Everything is read in-process through go-git; no git binary is invoked,
// so metadata collection can never hang the run. Any failure degrades to an
// explicit Unavailable value, never an error the caller must interpret.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
	"go.uber.org/zap"
)

// shortHashLen is how many hex digits of the commit hash the header shows.
const shortHashLen = 8

// Info holds the repository metadata rendered into the snapshot header.
// The zero value is the Unavailable marker.
type Info struct {
	Branch     string
	Commit     string
	CommitDate string
	Remote     string
	Available  bool
}

// Provider supplies repository metadata or a well-defined absence value.
type Provider interface {
	Get() Info
}

// Unavailable returns the explicit absence value.
func Unavailable() Info {
	return Info{}
}

// RepoProvider reads metadata from the repository containing root.
type RepoProvider struct {
	root   string
	logger *zap.Logger
}

// NewProvider returns a RepoProvider for the given project root.
func NewProvider(root string, logger *zap.Logger) *RepoProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RepoProvider{root: root, logger: logger}
}

// Get returns the repository metadata, or Unavailable when the root is not
// inside a git repository or the repository has no resolvable HEAD.
func (p *RepoProvider) Get() Info {
	repo, err := git.PlainOpenWithOptions(p.root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		p.logger.Debug("No git repository found", zap.String("root", p.root), zap.Error(err))
		return Unavailable()
	}

	head, err := repo.Head()
	if err != nil {
		p.logger.Warn("Cannot resolve repository HEAD", zap.Error(err))
		return Unavailable()
	}

	info := Info{
		Commit:    head.Hash().String()[:shortHashLen],
		Branch:    "detached",
		Available: true,
	}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}

	if commit, err := repo.CommitObject(head.Hash()); err == nil {
		info.CommitDate = commit.Committer.When.Format("2006-01-02 15:04:05 -0700")
	} else {
		p.logger.Warn("Cannot load HEAD commit object", zap.Error(err))
	}

	if remote, err := repo.Remote(git.DefaultRemoteName); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			info.Remote = urls[0]
		}
	}

	return info
}
