package vcs

import (
	"context"

	"github.com/thomas-vilte/jh/internal/models"
)

// PullRequestHost opens and looks up pull requests for the current repository.
type PullRequestHost interface {
	// Name identifies the provider in messages ("gh", "github").
	Name() string
	// Installed reports whether the tooling the host needs is available.
	Installed(ctx context.Context) bool
	// Authenticated reports whether the host can act on behalf of the user.
	Authenticated(ctx context.Context) bool
	// FindPRForBranch returns the open pull request whose head is branch, or
	// nil when there is none.
	FindPRForBranch(ctx context.Context, branch string) (*models.PullRequest, error)
	// CreatePR opens a pull request. An empty Base means the repository default.
	CreatePR(ctx context.Context, req models.PRRequest) (*models.PullRequest, error)
}
