package ghcli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/shell"
	"github.com/thomas-vilte/jh/internal/vcs"
)

const (
	binary   = "gh"
	prFields = "number,url,title"
)

var _ vcs.PullRequestHost = (*Client)(nil)

// Client drives the GitHub CLI.
type Client struct {
	dir    string
	runner shell.Runner
}

func NewClient(runner shell.Runner) *Client {
	return NewClientAt("", runner)
}

// NewClientAt runs gh from dir.
func NewClientAt(dir string, runner shell.Runner) *Client {
	return &Client{dir: dir, runner: runner}
}

func (c *Client) Name() string {
	return binary
}

func (c *Client) Installed(_ context.Context) bool {
	_, err := c.runner.LookPath(binary)
	return err == nil
}

func (c *Client) Authenticated(ctx context.Context) bool {
	if !c.Installed(ctx) {
		return false
	}
	_, err := c.gh(ctx, "auth", "status")
	return err == nil
}

func (c *Client) FindPRForBranch(ctx context.Context, branch string) (*models.PullRequest, error) {
	if !c.Installed(ctx) {
		return nil, domainErrors.ErrGHNotInstalled
	}

	out, err := c.gh(ctx, "pr", "list", "--head", branch, "--json", prFields, "--limit", "1")
	if err != nil {
		return nil, commandError(domainErrors.ErrListPullRequests, err).WithContext("branch", branch)
	}

	if out.Stdout == "" || out.Stdout == "[]" {
		return nil, nil
	}

	var prs []models.PullRequest
	if err := json.Unmarshal([]byte(out.Stdout), &prs); err != nil {
		return nil, domainErrors.ErrListPullRequests.
			WithError(fmt.Errorf("error decoding gh output: %w", err)).
			WithContext("branch", branch)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return &prs[0], nil
}

// CreatePR runs gh pr create and reads the new pull request back with gh pr view.
func (c *Client) CreatePR(ctx context.Context, req models.PRRequest) (*models.PullRequest, error) {
	if !c.Installed(ctx) {
		return nil, domainErrors.ErrGHNotInstalled
	}
	if !c.Authenticated(ctx) {
		return nil, domainErrors.ErrGHNotAuthenticated
	}

	args := []string{"pr", "create", "--title", req.Title, "--body", req.Body}
	if req.Base != "" {
		args = append(args, "--base", req.Base)
	}
	if req.Head != "" {
		args = append(args, "--head", req.Head)
	}

	if _, err := c.gh(ctx, args...); err != nil {
		return nil, commandError(domainErrors.ErrCreatePullRequest, err)
	}

	viewArgs := []string{"pr", "view"}
	if req.Head != "" {
		viewArgs = append(viewArgs, req.Head)
	}
	viewArgs = append(viewArgs, "--json", prFields)

	out, err := c.gh(ctx, viewArgs...)
	if err != nil {
		return nil, commandError(domainErrors.ErrCommandFailed, err)
	}

	var pr models.PullRequest
	if err := json.Unmarshal([]byte(out.Stdout), &pr); err != nil {
		return nil, domainErrors.ErrCommandFailed.
			WithError(fmt.Errorf("error decoding gh output: %w", err)).
			WithContext("command", "gh pr view")
	}

	logger.Info(ctx, "pull request created", "number", pr.Number, "url", pr.URL)
	return &pr, nil
}

func (c *Client) gh(ctx context.Context, args ...string) (shell.Output, error) {
	logger.Debug(ctx, "running gh", "command", shell.CommandLine(binary, args...))
	return c.runner.Run(ctx, c.dir, binary, args...)
}

func commandError(base *domainErrors.AppError, err error) *domainErrors.AppError {
	appErr := base.WithError(err)
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) {
		appErr = appErr.WithContext("command", exitErr.Command)
		if exitErr.Stderr != "" {
			appErr = appErr.WithContext("stderr", exitErr.Stderr)
		}
	}
	return appErr
}
