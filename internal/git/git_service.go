package git

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/regex"
	"github.com/thomas-vilte/jh/internal/shell"
)

const detachedHead = "HEAD"

// GitService runs git in a working directory. An empty dir means the
// process working directory.
type GitService struct {
	dir    string
	runner shell.Runner
}

// PushResult describes a successful push.
type PushResult struct {
	// UpToDate is set when the remote already had every commit.
	UpToDate bool
}

// RepoInfo identifies the repository behind the origin remote.
type RepoInfo struct {
	Host     string
	Owner    string
	Repo     string
	Provider string
}

func NewGitService() *GitService {
	return NewGitServiceAt("", shell.ExecRunner{})
}

// NewGitServiceAt creates a GitService rooted at dir using runner.
func NewGitServiceAt(dir string, runner shell.Runner) *GitService {
	return &GitService{dir: dir, runner: runner}
}

func (s *GitService) git(ctx context.Context, args ...string) (shell.Output, error) {
	logger.Debug(ctx, "running git", "command", shell.CommandLine("git", args...))
	return s.runner.Run(ctx, s.dir, "git", args...)
}

// IsRepo reports whether the working directory is inside a git repository.
func (s *GitService) IsRepo(ctx context.Context) bool {
	_, err := s.git(ctx, "rev-parse", "--git-dir")
	return err == nil
}

func (s *GitService) GetCurrentBranch(ctx context.Context) (string, error) {
	if !s.IsRepo(ctx) {
		return "", domainErrors.ErrNotInGitRepo
	}

	out, err := s.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", withStderr(domainErrors.ErrGetBranch.WithError(err), err)
	}

	branch := out.Stdout
	if branch == detachedHead {
		return "", domainErrors.ErrDetachedHead
	}
	return branch, nil
}

// GetLastCommitMessage returns the full message (subject and body) of HEAD.
func (s *GitService) GetLastCommitMessage(ctx context.Context) (string, error) {
	if !s.IsRepo(ctx) {
		return "", domainErrors.ErrNotInGitRepo
	}

	out, err := s.git(ctx, "log", "-1", "--pretty=%B")
	if err != nil {
		return "", withStderr(domainErrors.ErrGetLastCommit.WithError(err), err)
	}
	return out.Stdout, nil
}

// PushBranch pushes branch to origin and sets it as upstream. A remote that
// is already up to date is a success even when git exits non-zero.
func (s *GitService) PushBranch(ctx context.Context, branch string) (PushResult, error) {
	out, err := s.git(ctx, "push", "--set-upstream", "origin", branch)
	upToDate := regex.EverythingUpToDate.MatchString(out.Stdout) ||
		regex.EverythingUpToDate.MatchString(out.Stderr)

	if err != nil && !upToDate {
		appErr := domainErrors.ErrPush.WithError(err).WithContext("branch", branch)
		return PushResult{}, withStderr(appErr, err)
	}
	return PushResult{UpToDate: upToDate}, nil
}

// GetRepoInfo parses the origin remote URL.
func (s *GitService) GetRepoInfo(ctx context.Context) (RepoInfo, error) {
	out, err := s.git(ctx, "remote", "get-url", "origin")
	if err != nil {
		return RepoInfo{}, withStderr(domainErrors.ErrGetRepoURL.WithError(err), err)
	}
	return parseRepoURL(out.Stdout)
}

func parseRepoURL(url string) (RepoInfo, error) {
	var matches []string
	if regex.SSHRepo.MatchString(url) {
		matches = regex.SSHRepo.FindStringSubmatch(url)
	} else if regex.HTTPSRepo.MatchString(url) {
		matches = regex.HTTPSRepo.FindStringSubmatch(url)
	}

	if len(matches) >= 4 {
		return RepoInfo{
			Host:     matches[1],
			Owner:    matches[2],
			Repo:     strings.TrimSuffix(matches[3], ".git"),
			Provider: detectProvider(matches[1]),
		}, nil
	}

	return RepoInfo{}, domainErrors.ErrExtractRepoInfo.WithContext("url", url)
}

func detectProvider(host string) string {
	if strings.Contains(host, "github") {
		return "github"
	}
	if strings.Contains(host, "gitlab") {
		return "gitlab"
	}
	return "unknown"
}

func withStderr(appErr *domainErrors.AppError, err error) *domainErrors.AppError {
	var exitErr *shell.ExitError
	if errors.As(err, &exitErr) && exitErr.Stderr != "" {
		return appErr.WithContext("stderr", exitErr.Stderr)
	}
	return appErr
}
