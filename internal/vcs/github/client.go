package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/shell"
	"github.com/thomas-vilte/jh/internal/vcs"
	"golang.org/x/oauth2"
)

const ProviderName = "github"

var _ vcs.PullRequestHost = (*GitHubClient)(nil)

type PullRequestsService interface {
	List(ctx context.Context, owner, repo string, opts *github.PullRequestListOptions) ([]*github.PullRequest, *github.Response, error)
	Create(ctx context.Context, owner, repo string, pull *github.NewPullRequest) (*github.PullRequest, *github.Response, error)
}

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
}

type UsersService interface {
	Get(ctx context.Context, user string) (*github.User, *github.Response, error)
}

// GitHubClient opens pull requests through the GitHub REST API.
type GitHubClient struct {
	prService    PullRequestsService
	repoService  RepositoriesService
	usersService UsersService
	owner        string
	repo         string
	token        string
}

func NewGitHubClient(owner, repo, token string) *GitHubClient {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &GitHubClient{
		prService:    client.PullRequests,
		repoService:  client.Repositories,
		usersService: client.Users,
		owner:        owner,
		repo:         repo,
		token:        token,
	}
}

func NewGitHubClientWithServices(
	prService PullRequestsService,
	repoService RepositoriesService,
	usersService UsersService,
	owner string,
	repo string,
	token string,
) *GitHubClient {
	return &GitHubClient{
		prService:    prService,
		repoService:  repoService,
		usersService: usersService,
		owner:        owner,
		repo:         repo,
		token:        token,
	}
}

func (ghc *GitHubClient) Name() string {
	return ProviderName
}

// Installed is always true: the API needs no local tooling.
func (ghc *GitHubClient) Installed(_ context.Context) bool {
	return true
}

func (ghc *GitHubClient) Authenticated(ctx context.Context) bool {
	if ghc.token == "" {
		return false
	}
	_, err := ghc.GetAuthenticatedUser(ctx)
	if err != nil {
		logger.Debug(ctx, "github authentication check failed", "error", err)
		return false
	}
	return true
}

func (ghc *GitHubClient) GetAuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := ghc.usersService.Get(ctx, "")
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return "", domainErrors.ErrGitHubTokenInvalid.
				WithContext("operation", "get authenticated user")
		}
		return "", fmt.Errorf("error obtaining authenticated user: %w", err)
	}

	if user.Login == nil {
		return "", errors.New("authenticated user has no login")
	}

	return user.GetLogin(), nil
}

func (ghc *GitHubClient) FindPRForBranch(ctx context.Context, branch string) (*models.PullRequest, error) {
	log := logger.FromContext(ctx)
	log.Debug("looking up github pull request for branch",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"branch", branch)

	opts := &github.PullRequestListOptions{
		State:       "open",
		Head:        ghc.owner + ":" + branch,
		ListOptions: github.ListOptions{PerPage: 1},
	}

	prs, resp, err := ghc.prService.List(ctx, ghc.owner, ghc.repo, opts)
	if err != nil {
		return nil, ghc.apiError(domainErrors.ErrListPullRequests, resp, err).
			WithContext("branch", branch)
	}

	if len(prs) == 0 {
		return nil, nil
	}
	return toPullRequest(prs[0]), nil
}

func (ghc *GitHubClient) CreatePR(ctx context.Context, req models.PRRequest) (*models.PullRequest, error) {
	log := logger.FromContext(ctx)

	base := req.Base
	if base == "" {
		defaultBranch, err := ghc.defaultBranch(ctx)
		if err != nil {
			return nil, err
		}
		base = defaultBranch
	}

	log.Debug("creating github pull request",
		"owner", ghc.owner,
		"repo", ghc.repo,
		"head", req.Head,
		"base", base)

	created, resp, err := ghc.prService.Create(ctx, ghc.owner, ghc.repo, &github.NewPullRequest{
		Title: github.Ptr(req.Title),
		Head:  github.Ptr(req.Head),
		Base:  github.Ptr(base),
		Body:  github.Ptr(req.Body),
	})
	if err != nil {
		appErr := ghc.apiError(domainErrors.ErrCreatePullRequest, resp, err).
			WithContext("head", req.Head).
			WithContext("base", base)
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) && len(ghErr.Errors) > 0 {
			appErr = appErr.WithContext("stderr", validationMessages(ghErr))
		}
		return nil, appErr
	}

	pr := toPullRequest(created)
	log.Info("pull request created", "number", pr.Number, "url", pr.URL)
	return pr, nil
}

func (ghc *GitHubClient) defaultBranch(ctx context.Context) (string, error) {
	repository, resp, err := ghc.repoService.Get(ctx, ghc.owner, ghc.repo)
	if err != nil {
		return "", ghc.apiError(domainErrors.ErrCreatePullRequest, resp, err).
			WithContext("operation", "get default branch")
	}
	if repository.GetDefaultBranch() == "" {
		return "", domainErrors.ErrCreatePullRequest.
			WithError(errors.New("repository has no default branch")).
			WithContext("repo", ghc.owner+"/"+ghc.repo)
	}
	return repository.GetDefaultBranch(), nil
}

func (ghc *GitHubClient) apiError(base *domainErrors.AppError, resp *github.Response, err error) *domainErrors.AppError {
	if resp != nil && resp.StatusCode == http.StatusUnauthorized {
		return domainErrors.ErrGitHubTokenInvalid.WithError(err)
	}
	return base.WithError(err).WithContext("repo", ghc.owner+"/"+ghc.repo)
}

func validationMessages(ghErr *github.ErrorResponse) string {
	msgs := make([]string, 0, len(ghErr.Errors))
	for _, e := range ghErr.Errors {
		if e.Message != "" {
			msgs = append(msgs, e.Message)
		} else {
			msgs = append(msgs, fmt.Sprintf("%s %s %s", e.Resource, e.Field, e.Code))
		}
	}
	return strings.Join(msgs, "; ")
}

func toPullRequest(pr *github.PullRequest) *models.PullRequest {
	return &models.PullRequest{
		Number: pr.GetNumber(),
		URL:    pr.GetHTMLURL(),
		Title:  pr.GetTitle(),
	}
}

// ResolveToken finds a GitHub token: the configured one, then GITHUB_TOKEN,
// then the token of an authenticated gh CLI.
func ResolveToken(ctx context.Context, configured string, runner shell.Runner) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if token := strings.TrimSpace(os.Getenv("GITHUB_TOKEN")); token != "" {
		return token, nil
	}
	if runner != nil {
		if _, err := runner.LookPath("gh"); err == nil {
			out, err := runner.Run(ctx, "", "gh", "auth", "token")
			if err == nil && out.Stdout != "" {
				return out.Stdout, nil
			}
			logger.Debug(ctx, "gh auth token unavailable", "error", err)
		}
	}
	return "", domainErrors.ErrGitHubTokenMissing
}
