package factory

import (
	"context"

	"github.com/thomas-vilte/jh/internal/config"
	"github.com/thomas-vilte/jh/internal/credentials"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/git"
	"github.com/thomas-vilte/jh/internal/logger"
	"github.com/thomas-vilte/jh/internal/services"
	"github.com/thomas-vilte/jh/internal/shell"
	"github.com/thomas-vilte/jh/internal/vcs"
	"github.com/thomas-vilte/jh/internal/vcs/ghcli"
	"github.com/thomas-vilte/jh/internal/vcs/github"
)

type repoInfoProvider interface {
	IsRepo(ctx context.Context) bool
	GetRepoInfo(ctx context.Context) (git.RepoInfo, error)
}

// PRServiceFactory wires the services of a run from the configuration.
type PRServiceFactory struct {
	config *config.Config
	store  credentials.Store
	git    *git.GitService
	runner shell.Runner
}

func NewPRServiceFactory(cfg *config.Config, store credentials.Store, gitService *git.GitService, runner shell.Runner) *PRServiceFactory {
	return &PRServiceFactory{
		config: cfg,
		store:  store,
		git:    gitService,
		runner: runner,
	}
}

// CreatePRService builds a PRService talking to the configured provider.
func (f *PRServiceFactory) CreatePRService(ctx context.Context) (*services.PRService, error) {
	host, err := f.CreateHost(ctx)
	if err != nil {
		return nil, err
	}

	return services.NewPRService(
		services.WithPRGitService(f.git),
		services.WithPRHost(host),
		services.WithPRCredentialStore(f.store),
	), nil
}

// CreateAuthService builds the service behind login, logout and status.
func (f *PRServiceFactory) CreateAuthService() *services.AuthService {
	return services.NewAuthService(f.store, nil)
}

// CreateHost returns the pull request host named by pr_provider.
func (f *PRServiceFactory) CreateHost(ctx context.Context) (vcs.PullRequestHost, error) {
	return NewHost(ctx, f.config, f.git, f.runner)
}

// NewHost builds the pull request host for cfg.PRProvider. The github
// provider needs the owner and repository of origin and a token.
func NewHost(ctx context.Context, cfg *config.Config, repo repoInfoProvider, runner shell.Runner) (vcs.PullRequestHost, error) {
	switch cfg.PRProvider {
	case config.ProviderGH, "":
		return ghcli.NewClient(runner), nil
	case config.ProviderGitHub:
		if !repo.IsRepo(ctx) {
			return nil, domainErrors.ErrNotInGitRepo
		}
		info, err := repo.GetRepoInfo(ctx)
		if err != nil {
			return nil, err
		}
		token, err := github.ResolveToken(ctx, cfg.GitHubToken, runner)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "using github api provider", "owner", info.Owner, "repo", info.Repo)
		return github.NewGitHubClient(info.Owner, info.Repo, token), nil
	default:
		return nil, domainErrors.ErrVCSNotSupported.WithContext("provider", cfg.PRProvider)
	}
}
