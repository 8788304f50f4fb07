package auth

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/thomas-vilte/jh/internal/credentials"
	"github.com/thomas-vilte/jh/internal/services"
	"github.com/thomas-vilte/jh/internal/vcs"
)

const defaultServer = "https://yourcompany.atlassian.net"

// AuthService is what the credential commands need from services.AuthService.
type AuthService interface {
	Login(ctx context.Context, server, email, token string) (credentials.Credentials, error)
	UpdateToken(ctx context.Context, token string) (credentials.Credentials, error)
	StoredCredentials(ctx context.Context) (credentials.Credentials, error)
	Logout(ctx context.Context) error
	Status(ctx context.Context) (services.AuthStatus, error)
}

// AskOneFunc matches survey.AskOne so prompts can be replaced in tests.
type AskOneFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// HostProvider returns the configured pull request host.
type HostProvider func(ctx context.Context) (vcs.PullRequestHost, error)

// RepoInspector is the git side of the status report.
type RepoInspector interface {
	IsRepo(ctx context.Context) bool
	GetCurrentBranch(ctx context.Context) (string, error)
}

func askInput(ask AskOneFunc, message, defaultValue string) (string, error) {
	var answer string
	err := ask(&survey.Input{Message: message, Default: defaultValue}, &answer, survey.WithValidator(survey.Required))
	return answer, err
}

func askPassword(ask AskOneFunc, message string) (string, error) {
	var answer string
	err := ask(&survey.Password{Message: message}, &answer, survey.WithValidator(survey.Required))
	return answer, err
}
