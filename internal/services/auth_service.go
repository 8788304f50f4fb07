package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/thomas-vilte/jh/internal/credentials"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/logger"
)

// AuthService manages the stored Jira credentials.
type AuthService struct {
	store       credentials.Store
	jiraFactory JiraClientFactory
}

// AuthStatus describes the stored credentials and whether Jira accepts them.
type AuthStatus struct {
	Credentials credentials.Credentials
	Stored      bool
	Verified    bool
	// VerifyErr is why verification failed, when it was attempted.
	VerifyErr error
}

func NewAuthService(store credentials.Store, factory JiraClientFactory) *AuthService {
	if factory == nil {
		factory = NewJiraClient
	}
	return &AuthService{store: store, jiraFactory: factory}
}

// NormalizeServerURL trims whitespace and trailing slashes and checks that
// the result is an absolute http(s) URL.
func NormalizeServerURL(raw string) (string, error) {
	server := strings.TrimRight(strings.TrimSpace(raw), "/")

	parsed, err := url.Parse(server)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "https" && parsed.Scheme != "http") {
		appErr := domainErrors.ErrInvalidServerURL.WithContext("server", raw)
		if err != nil {
			appErr = appErr.WithError(err)
		}
		return "", appErr
	}
	return server, nil
}

// Login verifies the credentials against Jira and stores them. Nothing is
// stored when verification fails.
func (s *AuthService) Login(ctx context.Context, server, email, token string) (credentials.Credentials, error) {
	normalized, err := NormalizeServerURL(server)
	if err != nil {
		return credentials.Credentials{}, err
	}

	creds := credentials.Credentials{
		Server: normalized,
		Email:  strings.TrimSpace(email),
		Token:  strings.TrimSpace(token),
	}
	if creds.Email == "" || creds.Token == "" {
		return credentials.Credentials{}, domainErrors.ErrMissingCredential
	}

	if err := s.jiraFactory(creds).Myself(ctx); err != nil {
		logger.Warn(ctx, "jira rejected the login", "server", creds.Server, "error", err)
		return credentials.Credentials{}, err
	}

	if err := credentials.Save(s.store, creds); err != nil {
		return credentials.Credentials{}, err
	}

	logger.Info(ctx, "jira credentials stored", "server", creds.Server, "email", creds.Email)
	return creds, nil
}

// UpdateToken replaces the API token after verifying it with the stored
// server and email.
func (s *AuthService) UpdateToken(ctx context.Context, token string) (credentials.Credentials, error) {
	creds, err := credentials.Load(ctx, s.store)
	if err != nil {
		return credentials.Credentials{}, err
	}
	if creds.Server == "" || creds.Email == "" {
		return credentials.Credentials{}, domainErrors.ErrJiraNoStoredCredentials
	}

	creds.Token = strings.TrimSpace(token)
	if creds.Token == "" {
		return credentials.Credentials{}, domainErrors.ErrMissingCredential
	}

	if err := s.jiraFactory(creds).Myself(ctx); err != nil {
		return credentials.Credentials{}, err
	}

	if err := credentials.SaveToken(s.store, creds.Token); err != nil {
		return credentials.Credentials{}, err
	}
	return creds, nil
}

// StoredCredentials returns whatever is stored, complete or not.
func (s *AuthService) StoredCredentials(ctx context.Context) (credentials.Credentials, error) {
	return credentials.Load(ctx, s.store)
}

// Logout deletes the stored credentials. Missing secrets are not an error.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := credentials.Clear(s.store); err != nil {
		return err
	}
	logger.Info(ctx, "jira credentials removed")
	return nil
}

// Status reports the stored credentials and, when complete, verifies them.
func (s *AuthService) Status(ctx context.Context) (AuthStatus, error) {
	creds, err := credentials.Load(ctx, s.store)
	if err != nil {
		return AuthStatus{}, err
	}

	status := AuthStatus{Credentials: creds, Stored: creds.Complete()}
	if !status.Stored {
		return status, nil
	}

	if err := s.jiraFactory(creds).Myself(ctx); err != nil {
		status.VerifyErr = err
		return status, nil
	}
	status.Verified = true
	return status, nil
}
