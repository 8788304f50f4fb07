package errors

import (
	"errors"
	"fmt"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeValidation    ErrorType = "VALIDATION"
	TypeAuth          ErrorType = "AUTH"
	TypeGit           ErrorType = "GIT"
	TypeVCS           ErrorType = "VCS"
	TypeJira          ErrorType = "JIRA"
	TypeNotFound      ErrorType = "NOT_FOUND"
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	var msg string
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	} else {
		msg = fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	if e.Context != nil {
		if stderr, ok := e.Context["stderr"].(string); ok && stderr != "" {
			msg += fmt.Sprintf(" - %s", stderr)
		}
	}

	return msg
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches another AppError with the same type and message, so a sentinel
// still matches after WithError/WithContext produced a copy of it.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// IsType reports whether err wraps an AppError of the given type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == t
	}
	return false
}

// Validation errors
var (
	ErrInvalidTicketKey = NewAppError(TypeValidation, "Invalid ticket ID", nil).
				WithSuggestion("Ticket IDs must match the pattern PROJ-123 (e.g. CORE-42, AB1-999)")

	ErrInvalidServerURL = NewAppError(TypeValidation, "Invalid Jira server URL", nil).
				WithSuggestion("Use the full URL of your site, e.g. https://yourcompany.atlassian.net")

	ErrMissingCredential = NewAppError(TypeValidation, "Email and API token are required", nil).
				WithSuggestion("Create an API token at: https://id.atlassian.com/manage-profile/security/api-tokens")
)

// Not found errors
var (
	ErrTicketNotInBranch = NewAppError(TypeNotFound, "Could not extract Jira ticket ID from branch", nil).
				WithSuggestion("Branch name should contain a ticket ID like 'PROJ-123':\n   git checkout -b PROJ-123-short-description")

	ErrIssueNotFound = NewAppError(TypeNotFound, "Jira issue not found", nil).
				WithSuggestion("Check the ticket ID and that your account can browse the project")
)

// Authentication errors
var (
	ErrJiraNotAuthenticated = NewAppError(TypeAuth, "Not authenticated with Jira", nil).
				WithSuggestion("Run: jh login")

	ErrJiraUnauthorized = NewAppError(TypeAuth, "Jira rejected the stored credentials", nil).
				WithSuggestion("Run: jh login or jh update-token")

	ErrJiraNoStoredCredentials = NewAppError(TypeAuth, "No existing credentials found", nil).
					WithSuggestion("Run: jh login")

	ErrGHNotAuthenticated = NewAppError(TypeAuth, "GitHub CLI is not authenticated", nil).
				WithSuggestion("Run: gh auth login")

	ErrGitHubTokenMissing = NewAppError(TypeAuth, "No GitHub token available", nil).
				WithSuggestion("Set GITHUB_TOKEN, run: jh config set github_token <token>\n   or authenticate the GitHub CLI: gh auth login")

	ErrGitHubTokenInvalid = NewAppError(TypeAuth, "GitHub token is invalid or expired", nil).
				WithSuggestion("Generate a new token at: https://github.com/settings/tokens")
)

// Jira errors
var (
	ErrJiraRequest = NewAppError(TypeJira, "Jira request failed", nil).
			WithSuggestion("Check your network connection and the Jira server URL: jh status")

	ErrJiraDecode = NewAppError(TypeJira, "Unexpected response from Jira", nil)

	ErrFetchIssue = NewAppError(TypeJira, "Failed to fetch Jira issue", nil)
)

// Git errors
var (
	ErrNotInGitRepo = NewAppError(TypeGit, "Not in a git repository", nil).
			WithSuggestion("Run jh from inside a git repository")

	ErrGetBranch = NewAppError(TypeGit, "Failed to get current branch", nil).
			WithSuggestion("Make sure you are in a git repository: git status")

	ErrDetachedHead = NewAppError(TypeGit, "Not on a branch (detached HEAD state)", nil).
			WithSuggestion("Create a branch first: git checkout -b <branch-name>")

	ErrGetLastCommit = NewAppError(TypeGit, "Failed to get last commit message", nil)

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)

	ErrPush = NewAppError(TypeGit, "Failed to push to remote", nil).
		WithSuggestion("Verify remote is configured: git remote -v")
)

// VCS errors
var (
	ErrGHNotInstalled = NewAppError(TypeVCS, "GitHub CLI (gh) is not installed", nil).
				WithSuggestion("Install it from: https://cli.github.com/")

	ErrCommandFailed = NewAppError(TypeVCS, "Command failed", nil)

	ErrListPullRequests = NewAppError(TypeVCS, "Failed to look up pull requests for branch", nil)

	ErrCreatePullRequest = NewAppError(TypeVCS, "Failed to create pull request", nil).
				WithSuggestion("Check that the branch is pushed and the base branch exists")

	ErrVCSNotSupported = NewAppError(TypeVCS, "Pull request provider not supported", nil).
				WithSuggestion("Supported providers: gh, github")
)

// Configuration errors
var (
	ErrConfigInvalid = NewAppError(TypeConfiguration, "Configuration is invalid", nil).
				WithSuggestion("Review the file with: jh config show")

	ErrConfigUnknownKey = NewAppError(TypeConfiguration, "Unknown configuration key", nil).
				WithSuggestion("Valid keys: language, pr_provider, default_base, push, keyring_service, github_token")
)

// Credential store errors
var (
	ErrCredentialStore = NewAppError(TypeInternal, "Credential store operation failed", nil).
		WithSuggestion("Make sure an OS keyring (Keychain, Secret Service, Credential Manager) is available")
)
