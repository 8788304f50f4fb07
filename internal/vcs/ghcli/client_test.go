package ghcli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/jh/internal/errors"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/shell"
)

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (shell.Output, error) {
	called := m.Called(name, args)
	return called.Get(0).(shell.Output), called.Error(1)
}

func (m *MockRunner) LookPath(name string) (string, error) {
	called := m.Called(name)
	return called.String(0), called.Error(1)
}

func installed(r *MockRunner) {
	r.On("LookPath", "gh").Return("/usr/bin/gh", nil)
}

func TestClient_Installed(t *testing.T) {
	t.Run("gh on PATH", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		assert.True(t, NewClient(r).Installed(context.Background()))
	})

	t.Run("gh missing", func(t *testing.T) {
		r := new(MockRunner)
		r.On("LookPath", "gh").Return("", errors.New("not found"))
		client := NewClient(r)

		assert.False(t, client.Installed(context.Background()))
		assert.False(t, client.Authenticated(context.Background()))
		r.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
	})
}

func TestClient_Authenticated(t *testing.T) {
	r := new(MockRunner)
	installed(r)
	r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, &shell.ExitError{Code: 1}).Once()

	assert.False(t, NewClient(r).Authenticated(context.Background()))

	r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, nil).Once()
	assert.True(t, NewClient(r).Authenticated(context.Background()))
}

func TestClient_FindPRForBranch(t *testing.T) {
	listArgs := []string{"pr", "list", "--head", "PROJ-1-fix", "--json", "number,url,title", "--limit", "1"}

	t.Run("existing PR", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", listArgs).Return(shell.Output{
			Stdout: `[{"number":42,"url":"https://github.com/acme/app/pull/42","title":"[PROJ-1] - Fix"}]`,
		}, nil)

		pr, err := NewClient(r).FindPRForBranch(context.Background(), "PROJ-1-fix")

		require.NoError(t, err)
		assert.Equal(t, &models.PullRequest{Number: 42, URL: "https://github.com/acme/app/pull/42", Title: "[PROJ-1] - Fix"}, pr)
	})

	for _, stdout := range []string{"", "[]"} {
		t.Run("no PR for output "+stdout, func(t *testing.T) {
			r := new(MockRunner)
			installed(r)
			r.On("Run", "gh", listArgs).Return(shell.Output{Stdout: stdout}, nil)

			pr, err := NewClient(r).FindPRForBranch(context.Background(), "PROJ-1-fix")

			require.NoError(t, err)
			assert.Nil(t, pr)
		})
	}

	t.Run("gh failure", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", listArgs).Return(shell.Output{}, &shell.ExitError{
			Command: "gh pr list", Code: 1, Stderr: "no git remotes found", Err: errors.New("exit status 1"),
		})

		_, err := NewClient(r).FindPRForBranch(context.Background(), "PROJ-1-fix")

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrListPullRequests)
		assert.Contains(t, err.Error(), "no git remotes found")
	})

	t.Run("undecodable output", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", listArgs).Return(shell.Output{Stdout: "not json"}, nil)

		_, err := NewClient(r).FindPRForBranch(context.Background(), "PROJ-1-fix")

		assert.ErrorIs(t, err, domainErrors.ErrListPullRequests)
	})
}

func TestClient_CreatePR(t *testing.T) {
	req := models.PRRequest{Title: "[PROJ-1] - Fix", Body: "## Description\nFix", Base: "main", Head: "PROJ-1-fix"}

	t.Run("creates and reads back the PR", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, nil)
		r.On("Run", "gh", []string{"pr", "create", "--title", req.Title, "--body", req.Body, "--base", "main", "--head", "PROJ-1-fix"}).
			Return(shell.Output{Stdout: "https://github.com/acme/app/pull/7"}, nil).Once()
		r.On("Run", "gh", []string{"pr", "view", "PROJ-1-fix", "--json", "number,url,title"}).
			Return(shell.Output{Stdout: `{"number":7,"url":"https://github.com/acme/app/pull/7","title":"[PROJ-1] - Fix"}`}, nil).Once()

		pr, err := NewClient(r).CreatePR(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 7, pr.Number)
		assert.Equal(t, "https://github.com/acme/app/pull/7", pr.URL)
		r.AssertExpectations(t)
	})

	t.Run("omits --base when empty", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, nil)
		r.On("Run", "gh", []string{"pr", "create", "--title", "t", "--body", "b"}).
			Return(shell.Output{}, nil).Once()
		r.On("Run", "gh", []string{"pr", "view", "--json", "number,url,title"}).
			Return(shell.Output{Stdout: `{"number":8,"url":"u","title":"t"}`}, nil).Once()

		pr, err := NewClient(r).CreatePR(context.Background(), models.PRRequest{Title: "t", Body: "b"})

		require.NoError(t, err)
		assert.Equal(t, 8, pr.Number)
	})

	t.Run("not authenticated", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, &shell.ExitError{Code: 1})

		_, err := NewClient(r).CreatePR(context.Background(), req)

		assert.ErrorIs(t, err, domainErrors.ErrGHNotAuthenticated)
	})

	t.Run("create fails", func(t *testing.T) {
		r := new(MockRunner)
		installed(r)
		r.On("Run", "gh", []string{"auth", "status"}).Return(shell.Output{}, nil)
		r.On("Run", "gh", mock.MatchedBy(func(args []string) bool { return len(args) > 1 && args[1] == "create" })).
			Return(shell.Output{}, &shell.ExitError{Command: "gh pr create", Code: 1, Stderr: "No commits between main and PROJ-1-fix", Err: errors.New("exit status 1")})

		_, err := NewClient(r).CreatePR(context.Background(), req)

		require.Error(t, err)
		assert.ErrorIs(t, err, domainErrors.ErrCreatePullRequest)
		assert.Contains(t, err.Error(), "No commits between")
	})
}
