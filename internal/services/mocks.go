package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/jh/internal/git"
	"github.com/thomas-vilte/jh/internal/jira"
	"github.com/thomas-vilte/jh/internal/models"
)

type (
	MockGitService struct {
		mock.Mock
	}

	MockPRHost struct {
		mock.Mock
	}

	MockJiraClient struct {
		mock.Mock
	}
)

func (m *MockGitService) IsRepo(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockGitService) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) GetLastCommitMessage(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGitService) PushBranch(ctx context.Context, branch string) (git.PushResult, error) {
	args := m.Called(ctx, branch)
	return args.Get(0).(git.PushResult), args.Error(1)
}

func (m *MockPRHost) Name() string {
	return m.Called().String(0)
}

func (m *MockPRHost) Installed(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockPRHost) Authenticated(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockPRHost) FindPRForBranch(ctx context.Context, branch string) (*models.PullRequest, error) {
	args := m.Called(ctx, branch)
	pr, _ := args.Get(0).(*models.PullRequest)
	return pr, args.Error(1)
}

func (m *MockPRHost) CreatePR(ctx context.Context, req models.PRRequest) (*models.PullRequest, error) {
	args := m.Called(ctx, req)
	pr, _ := args.Get(0).(*models.PullRequest)
	return pr, args.Error(1)
}

func (m *MockJiraClient) GetIssue(ctx context.Context, key string) (*jira.Issue, error) {
	args := m.Called(ctx, key)
	issue, _ := args.Get(0).(*jira.Issue)
	return issue, args.Error(1)
}

func (m *MockJiraClient) Myself(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockJiraClient) BaseURL() string {
	return m.Called().String(0)
}
