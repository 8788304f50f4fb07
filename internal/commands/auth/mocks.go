package auth

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/jh/internal/credentials"
	"github.com/thomas-vilte/jh/internal/services"
)

type (
	MockAuthService struct {
		mock.Mock
	}

	MockRepoInspector struct {
		mock.Mock
	}
)

func (m *MockAuthService) Login(ctx context.Context, server, email, token string) (credentials.Credentials, error) {
	args := m.Called(ctx, server, email, token)
	return args.Get(0).(credentials.Credentials), args.Error(1)
}

func (m *MockAuthService) UpdateToken(ctx context.Context, token string) (credentials.Credentials, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(credentials.Credentials), args.Error(1)
}

func (m *MockAuthService) StoredCredentials(ctx context.Context) (credentials.Credentials, error) {
	args := m.Called(ctx)
	return args.Get(0).(credentials.Credentials), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAuthService) Status(ctx context.Context) (services.AuthStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(services.AuthStatus), args.Error(1)
}

func (m *MockRepoInspector) IsRepo(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockRepoInspector) GetCurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
