package pr

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/jh/internal/models"
	"github.com/thomas-vilte/jh/internal/services"
)

type MockPRService struct {
	mock.Mock
}

func (m *MockPRService) CreatePR(ctx context.Context, opts services.PROptions, progress func(models.ProgressEvent)) (*models.PRResult, error) {
	args := m.Called(ctx, opts, progress)
	result, _ := args.Get(0).(*models.PRResult)
	return result, args.Error(1)
}
