// Package usecase provides test doubles for the usecase interfaces.
package usecase

import (
	"context"
	"testing"

	"member/internal/domain/service"
	"member/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockSessionUsecase is a mock implementation of usecase.SessionUsecase.
type MockSessionUsecase struct {
	mock.Mock
}

// NewMockSessionUsecase creates a new mock wired to the test lifecycle.
func NewMockSessionUsecase(t *testing.T) *MockSessionUsecase {
	m := &MockSessionUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *MockSessionUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *MockSessionUsecase) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RefreshOutput), args.Error(1)
}

func (m *MockSessionUsecase) Logout(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)

	return args.Error(0)
}

func (m *MockSessionUsecase) ValidateAccess(ctx context.Context, accessToken string) (*service.Claims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}
