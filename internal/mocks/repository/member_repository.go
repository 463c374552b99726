// Package repository provides test doubles for the domain repositories.
package repository

import (
	"context"
	"testing"

	"member/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of repository.MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

// NewMockMemberRepository creates a new mock wired to the test lifecycle.
func NewMockMemberRepository(t *testing.T) *MockMemberRepository {
	m := &MockMemberRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*entity.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByPhone(ctx context.Context, phone string) (*entity.Member, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Member), args.Error(1)
}

func (m *MockMemberRepository) Create(ctx context.Context, member *entity.Member) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *entity.Member) error {
	args := m.Called(ctx, member)

	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)

	return args.Error(0)
}
