// Package service provides test doubles for the domain service interfaces.
package service

import (
	"context"
	"testing"
	"time"

	"member/internal/domain/entity"
	"member/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a new mock wired to the test lifecycle.
func NewMockPasswordHasher(t *testing.T) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

// MockTokenCodec is a mock implementation of service.TokenCodec.
type MockTokenCodec struct {
	mock.Mock
}

// NewMockTokenCodec creates a new mock wired to the test lifecycle.
func NewMockTokenCodec(t *testing.T) *MockTokenCodec {
	m := &MockTokenCodec{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenCodec) Issue(subject string, roles []string, kind entity.TokenKind) (string, error) {
	args := m.Called(subject, roles, kind)

	return args.String(0), args.Error(1)
}

func (m *MockTokenCodec) Decode(token string) (*service.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockTokenCodec) RemainingTTL(token string) (time.Duration, error) {
	args := m.Called(token)

	return args.Get(0).(time.Duration), args.Error(1)
}

// MockRevocationStore is a mock implementation of service.RevocationStore.
type MockRevocationStore struct {
	mock.Mock
}

// NewMockRevocationStore creates a new mock wired to the test lifecycle.
func NewMockRevocationStore(t *testing.T) *MockRevocationStore {
	m := &MockRevocationStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRevocationStore) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)

	return args.Error(0)
}

func (m *MockRevocationStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)

	return args.String(0), args.Error(1)
}

func (m *MockRevocationStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)

	return args.Error(0)
}

// MockMailSender is a mock implementation of service.MailSender.
type MockMailSender struct {
	mock.Mock
}

// NewMockMailSender creates a new mock wired to the test lifecycle.
func NewMockMailSender(t *testing.T) *MockMailSender {
	m := &MockMailSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMailSender) Send(ctx context.Context, to string, subject string, body string) error {
	args := m.Called(ctx, to, subject, body)

	return args.Error(0)
}
