package middleware_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"hallpoint/internal/domain"
	"hallpoint/internal/pkg/token"
)

// MockTokenValidator é uma implementação mock da interface TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(tokenString string) (*token.CustomClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.CustomClaims), args.Error(1)
}

// MockRevocations é uma implementação mock da interface RevocationChecker
type MockRevocations struct {
	mock.Mock
}

func (m *MockRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

// MockUserFinder é uma implementação mock da interface UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

// MockCache é uma implementação mock da interface cache.Client
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) IncrWithExpiry(ctx context.Context, key string, expiration time.Duration) (int64, error) {
	args := m.Called(ctx, key, expiration)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCache) Close() error {
	return m.Called().Error(0)
}
