package token_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"hallpoint/internal/pkg/token"
)

// MockCache é uma implementação mock da interface cache.Client
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
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

func TestRevocationStore_Revoke(t *testing.T) {
	mockCache := new(MockCache)
	store := token.NewRevocationStore(mockCache)

	mockCache.On("Set", mock.Anything, "revoked-token:jti-1", 1, time.Hour).Return(nil)

	err := store.Revoke(context.Background(), "jti-1", time.Hour)
	assert.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestRevocationStore_Revoke_SkipsExpired(t *testing.T) {
	mockCache := new(MockCache)
	store := token.NewRevocationStore(mockCache)

	assert.NoError(t, store.Revoke(context.Background(), "jti-1", -time.Minute))
	assert.NoError(t, store.Revoke(context.Background(), "", time.Hour))
	mockCache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRevocationStore_IsRevoked(t *testing.T) {
	mockCache := new(MockCache)
	store := token.NewRevocationStore(mockCache)

	mockCache.On("Exists", mock.Anything, "revoked-token:jti-1").Return(true, nil)
	mockCache.On("Exists", mock.Anything, "revoked-token:jti-2").Return(false, nil)
	mockCache.On("Exists", mock.Anything, "revoked-token:jti-3").Return(false, errors.New("redis indisponível"))

	revoked, err := store.IsRevoked(context.Background(), "jti-1")
	assert.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(context.Background(), "jti-2")
	assert.NoError(t, err)
	assert.False(t, revoked)

	_, err = store.IsRevoked(context.Background(), "jti-3")
	assert.Error(t, err)
	mockCache.AssertExpectations(t)
}
