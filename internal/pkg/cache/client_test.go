package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/pkg/cache"
)

// setupRedis conecta ao Redis de testes; pula quando TEST_REDIS_ADDR não está definido.
func setupRedis(t *testing.T) cache.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR não definido; pulando teste de integração")
	}
	client, err := cache.NewRedisClient(addr, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func TestRedisClient_GetSetDelete(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	key := "test:" + uuid.NewString()

	_, err := client.Get(ctx, key)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, client.Set(ctx, key, "valor", time.Minute))
	val, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "valor", val)

	ok, err := client.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, client.Delete(ctx, key))
	ok, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisClient_IncrWithExpiry(t *testing.T) {
	client := setupRedis(t)
	ctx := context.Background()
	key := "rate-limit:test:" + uuid.NewString()
	t.Cleanup(func() { client.Delete(context.Background(), key) })

	for want := int64(1); want <= 3; want++ {
		count, err := client.IncrWithExpiry(ctx, key, 200*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}

	assert.Eventually(t, func() bool {
		ok, err := client.Exists(ctx, key)
		return err == nil && !ok
	}, 2*time.Second, 50*time.Millisecond, "a janela deveria expirar")
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := cache.NewRedisClient("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
