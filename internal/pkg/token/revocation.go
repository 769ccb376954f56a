package token

import (
	"context"
	"fmt"
	"time"

	"hallpoint/internal/pkg/cache"
)

const revokedKeyPrefix = "revoked-token:"

// RevocationStore mantém no Redis o jti dos tokens encerrados via /logout até a expiração natural.
type RevocationStore struct {
	cache cache.Client
}

// NewRevocationStore cria o conjunto de revogação sobre o cliente de cache.
func NewRevocationStore(c cache.Client) *RevocationStore {
	return &RevocationStore{cache: c}
}

// Revoke registra o jti por ttl. Tokens já expirados (ttl <= 0) são ignorados.
func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	if err := s.cache.Set(ctx, revokedKeyPrefix+jti, 1, ttl); err != nil {
		return fmt.Errorf("falha ao revogar token %s: %w", jti, err)
	}
	return nil
}

// IsRevoked indica se o jti está no conjunto de revogação.
func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	revoked, err := s.cache.Exists(ctx, revokedKeyPrefix+jti)
	if err != nil {
		return false, fmt.Errorf("falha ao consultar revogação do token %s: %w", jti, err)
	}
	return revoked, nil
}
