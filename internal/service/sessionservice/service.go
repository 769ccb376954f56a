package sessionservice

import (
	"context"
	"errors"
	"strings"
	"time"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/token"
)

// TokenService é o contrato da camada de token (internal/pkg/token).
type TokenService interface {
	GenerateToken(claims domain.SessionClaims) (string, error)
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// Revoker guarda o jti de tokens encerrados até a expiração natural.
type Revoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
}

// UserFinder é usado apenas para embutir o papel atual no token emitido.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// Service emite e encerra sessões (cookie com JWT).
type Service struct {
	tokens  TokenService
	users   UserFinder
	revoker Revoker // nil quando TOKEN_REVOCATION_ENABLED=false
	logger  logger.Logger
}

// NewService cria o serviço de sessão. revoker pode ser nil.
func NewService(tokens TokenService, users UserFinder, revoker Revoker, log logger.Logger) *Service {
	return &Service{
		tokens:  tokens,
		users:   users,
		revoker: revoker,
		logger:  log,
	}
}

// Issue assina um token para o e-mail informado. O papel vem do diretório
// ("user" se o e-mail ainda não foi registrado).
func (s *Service) Issue(ctx context.Context, req domain.SessionRequest) (string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return "", apperror.NewValidationError("User email is required")
	}

	role := domain.RoleUser
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if !errors.As(err, &notFound) {
			return "", err
		}
	} else if user.Role.IsValid() {
		role = user.Role
	}

	raw, err := s.tokens.GenerateToken(domain.SessionClaims{Email: email, Role: role})
	if err != nil {
		return "", apperror.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("Sessão emitida.", map[string]interface{}{"email": email, "role": role})
	return raw, nil
}

// Revoke encerra a sessão do token informado. Tokens ausentes, inválidos ou já expirados
// não têm o que revogar; o logout segue normalmente.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	if s.revoker == nil || raw == "" {
		return nil
	}

	claims, err := s.tokens.ValidateToken(raw)
	if err != nil {
		s.logger.Debug("Logout com token inválido; nada a revogar.", nil)
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return apperror.NewInternalError("Internal Server Error", err)
	}

	s.logger.Info("Sessão revogada.", map[string]interface{}{"email": claims.Email, "jti": claims.ID})
	return nil
}
