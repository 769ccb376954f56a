package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
	"hallpoint/internal/pkg/token"
)

// ContextKey é o tipo das chaves de contexto deste pacote (não exportável por valor string).
type ContextKey int

const (
	UserClaimsKey ContextKey = iota
)

// UserClaims são os dados do token anexados ao contexto pelo Access Guard.
// Role é apenas informativo: o RoleGate sempre relê o papel no diretório.
type UserClaims struct {
	Email string
	Role  domain.UserRole
	JTI   string
}

// TokenValidator define o contrato de validação necessário para o middleware.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.CustomClaims, error)
}

// RevocationChecker consulta o conjunto de tokens revogados via /logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// NewAuthMiddleware cria o Access Guard: lê o cookie de sessão, valida o JWT e anexa
// as claims ao contexto. revocations pode ser nil (revogação desabilitada).
func NewAuthMiddleware(tokenSvc TokenValidator, revocations RevocationChecker, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extrair o token do cookie HTTP-only
			raw := token.FromRequest(r)
			if raw == "" {
				response.Error(w, r, log, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
				return
			}

			// 2. Validar o token (falhas inesperadas viram 500)
			claims, err := verify(r.Context(), tokenSvc, revocations, raw)
			if err != nil {
				response.Error(w, r, log, err)
				return
			}

			// 3. Anexar claims ao contexto
			userClaims := UserClaims{
				Email: claims.Email,
				Role:  domain.UserRole(claims.Role),
				JTI:   claims.ID,
			}
			ctx := context.WithValue(r.Context(), UserClaimsKey, userClaims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verify(ctx context.Context, tokenSvc TokenValidator, revocations RevocationChecker, raw string) (claims *token.CustomClaims, err error) {
	defer func() {
		if p := recover(); p != nil {
			claims = nil
			err = apperror.NewInternalError("Internal Server Error", fmt.Errorf("pânico na verificação do token: %v", p))
		}
	}()

	claims, err = tokenSvc.ValidateToken(raw)
	if err != nil {
		if errors.Is(err, token.ErrInvalidToken) {
			return nil, apperror.NewForbiddenError("Forbidden: Invalid token")
		}
		return nil, apperror.NewInternalError("Internal Server Error", err)
	}

	if revocations != nil {
		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, apperror.NewInternalError("Internal Server Error", err)
		}
		if revoked {
			return nil, apperror.NewForbiddenError("Forbidden: Invalid token")
		}
	}

	return claims, nil
}

// GetUserClaimsFromContext é uma função utilitária para extrair as claims no handler.
func GetUserClaimsFromContext(ctx context.Context) (UserClaims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(UserClaims)
	return claims, ok
}
