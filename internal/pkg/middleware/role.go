package middleware

import (
	"context"
	"errors"
	"net/http"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
)

// UserFinder é o subconjunto do diretório de usuários usado pelo RoleGate.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

// RoleGate autoriza rotas pelo papel ATUAL do usuário, relido do diretório a cada requisição.
// O papel embutido no token nunca é usado, então promoções e rebaixamentos valem na hora.
type RoleGate struct {
	users  UserFinder
	logger logger.Logger
}

// NewRoleGate cria o RoleGate sobre o diretório de usuários.
func NewRoleGate(users UserFinder, log logger.Logger) *RoleGate {
	return &RoleGate{users: users, logger: log}
}

// Require deve ser montado depois do Access Guard. Ao liberar, troca o papel das claims
// no contexto pelo papel atual do diretório.
func (g *RoleGate) Require(allowed ...domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetUserClaimsFromContext(r.Context())
			if !ok || claims.Email == "" {
				response.Error(w, r, g.logger, apperror.NewUnauthorizedError("Unauthorized: Missing email in token"))
				return
			}

			user, err := g.users.FindByEmail(r.Context(), claims.Email)
			if err != nil {
				var notFound *apperror.NotFoundError
				if errors.As(err, &notFound) {
					response.Error(w, r, g.logger, apperror.NewNotFoundError("User not found"))
					return
				}
				response.Error(w, r, g.logger, err)
				return
			}

			for _, role := range allowed {
				if user.Role == role {
					claims.Role = user.Role
					ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			g.logger.Warn("Acesso negado pelo papel atual.", map[string]interface{}{
				"email": claims.Email,
				"role":  user.Role,
				"path":  r.URL.Path,
			})
			response.Error(w, r, g.logger, apperror.NewForbiddenError("Access Denied: Role restricted"))
		})
	}
}

// GetCaller monta o domain.Caller a partir das claims do contexto.
// Só reflete o papel atual em rotas protegidas pelo RoleGate.
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	claims, ok := GetUserClaimsFromContext(ctx)
	if !ok {
		return domain.Caller{}, false
	}
	return domain.Caller{Email: claims.Email, Role: claims.Role}, true
}
