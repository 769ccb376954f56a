package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
	"hallpoint/internal/pkg/token"
)

// SessionService define o contrato que o Handler espera da camada de Serviço.
type SessionService interface {
	Issue(ctx context.Context, req domain.SessionRequest) (string, error)
	Revoke(ctx context.Context, raw string) error
}

// Handler agrupa os endpoints de sessão (/jwt e /logout).
type Handler struct {
	Service    SessionService
	Logger     logger.Logger
	TTL        time.Duration
	Production bool
}

// NewHandler cria o Handler de sessão. ttl é o Max-Age do cookie.
func NewHandler(svc SessionService, log logger.Logger, ttl time.Duration, production bool) *Handler {
	return &Handler{
		Service:    svc,
		Logger:     log,
		TTL:        ttl,
		Production: production,
	}
}

// IssueTokenHandler lida com a requisição POST /jwt.
// @Summary Emite o cookie de sessão
// @Description Assina um JWT (24h) para o e-mail informado e o entrega num cookie HTTP-only "token".
// @Tags auth
// @Accept json
// @Produce json
// @Param session body domain.SessionRequest true "E-mail do usuário autenticado no provedor de identidade"
// @Success 200 {object} map[string]bool "Cookie emitido"
// @Failure 400 {object} domain.ErrorResponse "E-mail ausente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /jwt [post]
func (h *Handler) IssueTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req domain.SessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Invalid JSON payload"))
		return
	}

	raw, err := h.Service.Issue(r.Context(), req)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	token.SetSessionCookie(w, raw, h.TTL, h.Production)
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

// LogoutHandler lida com a requisição POST /logout.
// @Summary Encerra a sessão
// @Description Limpa o cookie de sessão e, se habilitado, revoga o token até sua expiração.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]bool "Cookie limpo"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /logout [post]
func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Revoke(r.Context(), token.FromRequest(r)); err != nil {
		// O cookie é limpo mesmo assim; o token expira naturalmente.
		h.Logger.Error("Falha ao revogar token no logout.", err)
	}

	token.ClearSessionCookie(w, h.Production)
	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
