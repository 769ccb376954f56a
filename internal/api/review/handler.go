package review

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/middleware"
	"hallpoint/internal/pkg/response"
)

// ReviewService define o contrato que o Handler espera da camada de Serviço.
type ReviewService interface {
	Add(ctx context.Context, caller domain.Caller, mealID string, sub domain.ReviewSubmission) (domain.Review, error)
	ListAll(ctx context.Context, page, limit int) (domain.ReviewPage, error)
	ListByUser(ctx context.Context, caller domain.Caller, email string, page, limit int) (domain.ReviewPage, error)
	ListByMeal(ctx context.Context, mealID string) ([]domain.Review, error)
	Update(ctx context.Context, caller domain.Caller, id string, patch domain.ReviewPatch) (domain.Review, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

// Handler agrupa os endpoints de avaliações.
type Handler struct {
	Service ReviewService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReviewService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// AddHandler lida com a requisição POST /meals/{id}/reviews.
// @Summary Avalia uma refeição publicada
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "ID da refeição"
// @Param review body domain.ReviewSubmission true "Nome, e-mail, comentário e nota (1-5)"
// @Success 201 {object} domain.Review
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes ou nota fora de 1-5"
// @Failure 403 {object} domain.ErrorResponse "E-mail diferente do token"
// @Failure 404 {object} domain.ErrorResponse "Refeição não encontrada"
// @Router /meals/{id}/reviews [post]
func (h *Handler) AddHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}

	var sub domain.ReviewSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Missing review fields"))
		return
	}

	saved, err := h.Service.Add(r.Context(), caller, chi.URLParam(r, "id"), sub)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, saved)
}

// ListByMealHandler lida com a requisição GET /meals/{id}/reviews.
// @Summary Lista as avaliações de uma refeição
// @Tags reviews
// @Produce json
// @Param id path string true "ID da refeição"
// @Success 200 {array} domain.Review
// @Router /meals/{id}/reviews [get]
func (h *Handler) ListByMealHandler(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Service.ListByMeal(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, reviews)
}

// ListAllHandler lida com a requisição GET /reviews.
// @Summary Lista todas as avaliações (admin)
// @Tags reviews
// @Produce json
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.ReviewPage
// @Failure 403 {object} domain.ErrorResponse
// @Router /reviews [get]
func (h *Handler) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.Service.ListAll(r.Context(), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// ListMineHandler lida com a requisição GET /reviews/user.
// @Summary Lista as avaliações do usuário logado
// @Tags reviews
// @Produce json
// @Param email query string false "E-mail (padrão: o do token)"
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.ReviewPage
// @Failure 403 {object} domain.ErrorResponse "E-mail de outro usuário"
// @Router /reviews/user [get]
func (h *Handler) ListMineHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}
	page, limit := pageParams(r)

	result, err := h.Service.ListByUser(r.Context(), caller, r.URL.Query().Get("email"), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// UpdateHandler lida com a requisição PATCH /reviews/{id}.
// @Summary Edita comentário/nota de uma avaliação (dono ou admin)
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path string true "ID da avaliação"
// @Param review body domain.ReviewPatch true "Campos a alterar"
// @Success 200 {object} map[string]string "{message}"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /reviews/{id} [patch]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}

	var patch domain.ReviewPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("No fields to update"))
		return
	}

	if _, err := h.Service.Update(r.Context(), caller, chi.URLParam(r, "id"), patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Review updated successfully."})
}

// DeleteHandler lida com a requisição DELETE /reviews/{id}.
// @Summary Remove uma avaliação (dono ou admin)
// @Tags reviews
// @Produce json
// @Param id path string true "ID da avaliação"
// @Success 200 {object} map[string]interface{} "{success, message}"
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /reviews/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}

	if err := h.Service.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Review deleted and meal review count updated",
	})
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
