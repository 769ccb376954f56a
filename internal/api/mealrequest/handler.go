package mealrequest

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

// MealRequestService define o contrato que o Handler espera da camada de Serviço.
type MealRequestService interface {
	Request(ctx context.Context, caller domain.Caller, sub domain.MealRequestSubmission) (domain.MealRequest, error)
	Exists(ctx context.Context, mealID, userEmail string) (bool, error)
	ListByUser(ctx context.Context, caller domain.Caller, email string, page, limit int) (domain.MealRequestPage, error)
	ListAll(ctx context.Context, page, limit int) (domain.MealRequestPage, error)
	Search(ctx context.Context, keyword string, page, limit int) (domain.MealRequestPage, error)
	Serve(ctx context.Context, id string) error
	Cancel(ctx context.Context, caller domain.Caller, id string) error
}

// Handler agrupa os endpoints de pedidos de refeição.
type Handler struct {
	Service MealRequestService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MealRequestService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// UserRequestsResponse é a resposta de GET /meal-requests/user.
type UserRequestsResponse struct {
	Total      int                  `json:"total"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"totalPages"`
	Requests   []domain.MealRequest `json:"requests"`
}

// CreateHandler lida com a requisição POST /meal-requests.
// @Summary Pede uma refeição do catálogo
// @Tags meal-requests
// @Accept json
// @Produce json
// @Param request body domain.MealRequestSubmission true "Refeição e usuário"
// @Success 201 {object} domain.MealRequest
// @Failure 400 {object} domain.ErrorResponse "Campos ausentes ou pedido repetido"
// @Failure 403 {object} domain.ErrorResponse "E-mail diferente do token"
// @Failure 404 {object} domain.ErrorResponse "Refeição não encontrada"
// @Router /meal-requests [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}

	var sub domain.MealRequestSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Missing required fields"))
		return
	}

	saved, err := h.Service.Request(r.Context(), caller, sub)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, saved)
}

// ExistsHandler lida com a requisição GET /meal-requests?mealId=&userEmail=.
// @Summary Indica se o usuário já pediu a refeição
// @Tags meal-requests
// @Produce json
// @Param mealId query string true "ID da refeição"
// @Param userEmail query string true "E-mail do usuário"
// @Success 200 {object} map[string]bool "{exists}"
// @Failure 400 {object} domain.ErrorResponse
// @Router /meal-requests [get]
func (h *Handler) ExistsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	exists, err := h.Service.Exists(r.Context(), q.Get("mealId"), q.Get("userEmail"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

// ListMineHandler lida com a requisição GET /meal-requests/user.
// @Summary Lista os pedidos do usuário logado
// @Tags meal-requests
// @Produce json
// @Param email query string false "E-mail (padrão: o do token)"
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} UserRequestsResponse
// @Failure 403 {object} domain.ErrorResponse
// @Router /meal-requests/user [get]
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
	response.JSON(w, http.StatusOK, UserRequestsResponse{
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		Requests:   result.Data,
	})
}

// ListAllHandler lida com a requisição GET /meal-requests/all.
// @Summary Lista todos os pedidos (admin)
// @Tags meal-requests
// @Produce json
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.MealRequestPage
// @Failure 403 {object} domain.ErrorResponse
// @Router /meal-requests/all [get]
func (h *Handler) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.Service.ListAll(r.Context(), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// SearchHandler lida com a requisição GET /meal-requests/search?keyword=.
// @Summary Busca pedidos por e-mail (admin)
// @Tags meal-requests
// @Produce json
// @Param keyword query string true "Trecho do e-mail"
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.MealRequestPage
// @Failure 400 {object} domain.ErrorResponse "Palavra-chave ausente"
// @Router /meal-requests/search [get]
func (h *Handler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)

	result, err := h.Service.Search(r.Context(), r.URL.Query().Get("keyword"), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// ServeHandler lida com a requisição PATCH /meal-requests/serve/{id}.
// @Summary Marca o pedido como "on serving" (admin)
// @Tags meal-requests
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} map[string]string "{message}"
// @Failure 404 {object} domain.ErrorResponse
// @Router /meal-requests/serve/{id} [patch]
func (h *Handler) ServeHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Serve(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Status updated to 'on serving'"})
}

// DeleteHandler lida com a requisição DELETE /meal-requests/{id}.
// @Summary Cancela um pedido (dono ou admin)
// @Tags meal-requests
// @Produce json
// @Param id path string true "ID do pedido"
// @Success 200 {object} map[string]string "{message}"
// @Failure 403 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /meal-requests/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.GetCaller(r.Context())
	if !ok {
		response.Error(w, r, h.Logger, apperror.NewUnauthorizedError("Unauthorized Access: No token"))
		return
	}

	if err := h.Service.Cancel(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]string{"message": "Meal request deleted"})
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}
