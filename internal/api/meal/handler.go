package meal

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/response"
	"hallpoint/internal/service/mealservice"
)

// MealService define o contrato que o Handler espera da camada de Serviço.
type MealService interface {
	Create(ctx context.Context, submission domain.MealSubmission) (domain.Meal, error)
	GetByID(ctx context.Context, id string) (domain.Meal, error)
	List(ctx context.Context, filter domain.MealFilter) (domain.MealPage, error)
	ListByDistributor(ctx context.Context, email string) ([]domain.Meal, error)
	ListSorted(ctx context.Context, page, limit int) (domain.MealSortedPage, error)
	Update(ctx context.Context, id string, patch domain.MealSubmission) error
	Delete(ctx context.Context, id string) (int64, error)
	Like(ctx context.Context, id string) (int, error)
}

// LikeResponse é a resposta de PATCH /meals/{id}/like.
type LikeResponse struct {
	Message string `json:"message"`
	Likes   int    `json:"likes"`
}

// Handler agrupa os endpoints do catálogo publicado.
type Handler struct {
	Service MealService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MealService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// ListHandler lida com a requisição GET /meals.
// @Summary Lista o catálogo com filtros
// @Tags meals
// @Produce json
// @Param search query string false "Trecho do título"
// @Param category query string false "Categoria exata"
// @Param priceRange query string false "Faixa de preço min-max"
// @Param page query int false "Página (começa em 0)"
// @Param limit query int false "Itens por página (padrão 10)"
// @Success 200 {object} domain.MealPage
// @Failure 400 {object} domain.ErrorResponse "Faixa de preço inválida"
// @Router /meals [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	minPrice, maxPrice, err := mealservice.ParsePriceRange(q.Get("priceRange"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	result, err := h.Service.List(r.Context(), domain.MealFilter{
		Page:     page,
		Limit:    limit,
		Search:   q.Get("search"),
		Category: q.Get("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// GetByIDHandler lida com a requisição GET /meals/{id}.
// @Summary Busca uma refeição publicada
// @Tags meals
// @Produce json
// @Param id path string true "ID da refeição"
// @Success 200 {object} domain.Meal
// @Failure 404 {object} domain.ErrorResponse "Refeição não encontrada"
// @Router /meals/{id} [get]
func (h *Handler) GetByIDHandler(w http.ResponseWriter, r *http.Request) {
	meal, err := h.Service.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, meal)
}

// ListByDistributorHandler lida com a requisição GET /meals/distributor/{email}.
// @Summary Lista as refeições de um distribuidor (admin)
// @Tags meals
// @Produce json
// @Param email path string true "E-mail do distribuidor"
// @Success 200 {array} domain.Meal
// @Failure 403 {object} domain.ErrorResponse
// @Router /meals/distributor/{email} [get]
func (h *Handler) ListByDistributorHandler(w http.ResponseWriter, r *http.Request) {
	meals, err := h.Service.ListByDistributor(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, meals)
}

// CreateHandler lida com a requisição POST /meals.
// @Summary Publica uma refeição diretamente (admin)
// @Tags meals
// @Accept json
// @Produce json
// @Param meal body domain.MealSubmission true "Dados da refeição"
// @Success 201 {object} domain.Meal
// @Failure 400 {object} domain.ErrorResponse "Campos obrigatórios ausentes"
// @Failure 403 {object} domain.ErrorResponse
// @Router /meals [post]
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var submission domain.MealSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Missing required fields"))
		return
	}

	created, err := h.Service.Create(r.Context(), submission)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, created)
}

// ListSortedHandler lida com a requisição GET /meals/sorted.
// @Summary Catálogo ordenado por curtidas e avaliações (admin)
// @Tags meals
// @Produce json
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.MealSortedPage
// @Failure 400 {object} domain.ErrorResponse "Página inválida"
// @Failure 403 {object} domain.ErrorResponse
// @Router /meals/sorted [get]
func (h *Handler) ListSortedHandler(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	result, err := h.Service.ListSorted(r.Context(), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// UpdateHandler lida com a requisição PATCH /meals/update/{id}.
// @Summary Atualiza campos de uma refeição (admin)
// @Tags meals
// @Accept json
// @Produce json
// @Param id path string true "ID da refeição"
// @Param meal body domain.MealSubmission true "Campos a alterar"
// @Success 200 {object} map[string]interface{} "{success, message}"
// @Failure 400 {object} domain.ErrorResponse "Nenhum campo informado"
// @Failure 404 {object} domain.ErrorResponse
// @Router /meals/update/{id} [patch]
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.MealSubmission
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("No fields to update"))
		return
	}

	if err := h.Service.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Meal updated successfully",
	})
}

// DeleteHandler lida com a requisição DELETE /meals/{id}.
// @Summary Remove uma refeição do catálogo (admin)
// @Tags meals
// @Produce json
// @Param id path string true "ID da refeição"
// @Success 200 {object} map[string]int64 "{deletedCount}"
// @Failure 403 {object} domain.ErrorResponse
// @Router /meals/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}

// LikeHandler lida com a requisição PATCH /meals/{id}/like.
// @Summary Curte uma refeição publicada
// @Tags meals
// @Produce json
// @Param id path string true "ID da refeição"
// @Success 200 {object} LikeResponse
// @Failure 404 {object} domain.ErrorResponse
// @Router /meals/{id}/like [patch]
func (h *Handler) LikeHandler(w http.ResponseWriter, r *http.Request) {
	likes, err := h.Service.Like(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, LikeResponse{Message: "Like updated", Likes: likes})
}
