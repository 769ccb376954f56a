package upcoming

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
)

// UpcomingService define o contrato que o Handler espera da camada de Serviço.
type UpcomingService interface {
	Submit(ctx context.Context, submission domain.MealSubmission) (string, error)
	List(ctx context.Context) ([]domain.UpcomingMeal, error)
	ListSorted(ctx context.Context, page, limit int) (domain.UpcomingMealPage, error)
	RegisterVote(ctx context.Context, candidateID, voterEmail string) (domain.VoteResult, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// Handler agrupa os endpoints de refeições candidatas.
type Handler struct {
	Service UpcomingService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UpcomingService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// LikeRequest é o corpo de PATCH /upcoming-meals/like/{id}.
type LikeRequest struct {
	Email string `json:"email"`
}

// LikeResponse é a resposta da votação.
type LikeResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	Published    bool   `json:"published"`
	UpdatedLikes *int   `json:"updatedLikes,omitempty"`
}

// ListHandler lida com a requisição GET /upcoming-meals.
// @Summary Lista as refeições candidatas
// @Tags upcoming-meals
// @Produce json
// @Success 200 {array} domain.UpcomingMeal
// @Failure 500 {object} domain.ErrorResponse
// @Router /upcoming-meals [get]
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	meals, err := h.Service.List(r.Context())
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, meals)
}

// ListSortedHandler lida com a requisição GET /upcoming-meals/sorted.
// @Summary Lista candidatas por curtidas, paginado (admin)
// @Tags upcoming-meals
// @Produce json
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10)"
// @Success 200 {object} domain.UpcomingMealPage
// @Failure 403 {object} domain.ErrorResponse
// @Router /upcoming-meals/sorted [get]
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

// SubmitHandler lida com a requisição POST /upcoming-meals.
// @Summary Submete uma refeição candidata
// @Tags upcoming-meals
// @Accept json
// @Produce json
// @Param meal body domain.MealSubmission true "Dados da refeição"
// @Success 201 {object} map[string]string "{insertedId}"
// @Failure 400 {object} domain.ErrorResponse "Campos obrigatórios ausentes"
// @Router /upcoming-meals [post]
func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var submission domain.MealSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Missing required fields"))
		return
	}

	id, err := h.Service.Submit(r.Context(), submission)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusCreated, map[string]string{"insertedId": id})
}

// LikeHandler lida com a requisição PATCH /upcoming-meals/like/{id}.
// @Summary Curte uma refeição candidata
// @Description Cada e-mail vota uma vez; ao atingir 10 curtidas a refeição é publicada no catálogo.
// @Tags upcoming-meals
// @Accept json
// @Produce json
// @Param id path string true "ID da candidata"
// @Param vote body LikeRequest true "E-mail de quem curtiu"
// @Success 200 {object} LikeResponse
// @Failure 400 {object} domain.ErrorResponse "E-mail ausente ou voto duplicado"
// @Failure 404 {object} domain.ErrorResponse "Refeição não encontrada"
// @Failure 500 {object} domain.ErrorResponse
// @Router /upcoming-meals/like/{id} [patch]
func (h *Handler) LikeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("User email is required"))
		return
	}

	result, err := h.Service.RegisterVote(r.Context(), id, body.Email)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if result.Published {
		response.JSON(w, http.StatusOK, LikeResponse{
			Success:   true,
			Message:   "Maximum likes reached! The meal is now live in the regular meals.",
			Published: true,
		})
		return
	}

	likes := result.UpdatedLikes
	response.JSON(w, http.StatusOK, LikeResponse{
		Success:      true,
		Message:      "Liked successfully.",
		Published:    false,
		UpdatedLikes: &likes,
	})
}

// DeleteHandler lida com a requisição DELETE /upcoming-meals/{id}.
// @Summary Remove uma refeição candidata (admin)
// @Tags upcoming-meals
// @Produce json
// @Param id path string true "ID da candidata"
// @Success 200 {object} map[string]int64 "{deletedCount}"
// @Failure 403 {object} domain.ErrorResponse
// @Router /upcoming-meals/{id} [delete]
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.Service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted})
}
