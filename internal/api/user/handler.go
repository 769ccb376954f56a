package user

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

// UserService define o contrato para as operações do diretório de usuários.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, bool, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetRole(ctx context.Context, email string) (domain.UserRole, error)
	UpdateRole(ctx context.Context, id string, role domain.UserRole) error
	Search(ctx context.Context, keyword string) ([]domain.User, error)
	ManageUsers(ctx context.Context, keyword string, page, limit int) (domain.UserPage, error)
}

// Handler agrupa todos os métodos de Handler do usuário.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// RegisterResponse é o corpo de POST /users.
type RegisterResponse struct {
	Inserted bool         `json:"inserted"`
	Message  string       `json:"message,omitempty"`
	User     *domain.User `json:"user,omitempty"`
}

// RegisterUserHandler lida com a requisição POST /users.
// @Summary Registra o usuário no primeiro login
// @Description Idempotente: e-mail já cadastrado retorna 200 com inserted=false.
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Nome, e-mail e badge"
// @Success 201 {object} RegisterResponse "Usuário criado"
// @Success 200 {object} RegisterResponse "Usuário já existia"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /users [post]
func (h *Handler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	var reg domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Invalid JSON payload"))
		return
	}

	newUser, inserted, err := h.Service.Register(r.Context(), reg)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	if !inserted {
		response.JSON(w, http.StatusOK, RegisterResponse{Inserted: false, Message: "User already exist"})
		return
	}
	response.JSON(w, http.StatusCreated, RegisterResponse{Inserted: true, User: &newUser})
}

// GetUserHandler lida com a requisição GET /users?email=.
// @Summary Busca usuário por e-mail
// @Tags users
// @Produce json
// @Param email query string true "E-mail do usuário"
// @Success 200 {object} domain.User "Usuário (ou null se não cadastrado)"
// @Failure 400 {object} domain.ErrorResponse "E-mail ausente"
// @Failure 401 {object} domain.ErrorResponse "Sem token"
// @Failure 403 {object} domain.ErrorResponse "Token inválido"
// @Router /users [get]
func (h *Handler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(user)
}

// GetRoleHandler lida com a requisição GET /users/role?email=.
// @Summary Retorna o papel atual do usuário
// @Tags users
// @Produce json
// @Param email query string true "E-mail do usuário"
// @Success 200 {object} map[string]string "{role}"
// @Failure 400 {object} domain.ErrorResponse "E-mail ausente"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado"
// @Router /users/role [get]
func (h *Handler) GetRoleHandler(w http.ResponseWriter, r *http.Request) {
	role, err := h.Service.GetRole(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, map[string]domain.UserRole{"role": role})
}

// SearchUsersHandler lida com a requisição GET /users/search?keyword=.
// @Summary Busca usuários por nome ou e-mail (admin)
// @Tags users
// @Produce json
// @Param keyword query string true "Trecho do nome ou e-mail"
// @Success 200 {array} domain.User
// @Failure 400 {object} domain.ErrorResponse "Palavra-chave ausente"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Router /users/search [get]
func (h *Handler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.Search(r.Context(), r.URL.Query().Get("keyword"))
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, users)
}

// ManageUsersHandler lida com a requisição GET /users/manageUsers.
// @Summary Lista usuários paginados para administração (admin)
// @Tags users
// @Produce json
// @Param keyword query string false "Trecho do nome ou e-mail"
// @Param page query int false "Página (começa em 1)"
// @Param limit query int false "Itens por página (padrão 10, máx. 100)"
// @Success 200 {object} domain.UserPage
// @Failure 400 {object} domain.ErrorResponse "Página inválida"
// @Failure 403 {object} domain.ErrorResponse "Papel sem permissão"
// @Router /users/manageUsers [get]
func (h *Handler) ManageUsersHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	result, err := h.Service.ManageUsers(r.Context(), q.Get("keyword"), page, limit)
	if err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

// UpdateRoleHandler lida com a requisição PATCH /users/update-role/{id}.
// @Summary Altera o papel de um usuário (admin)
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "ID do usuário"
// @Param role body domain.RoleUpdate true "Novo papel (admin|user)"
// @Success 200 {object} map[string]string "{message, updatedId}"
// @Failure 400 {object} domain.ErrorResponse "Papel inválido"
// @Failure 404 {object} domain.ErrorResponse "Usuário não encontrado ou papel inalterado"
// @Router /users/update-role/{id} [patch]
func (h *Handler) UpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body domain.RoleUpdate
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.Error(w, r, h.Logger, apperror.NewValidationError("Invalid or missing role."))
		return
	}

	if err := h.Service.UpdateRole(r.Context(), id, body.Role); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message":   "User role updated successfully",
		"updatedId": id,
	})
}
