package userservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/pagination"
)

// UserService define o serviço de lógica de negócio do diretório de usuários.
type UserService struct {
	UserRepo domain.UserRepository
	logger   logger.Logger
}

// NewService cria uma nova instância do UserService, injetando o Repositório.
func NewService(repo domain.UserRepository, log logger.Logger) *UserService {
	return &UserService{
		UserRepo: repo,
		logger:   log,
	}
}

// Register cadastra o usuário no primeiro login. É idempotente: e-mail já existente
// retorna inserted=false sem erro. Todo usuário novo nasce com o papel "user".
func (s *UserService) Register(ctx context.Context, registration domain.UserRegistration) (domain.User, bool, error) {
	email := strings.TrimSpace(registration.Email)
	if email == "" {
		return domain.User{}, false, apperror.NewValidationError("User email is required")
	}

	newUser := domain.User{
		Name:  strings.TrimSpace(registration.Name),
		Email: email,
		Role:  domain.RoleUser,
		Badge: registration.Badge,
	}

	user, err := s.UserRepo.Save(ctx, newUser)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.logger.Debug("Registro ignorado: usuário já existe.", map[string]interface{}{"email": email})
			return domain.User{}, false, nil
		}
		return domain.User{}, false, fmt.Errorf("falha ao registrar usuário: %w", err)
	}

	return user, true, nil
}

// GetByEmail retorna o usuário ou nil quando o e-mail não está cadastrado.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if email == "" {
		return nil, apperror.NewValidationError("Email query parameter is required")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetRole retorna o papel atual do usuário (fallback "user" se vazio).
func (s *UserService) GetRole(ctx context.Context, email string) (domain.UserRole, error) {
	if email == "" {
		return "", apperror.NewValidationError("Email query parameter is required")
	}

	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return "", apperror.NewNotFoundError("User not found")
		}
		return "", err
	}

	if user.Role == "" {
		return domain.RoleUser, nil
	}
	return user.Role, nil
}

// UpdateRole altera o papel de um usuário (operação de administrador).
func (s *UserService) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	if !role.IsValid() {
		return apperror.NewValidationError("Invalid or missing role.")
	}

	if err := s.UserRepo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	s.logger.Info("Papel de usuário alterado.", map[string]interface{}{"user_id": id, "role": role})
	return nil
}

// Search busca usuários por nome ou e-mail (operação de administrador).
func (s *UserService) Search(ctx context.Context, keyword string) ([]domain.User, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, apperror.NewValidationError("Search keyword is required.")
	}
	return s.UserRepo.Search(ctx, keyword)
}

// ManageUsers lista usuários paginados para o painel de administração (page começa em 1).
// keyword vazio lista todos.
func (s *UserService) ManageUsers(ctx context.Context, keyword string, page, limit int) (domain.UserPage, error) {
	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.UserPage{}, err
	}

	users, total, err := s.UserRepo.SearchPage(ctx, strings.TrimSpace(keyword), p.Offset, p.Limit)
	if err != nil {
		return domain.UserPage{}, err
	}
	return domain.UserPage{Users: users, Total: total}, nil
}
