package mealservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/pagination"
)

// Service implementa as regras do catálogo de refeições publicadas.
type Service struct {
	repo   domain.MealRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do serviço de refeições.
func NewService(repo domain.MealRepository, log logger.Logger) *Service {
	return &Service{repo: repo, logger: log}
}

// Create publica uma refeição diretamente no catálogo (operação de administrador).
func (s *Service) Create(ctx context.Context, submission domain.MealSubmission) (domain.Meal, error) {
	if !submission.IsComplete() {
		return domain.Meal{}, apperror.NewValidationError("Missing required fields")
	}

	meal := submission.ToMeal()
	meal.PostedAt = time.Now().UTC()

	created, err := s.repo.Save(ctx, meal)
	if err != nil {
		return domain.Meal{}, fmt.Errorf("falha ao salvar refeição no repositório: %w", err)
	}
	return created, nil
}

// GetByID busca uma refeição publicada.
func (s *Service) GetByID(ctx context.Context, id string) (domain.Meal, error) {
	if strings.TrimSpace(id) == "" {
		return domain.Meal{}, apperror.NewValidationError("Meal id is required")
	}
	return s.repo.FindByID(ctx, id)
}

// List retorna uma página do catálogo (page começa em 0) e se há mais páginas.
func (s *Service) List(ctx context.Context, filter domain.MealFilter) (domain.MealPage, error) {
	p, err := pagination.Normalize(filter.Page, filter.Limit, 0)
	if err != nil {
		return domain.MealPage{}, err
	}
	filter.Page, filter.Limit, filter.Offset = p.Page, p.Limit, p.Offset

	meals, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return domain.MealPage{}, err
	}

	return domain.MealPage{
		Meals:   meals,
		HasMore: p.HasMore(total),
	}, nil
}

// ListSorted retorna uma página do catálogo por curtidas e avaliações (page começa em 1).
func (s *Service) ListSorted(ctx context.Context, page, limit int) (domain.MealSortedPage, error) {
	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.MealSortedPage{}, err
	}

	meals, total, err := s.repo.FindSorted(ctx, p.Offset, p.Limit)
	if err != nil {
		return domain.MealSortedPage{}, err
	}

	return domain.MealSortedPage{
		TotalCount: total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
		Data:       meals,
	}, nil
}

// ListByDistributor lista as refeições de um distribuidor (operação de administrador).
func (s *Service) ListByDistributor(ctx context.Context, email string) ([]domain.Meal, error) {
	return s.repo.FindByDistributor(ctx, email)
}

// Update aplica um patch parcial; só os campos presentes mudam.
func (s *Service) Update(ctx context.Context, id string, patch domain.MealSubmission) error {
	if patch.IsEmpty() {
		return apperror.NewValidationError("No fields to update")
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete remove uma refeição do catálogo e retorna quantos registros foram apagados.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Refeição removida do catálogo.", map[string]interface{}{"meal_id": id, "deleted": deleted})
	return deleted, nil
}

// Like soma uma curtida à refeição publicada e retorna o total atualizado.
func (s *Service) Like(ctx context.Context, id string) (int, error) {
	return s.repo.Like(ctx, id)
}

// ParsePriceRange interpreta "min-max" (ex.: "5-20"). Vazio significa sem filtro.
func ParsePriceRange(raw string) (*float64, *float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil, nil
	}

	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return nil, nil, apperror.NewValidationError("Invalid priceRange")
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, nil, apperror.NewValidationError("Invalid priceRange")
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, nil, apperror.NewValidationError("Invalid priceRange")
	}
	if lo > hi {
		return nil, nil, apperror.NewValidationError("Invalid priceRange")
	}

	return &lo, &hi, nil
}
