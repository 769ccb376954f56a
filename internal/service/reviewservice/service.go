package reviewservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/pkg/pagination"
)

// MealInvalidator descarta a refeição do cache depois que seus agregados mudam.
type MealInvalidator interface {
	Invalidate(ctx context.Context, mealID string)
}

// Service concentra as regras das avaliações de refeições publicadas.
type Service struct {
	repo   domain.ReviewRepository
	meals  MealInvalidator // opcional
	logger logger.Logger
	now    func() time.Time
}

// NewService cria o serviço de avaliações. meals pode ser nil.
func NewService(repo domain.ReviewRepository, meals MealInvalidator, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		meals:  meals,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Add registra a avaliação de caller sobre a refeição mealID.
func (s *Service) Add(ctx context.Context, caller domain.Caller, mealID string, sub domain.ReviewSubmission) (domain.Review, error) {
	sub.User = strings.TrimSpace(sub.User)
	sub.Email = strings.TrimSpace(sub.Email)
	sub.Comment = strings.TrimSpace(sub.Comment)
	if sub.User == "" || sub.Email == "" || sub.Comment == "" || sub.Rating == nil {
		return domain.Review{}, apperror.NewValidationError("Missing review fields")
	}
	if err := validateRating(*sub.Rating); err != nil {
		return domain.Review{}, err
	}
	if sub.Email != caller.Email {
		return domain.Review{}, apperror.NewForbiddenError("Forbidden: cannot review on behalf of another user")
	}

	saved, err := s.repo.Save(ctx, domain.Review{
		MealID:    mealID,
		MealTitle: sub.MealTitle,
		User:      sub.User,
		Email:     sub.Email,
		Comment:   sub.Comment,
		Rating:    *sub.Rating,
		PostedAt:  s.now(),
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("falha ao salvar avaliação: %w", err)
	}

	s.invalidate(ctx, mealID)
	return saved, nil
}

// ListAll retorna todas as avaliações paginadas (page começa em 1).
func (s *Service) ListAll(ctx context.Context, page, limit int) (domain.ReviewPage, error) {
	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.ReviewPage{}, err
	}

	reviews, total, err := s.repo.FindAll(ctx, p.Offset, p.Limit)
	if err != nil {
		return domain.ReviewPage{}, err
	}
	return newPage(p, reviews, total), nil
}

// ListByUser retorna as avaliações de email; vazio significa o próprio caller.
func (s *Service) ListByUser(ctx context.Context, caller domain.Caller, email string, page, limit int) (domain.ReviewPage, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = caller.Email
	}
	if !caller.CanManage(email) {
		return domain.ReviewPage{}, apperror.NewForbiddenError("Forbidden: cannot read another user's reviews")
	}

	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.ReviewPage{}, err
	}

	reviews, total, err := s.repo.FindByEmail(ctx, email, p.Offset, p.Limit)
	if err != nil {
		return domain.ReviewPage{}, err
	}
	return newPage(p, reviews, total), nil
}

// ListByMeal lista as avaliações públicas de uma refeição.
func (s *Service) ListByMeal(ctx context.Context, mealID string) ([]domain.Review, error) {
	if strings.TrimSpace(mealID) == "" {
		return nil, apperror.NewValidationError("Meal id is required")
	}
	return s.repo.FindByMeal(ctx, mealID)
}

// Update altera comentário/nota de uma avaliação do caller (ou de qualquer uma, se admin).
func (s *Service) Update(ctx context.Context, caller domain.Caller, id string, patch domain.ReviewPatch) (domain.Review, error) {
	if patch.Comment == nil && patch.Rating == nil {
		return domain.Review{}, apperror.NewValidationError("No fields to update")
	}
	if patch.Rating != nil {
		if err := validateRating(*patch.Rating); err != nil {
			return domain.Review{}, err
		}
	}

	if _, err := s.owned(ctx, caller, id, "Review not found or no change made."); err != nil {
		return domain.Review{}, err
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return domain.Review{}, err
	}

	s.invalidate(ctx, updated.MealID)
	return updated, nil
}

// Delete remove uma avaliação do caller (ou de qualquer uma, se admin).
func (s *Service) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := s.owned(ctx, caller, id, "Review not found"); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate(ctx, deleted.MealID)
	s.logger.Info("Avaliação removida.", map[string]interface{}{"review_id": id, "by": caller.Email})
	return nil
}

// owned carrega a avaliação e confere se o caller pode alterá-la.
func (s *Service) owned(ctx context.Context, caller domain.Caller, id, notFoundMsg string) (domain.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.Review{}, apperror.NewNotFoundError(notFoundMsg)
		}
		return domain.Review{}, err
	}
	if !caller.CanManage(review.Email) {
		return domain.Review{}, apperror.NewForbiddenError("Forbidden: not the review owner")
	}
	return review, nil
}

func (s *Service) invalidate(ctx context.Context, mealID string) {
	if s.meals != nil {
		s.meals.Invalidate(ctx, mealID)
	}
}

func validateRating(rating int) error {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return apperror.NewValidationError("Rating must be between 1 and 5")
	}
	return nil
}

func newPage(p pagination.Params, reviews []domain.Review, total int) domain.ReviewPage {
	return domain.ReviewPage{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
		Reviews:    reviews,
	}
}
