package mealrequestservice

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

// Service concentra as regras dos pedidos de refeição.
type Service struct {
	repo   domain.MealRequestRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria o serviço de pedidos de refeição.
func NewService(repo domain.MealRequestRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Request registra um pedido pendente do caller. O mesmo par (refeição, usuário) só entra uma vez.
func (s *Service) Request(ctx context.Context, caller domain.Caller, sub domain.MealRequestSubmission) (domain.MealRequest, error) {
	sub.MealID = strings.TrimSpace(sub.MealID)
	sub.UserEmail = strings.TrimSpace(sub.UserEmail)
	if sub.MealID == "" || sub.UserEmail == "" {
		return domain.MealRequest{}, apperror.NewValidationError("Missing required fields")
	}
	if sub.UserEmail != caller.Email {
		return domain.MealRequest{}, apperror.NewForbiddenError("Forbidden: cannot request on behalf of another user")
	}

	saved, err := s.repo.Save(ctx, domain.MealRequest{
		MealID:      sub.MealID,
		MealTitle:   sub.MealTitle,
		UserEmail:   sub.UserEmail,
		UserName:    strings.TrimSpace(sub.UserName),
		RequestedAt: s.now(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrRequestExists) {
			return domain.MealRequest{}, apperror.NewConflictError("Already requested")
		}
		return domain.MealRequest{}, fmt.Errorf("falha ao salvar pedido de refeição: %w", err)
	}
	return saved, nil
}

// Exists indica se userEmail já pediu a refeição mealID.
func (s *Service) Exists(ctx context.Context, mealID, userEmail string) (bool, error) {
	mealID = strings.TrimSpace(mealID)
	userEmail = strings.TrimSpace(userEmail)
	if mealID == "" || userEmail == "" {
		return false, apperror.NewValidationError("mealId and userEmail are required")
	}
	return s.repo.Exists(ctx, mealID, userEmail)
}

// ListByUser retorna os pedidos de email; vazio significa o próprio caller.
func (s *Service) ListByUser(ctx context.Context, caller domain.Caller, email string, page, limit int) (domain.MealRequestPage, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = caller.Email
	}
	if !caller.CanManage(email) {
		return domain.MealRequestPage{}, apperror.NewForbiddenError("Forbidden: cannot read another user's requests")
	}

	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	requests, total, err := s.repo.FindByUser(ctx, email, p.Offset, p.Limit)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	return newPage(p, requests, total), nil
}

// ListAll retorna todos os pedidos paginados (operação de administrador).
func (s *Service) ListAll(ctx context.Context, page, limit int) (domain.MealRequestPage, error) {
	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	requests, total, err := s.repo.FindAll(ctx, p.Offset, p.Limit)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	return newPage(p, requests, total), nil
}

// Search filtra os pedidos por e-mail (operação de administrador).
func (s *Service) Search(ctx context.Context, keyword string, page, limit int) (domain.MealRequestPage, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return domain.MealRequestPage{}, apperror.NewValidationError("Search keyword is required.")
	}

	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	requests, total, err := s.repo.SearchByEmail(ctx, keyword, p.Offset, p.Limit)
	if err != nil {
		return domain.MealRequestPage{}, err
	}
	return newPage(p, requests, total), nil
}

// Serve marca o pedido como "on serving" (operação de administrador).
func (s *Service) Serve(ctx context.Context, id string) error {
	if err := s.repo.MarkServing(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Pedido de refeição em preparo.", map[string]interface{}{"request_id": id})
	return nil
}

// Cancel remove um pedido do caller (ou qualquer um, se admin).
func (s *Service) Cancel(ctx context.Context, caller domain.Caller, id string) error {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanManage(request.UserEmail) {
		return apperror.NewForbiddenError("Forbidden: not the request owner")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NewNotFoundError("Meal request not found")
	}

	s.logger.Info("Pedido de refeição removido.", map[string]interface{}{"request_id": id, "by": caller.Email})
	return nil
}

func newPage(p pagination.Params, requests []domain.MealRequest, total int) domain.MealRequestPage {
	return domain.MealRequestPage{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
		Data:       requests,
	}
}
