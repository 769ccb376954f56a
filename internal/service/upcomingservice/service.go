package upcomingservice

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

// Service concentra as regras das refeições candidatas: submissão, votação e promoção.
type Service struct {
	repo   domain.UpcomingMealRepository
	logger logger.Logger
	now    func() time.Time
}

// NewService cria o serviço de refeições candidatas.
func NewService(repo domain.UpcomingMealRepository, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Submit valida e insere um candidato novo, retornando o ID gerado.
func (s *Service) Submit(ctx context.Context, submission domain.MealSubmission) (string, error) {
	if !submission.IsComplete() {
		return "", apperror.NewValidationError("Missing required fields")
	}

	candidate := submission.ToUpcoming()
	candidate.PostedAt = s.now()

	saved, err := s.repo.Save(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("falha ao salvar refeição candidata: %w", err)
	}
	return saved.ID, nil
}

// List retorna todos os candidatos.
func (s *Service) List(ctx context.Context) ([]domain.UpcomingMeal, error) {
	return s.repo.FindAll(ctx)
}

// ListSorted retorna uma página de candidatos por curtidas (page começa em 1).
func (s *Service) ListSorted(ctx context.Context, page, limit int) (domain.UpcomingMealPage, error) {
	p, err := pagination.Normalize(page, limit, 1)
	if err != nil {
		return domain.UpcomingMealPage{}, err
	}

	meals, total, err := s.repo.FindSortedByLikes(ctx, p.Offset, p.Limit)
	if err != nil {
		return domain.UpcomingMealPage{}, err
	}

	return domain.UpcomingMealPage{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: p.TotalPages(total),
		Data:       meals,
	}, nil
}

// Delete remove um candidato e retorna quantos registros foram apagados.
func (s *Service) Delete(ctx context.Context, id string) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Refeição candidata removida.", map[string]interface{}{"meal_id": id, "deleted": deleted})
	return deleted, nil
}

// RegisterVote registra a curtida de voterEmail e promove o candidato ao catálogo
// quando as curtidas alcançam domain.PromotionThreshold.
func (s *Service) RegisterVote(ctx context.Context, candidateID, voterEmail string) (domain.VoteResult, error) {
	voterEmail = strings.TrimSpace(voterEmail)
	if voterEmail == "" {
		return domain.VoteResult{}, apperror.NewValidationError("User email is required")
	}

	// 1. Candidato existe?
	candidate, err := s.repo.FindByID(ctx, candidateID)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return domain.VoteResult{}, apperror.NewNotFoundError("Meal not found")
		}
		return domain.VoteResult{}, err
	}

	// 2. Voto duplicado
	if candidate.HasVoter(voterEmail) {
		return domain.VoteResult{}, apperror.NewDuplicateVoteError()
	}

	// 3. Incremento condicional (fecha a corrida entre dois votos do mesmo e-mail)
	updated, err := s.repo.AddVote(ctx, candidateID, voterEmail)
	if errors.Is(err, domain.ErrVoteNotApplied) {
		return domain.VoteResult{}, s.explainRejectedVote(ctx, candidateID, voterEmail)
	}
	if err != nil {
		return domain.VoteResult{}, err
	}

	// 4. Promoção
	if updated.Likes >= domain.PromotionThreshold {
		meal, err := s.repo.Publish(ctx, candidateID, updated.ToPublished(s.now()))
		if errors.Is(err, domain.ErrCandidateGone) {
			s.logger.Debug("Candidato já publicado por voto concorrente.", map[string]interface{}{"meal_id": candidateID})
			return domain.VoteResult{Published: true}, nil
		}
		if err != nil {
			return domain.VoteResult{}, err
		}

		s.logger.Info("Refeição promovida ao catálogo.", map[string]interface{}{
			"candidate_id": candidateID,
			"meal_id":      meal.ID,
			"likes":        updated.Likes,
		})
		return domain.VoteResult{Published: true}, nil
	}

	return domain.VoteResult{Published: false, UpdatedLikes: updated.Likes}, nil
}

// explainRejectedVote relê o candidato depois de um AddVote sem efeito.
func (s *Service) explainRejectedVote(ctx context.Context, candidateID, voterEmail string) error {
	current, err := s.repo.FindByID(ctx, candidateID)
	if err == nil && current.HasVoter(voterEmail) {
		return apperror.NewDuplicateVoteError()
	}

	var notFound *apperror.NotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return apperror.NewInternalError("Failed to retrieve updated meal.", domain.ErrVoteNotApplied)
}
