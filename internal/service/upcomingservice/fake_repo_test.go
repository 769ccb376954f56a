package upcomingservice_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
)

// memoryRepo reproduz em memória a semântica atômica do repositório PostgreSQL.
type memoryRepo struct {
	mu        sync.Mutex
	upcoming  map[string]domain.UpcomingMeal
	published []domain.Meal
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{upcoming: map[string]domain.UpcomingMeal{}}
}

func (r *memoryRepo) Save(ctx context.Context, m domain.UpcomingMeal) (domain.UpcomingMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = uuid.NewString()
	m.Status = domain.StatusUpcoming
	m.LikedBy = []string{}
	r.upcoming[m.ID] = m
	return m, nil
}

func (r *memoryRepo) FindByID(ctx context.Context, id string) (domain.UpcomingMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.upcoming[id]
	if !ok {
		return domain.UpcomingMeal{}, apperror.NewNotFoundError(fmt.Sprintf("candidato %s", id))
	}
	m.LikedBy = append([]string(nil), m.LikedBy...)
	return m, nil
}

func (r *memoryRepo) FindAll(ctx context.Context) ([]domain.UpcomingMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.UpcomingMeal{}
	for _, m := range r.upcoming {
		out = append(out, m)
	}
	return out, nil
}

func (r *memoryRepo) FindSortedByLikes(ctx context.Context, offset, limit int) ([]domain.UpcomingMeal, int, error) {
	all, _ := r.FindAll(ctx)
	return all, len(all), nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.upcoming[id]; !ok {
		return 0, nil
	}
	delete(r.upcoming, id)
	return 1, nil
}

func (r *memoryRepo) AddVote(ctx context.Context, id, email string) (domain.UpcomingMeal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.upcoming[id]
	if !ok || m.HasVoter(email) {
		return domain.UpcomingMeal{}, domain.ErrVoteNotApplied
	}
	m.Likes++
	m.LikedBy = append(append([]string(nil), m.LikedBy...), email)
	r.upcoming[id] = m
	return m, nil
}

func (r *memoryRepo) Publish(ctx context.Context, candidateID string, meal domain.Meal) (domain.Meal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.upcoming[candidateID]; !ok {
		return domain.Meal{}, domain.ErrCandidateGone
	}
	delete(r.upcoming, candidateID)
	meal.ID = uuid.NewString()
	r.published = append(r.published, meal)
	return meal, nil
}

func (r *memoryRepo) publishedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.published)
}
