package reviewservice_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/service/reviewservice"
)

// MockReviewRepository é uma implementação mock da interface ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Save(ctx context.Context, review domain.Review) (domain.Review, error) {
	args := m.Called(ctx, review)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id string) (domain.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.Review, int, error) {
	args := m.Called(ctx, offset, limit)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) FindByEmail(ctx context.Context, email string, offset, limit int) ([]domain.Review, int, error) {
	args := m.Called(ctx, email, offset, limit)
	return args.Get(0).([]domain.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewRepository) FindByMeal(ctx context.Context, mealID string) ([]domain.Review, error) {
	args := m.Called(ctx, mealID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Update(ctx context.Context, id string, patch domain.ReviewPatch) (domain.Review, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) (domain.Review, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Review), args.Error(1)
}

// MockInvalidator registra as refeições invalidadas
type MockInvalidator struct {
	mock.Mock
}

func (m *MockInvalidator) Invalidate(ctx context.Context, mealID string) {
	m.Called(ctx, mealID)
}

var (
	nadia = domain.Caller{Email: "nadia@hallpoint.dev", Role: domain.RoleUser}
	admin = domain.Caller{Email: "admin@hallpoint.dev", Role: domain.RoleAdmin}
)

func newService() (*reviewservice.Service, *MockReviewRepository, *MockInvalidator) {
	repo := new(MockReviewRepository)
	meals := new(MockInvalidator)
	return reviewservice.NewService(repo, meals, logger.New(io.Discard, "disabled")), repo, meals
}

func intPtr(i int) *int { return &i }

func statusOf(err error) (int, string) {
	status, _, msg := apperror.MapToHTTPStatus(err)
	return status, msg
}

func TestAdd_Success(t *testing.T) {
	svc, repo, meals := newService()

	repo.On("Save", mock.Anything, mock.MatchedBy(func(r domain.Review) bool {
		return r.MealID == "m-1" && r.Rating == 4 && r.Comment == "good" && !r.PostedAt.IsZero()
	})).Return(domain.Review{ID: "r-1", MealID: "m-1"}, nil)
	meals.On("Invalidate", mock.Anything, "m-1").Return()

	saved, err := svc.Add(context.Background(), nadia, "m-1", domain.ReviewSubmission{
		User: "Nadia", Email: "nadia@hallpoint.dev", Comment: " good ", Rating: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "r-1", saved.ID)
	meals.AssertExpectations(t)
}

func TestAdd_Fail_Validation(t *testing.T) {
	svc, repo, _ := newService()

	tests := []struct {
		name string
		sub  domain.ReviewSubmission
		msg  string
	}{
		{"sem nota", domain.ReviewSubmission{User: "N", Email: "nadia@hallpoint.dev", Comment: "c"}, "Missing review fields"},
		{"sem comentário", domain.ReviewSubmission{User: "N", Email: "nadia@hallpoint.dev", Rating: intPtr(3)}, "Missing review fields"},
		{"nota zero", domain.ReviewSubmission{User: "N", Email: "nadia@hallpoint.dev", Comment: "c", Rating: intPtr(0)}, "Rating must be between 1 and 5"},
		{"nota seis", domain.ReviewSubmission{User: "N", Email: "nadia@hallpoint.dev", Comment: "c", Rating: intPtr(6)}, "Rating must be between 1 and 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(context.Background(), nadia, "m-1", tt.sub)
			status, msg := statusOf(err)
			assert.Equal(t, 400, status)
			assert.Equal(t, tt.msg, msg)
		})
	}
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdd_Fail_OtherUsersEmail(t *testing.T) {
	svc, repo, _ := newService()

	_, err := svc.Add(context.Background(), nadia, "m-1", domain.ReviewSubmission{
		User: "Rafi", Email: "rafi@hallpoint.dev", Comment: "c", Rating: intPtr(5),
	})
	status, _ := statusOf(err)
	assert.Equal(t, 403, status)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAdd_Fail_MealNotFound(t *testing.T) {
	svc, repo, meals := newService()
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.Review{}, apperror.NewNotFoundError("Meal not found"))

	_, err := svc.Add(context.Background(), nadia, "m-x", domain.ReviewSubmission{
		User: "Nadia", Email: "nadia@hallpoint.dev", Comment: "c", Rating: intPtr(5),
	})
	status, msg := statusOf(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Meal not found", msg)
	meals.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestListByUser(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByEmail", mock.Anything, "nadia@hallpoint.dev", 0, 10).Return([]domain.Review{{ID: "r-1"}}, 1, nil)
	repo.On("FindByEmail", mock.Anything, "rafi@hallpoint.dev", 0, 10).Return([]domain.Review{}, 0, nil)

	page, err := svc.ListByUser(context.Background(), nadia, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.TotalPages)

	_, err = svc.ListByUser(context.Background(), nadia, "rafi@hallpoint.dev", 1, 10)
	status, _ := statusOf(err)
	assert.Equal(t, 403, status)

	_, err = svc.ListByUser(context.Background(), admin, "rafi@hallpoint.dev", 1, 10)
	require.NoError(t, err)
}

func TestListAll_CapsLimit(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindAll", mock.Anything, 100, 100).Return([]domain.Review{}, 150, nil)

	page, err := svc.ListAll(context.Background(), 2, 1000)
	require.NoError(t, err)
	assert.Equal(t, 100, page.Limit)
	assert.Equal(t, 2, page.TotalPages)
}

func TestUpdate(t *testing.T) {
	svc, repo, meals := newService()
	patch := domain.ReviewPatch{Rating: intPtr(2)}
	repo.On("FindByID", mock.Anything, "r-1").Return(domain.Review{ID: "r-1", MealID: "m-1", Email: "nadia@hallpoint.dev"}, nil)
	repo.On("FindByID", mock.Anything, "r-x").Return(domain.Review{}, apperror.NewNotFoundError("Review not found"))
	repo.On("Update", mock.Anything, "r-1", patch).Return(domain.Review{ID: "r-1", MealID: "m-1", Rating: 2}, nil)
	meals.On("Invalidate", mock.Anything, "m-1").Return()

	updated, err := svc.Update(context.Background(), nadia, "r-1", patch)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Rating)

	_, err = svc.Update(context.Background(), domain.Caller{Email: "rafi@hallpoint.dev", Role: domain.RoleUser}, "r-1", patch)
	status, _ := statusOf(err)
	assert.Equal(t, 403, status)

	_, err = svc.Update(context.Background(), nadia, "r-x", patch)
	status, msg := statusOf(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Review not found or no change made.", msg)

	_, err = svc.Update(context.Background(), nadia, "r-1", domain.ReviewPatch{Rating: intPtr(9)})
	status, _ = statusOf(err)
	assert.Equal(t, 400, status)

	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestDelete_AdminCanRemoveAnyReview(t *testing.T) {
	svc, repo, meals := newService()
	repo.On("FindByID", mock.Anything, "r-1").Return(domain.Review{ID: "r-1", MealID: "m-1", Email: "nadia@hallpoint.dev"}, nil)
	repo.On("Delete", mock.Anything, "r-1").Return(domain.Review{ID: "r-1", MealID: "m-1"}, nil)
	meals.On("Invalidate", mock.Anything, "m-1").Return()

	require.NoError(t, svc.Delete(context.Background(), admin, "r-1"))
	meals.AssertExpectations(t)
}

func TestDelete_Fail_NotOwner(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByID", mock.Anything, "r-1").Return(domain.Review{ID: "r-1", Email: "nadia@hallpoint.dev"}, nil)

	err := svc.Delete(context.Background(), domain.Caller{Email: "rafi@hallpoint.dev", Role: domain.RoleUser}, "r-1")
	status, _ := statusOf(err)
	assert.Equal(t, 403, status)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListByMeal(t *testing.T) {
	svc, repo, _ := newService()
	repo.On("FindByMeal", mock.Anything, "m-1").Return([]domain.Review{{ID: "r-1"}, {ID: "r-2"}}, nil)

	reviews, err := svc.ListByMeal(context.Background(), "m-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	_, err = svc.ListByMeal(context.Background(), " ")
	status, _ := statusOf(err)
	assert.Equal(t, 400, status)
}
