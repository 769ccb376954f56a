package userservice_test

import (
	"context"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
	"hallpoint/internal/service/userservice"
)

// MockUserRepository é uma implementação mock da interface UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	return m.Called(ctx, id, role).Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, keyword string) ([]domain.User, error) {
	args := m.Called(ctx, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) SearchPage(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error) {
	args := m.Called(ctx, keyword, offset, limit)
	return args.Get(0).([]domain.User), args.Int(1), args.Error(2)
}

func newService() (*userservice.UserService, *MockUserRepository) {
	repo := new(MockUserRepository)
	return userservice.NewService(repo, logger.New(io.Discard, "disabled")), repo
}

func TestRegister_Success(t *testing.T) {
	svc, repo := newService()

	expected := domain.User{Name: "Ana", Email: "ana@hallpoint.dev", Role: domain.RoleUser}
	repo.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == "ana@hallpoint.dev" && u.Role == domain.RoleUser
	})).Return(domain.User{ID: "u-1", Name: "Ana", Email: "ana@hallpoint.dev", Role: domain.RoleUser}, nil)

	user, inserted, err := svc.Register(context.Background(), domain.UserRegistration{Name: "Ana", Email: " ana@hallpoint.dev "})
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, expected.Role, user.Role)
	repo.AssertExpectations(t)
}

func TestRegister_ExistingUserIsNoOp(t *testing.T) {
	svc, repo := newService()
	repo.On("Save", mock.Anything, mock.Anything).Return(domain.User{}, domain.ErrUserExists)

	_, inserted, err := svc.Register(context.Background(), domain.UserRegistration{Email: "ana@hallpoint.dev"})
	assert.NoError(t, err)
	assert.False(t, inserted)
}

func TestRegister_Fail_MissingEmail(t *testing.T) {
	svc, repo := newService()

	_, _, err := svc.Register(context.Background(), domain.UserRegistration{Name: "Ana"})
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestGetByEmail(t *testing.T) {
	svc, repo := newService()
	repo.On("FindByEmail", mock.Anything, "ana@hallpoint.dev").Return(domain.User{Email: "ana@hallpoint.dev"}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@hallpoint.dev").Return(domain.User{}, apperror.NewNotFoundError("x"))

	user, err := svc.GetByEmail(context.Background(), "ana@hallpoint.dev")
	require.NoError(t, err)
	require.NotNil(t, user)

	user, err = svc.GetByEmail(context.Background(), "ghost@hallpoint.dev")
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestGetRole(t *testing.T) {
	svc, repo := newService()
	repo.On("FindByEmail", mock.Anything, "adm@hallpoint.dev").Return(domain.User{Role: domain.RoleAdmin}, nil)
	repo.On("FindByEmail", mock.Anything, "legacy@hallpoint.dev").Return(domain.User{}, nil)
	repo.On("FindByEmail", mock.Anything, "ghost@hallpoint.dev").Return(domain.User{}, apperror.NewNotFoundError("x"))

	role, err := svc.GetRole(context.Background(), "adm@hallpoint.dev")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, role)

	role, err = svc.GetRole(context.Background(), "legacy@hallpoint.dev")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, role)

	_, err = svc.GetRole(context.Background(), "ghost@hallpoint.dev")
	status, _, msg := apperror.MapToHTTPStatus(err)
	assert.Equal(t, 404, status)
	assert.Equal(t, "User not found", msg)

	_, err = svc.GetRole(context.Background(), "")
	status, _, _ = apperror.MapToHTTPStatus(err)
	assert.Equal(t, 400, status)
}

func TestUpdateRole(t *testing.T) {
	svc, repo := newService()
	repo.On("UpdateRole", mock.Anything, "u-1", domain.RoleAdmin).Return(nil)

	assert.NoError(t, svc.UpdateRole(context.Background(), "u-1", domain.RoleAdmin))

	err := svc.UpdateRole(context.Background(), "u-1", domain.UserRole("superuser"))
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)
	repo.AssertNumberOfCalls(t, "UpdateRole", 1)
}

func TestSearch(t *testing.T) {
	svc, repo := newService()
	repo.On("Search", mock.Anything, "ana").Return([]domain.User{{Email: "ana@hallpoint.dev"}}, nil)
	repo.On("Search", mock.Anything, "boom").Return(nil, apperror.NewDBError("select", errors.New("timeout")))

	users, err := svc.Search(context.Background(), " ana ")
	require.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.Search(context.Background(), "   ")
	var validation *apperror.ValidationError
	assert.ErrorAs(t, err, &validation)

	_, err = svc.Search(context.Background(), "boom")
	var internal *apperror.InternalError
	assert.ErrorAs(t, err, &internal)
}

func TestManageUsers(t *testing.T) {
	svc, repo := newService()
	repo.On("SearchPage", mock.Anything, "nadia", 20, 10).Return([]domain.User{{Email: "nadia@hallpoint.dev"}}, 21, nil)
	repo.On("SearchPage", mock.Anything, "", 0, 100).Return([]domain.User{}, 0, nil)

	page, err := svc.ManageUsers(context.Background(), " nadia ", 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 21, page.Total)
	assert.Len(t, page.Users, 1)

	_, err = svc.ManageUsers(context.Background(), "", 0, 500)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestManageUsers_Fail_PageOverflow(t *testing.T) {
	svc, repo := newService()

	_, err := svc.ManageUsers(context.Background(), "", math.MaxInt64/5, 10)
	var validation *apperror.ValidationError
	require.ErrorAs(t, err, &validation)
	repo.AssertNotCalled(t, "SearchPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
