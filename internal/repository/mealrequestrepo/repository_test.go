package mealrequestrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/repository/mealrepo"
	"hallpoint/internal/repository/mealrequestrepo"
	"hallpoint/internal/testutil"
)

func setup(t *testing.T) (*mealrequestrepo.MealRequestRepository, domain.Meal) {
	db := testutil.SetupTestDB(t)
	log := testutil.QuietLogger()
	meals := mealrepo.NewMealRepository(db, nil, 5*time.Second, time.Minute, log)
	m, err := meals.Save(context.Background(), domain.Meal{
		Title:            "Biryani",
		Category:         "Lunch",
		Ingredients:      []string{"rice"},
		Price:            10,
		DistributorEmail: "admin@hallpoint.dev",
	})
	require.NoError(t, err)
	return mealrequestrepo.NewMealRequestRepository(db, 5*time.Second, log), m
}

func request(mealID, email string) domain.MealRequest {
	return domain.MealRequest{MealID: mealID, MealTitle: "Biryani", UserEmail: email, UserName: "Nadia"}
}

func TestMealRequestRepository_SaveAndExists(t *testing.T) {
	repo, m := setup(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, request(m.ID, "nadia@hallpoint.dev"))
	require.NoError(t, err)
	assert.Equal(t, domain.RequestPending, saved.Status)

	exists, err := repo.Exists(ctx, m.ID, "nadia@hallpoint.dev")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, m.ID, "rafi@hallpoint.dev")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Save(ctx, request(m.ID, "nadia@hallpoint.dev"))
	assert.ErrorIs(t, err, domain.ErrRequestExists)
}

func TestMealRequestRepository_Save_UnknownMeal(t *testing.T) {
	repo, _ := setup(t)

	_, err := repo.Save(context.Background(), request("nao-existe", "nadia@hallpoint.dev"))
	var notFound *apperror.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestMealRequestRepository_PagesAndSearch(t *testing.T) {
	repo, m := setup(t)
	ctx := context.Background()

	for _, email := range []string{"nadia@hallpoint.dev", "rafi@hallpoint.dev", "nadia_k@hallpoint.dev"} {
		_, err := repo.Save(ctx, request(m.ID, email))
		require.NoError(t, err)
	}

	all, total, err := repo.FindAll(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 2)

	mine, total, err := repo.FindByUser(ctx, "rafi@hallpoint.dev", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, mine, 1)

	found, total, err := repo.SearchByEmail(ctx, "NADIA", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, found, 2)

	underscore, total, err := repo.SearchByEmail(ctx, "_", 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, underscore, 1)
	assert.Equal(t, "nadia_k@hallpoint.dev", underscore[0].UserEmail)
}

func TestMealRequestRepository_ServeAndDelete(t *testing.T) {
	repo, m := setup(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, request(m.ID, "nadia@hallpoint.dev"))
	require.NoError(t, err)

	require.NoError(t, repo.MarkServing(ctx, saved.ID))
	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RequestServing, got.Status)

	deleted, err := repo.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.Delete(ctx, saved.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)

	var notFound *apperror.NotFoundError
	err = repo.MarkServing(ctx, saved.ID)
	require.ErrorAs(t, err, &notFound)
	_, err = repo.FindByID(ctx, saved.ID)
	require.ErrorAs(t, err, &notFound)
}
