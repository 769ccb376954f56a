package upcomingrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
)

const upcomingColumns = `id, title, category, cuisine, image, ingredients, description, price, prep_time,
	distributor_name, distributor_email, status, likes, liked_by, rating, reviews_count, posted_at`

// UpcomingMealRepository implementa domain.UpcomingMealRepository sobre o PostgreSQL.
type UpcomingMealRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUpcomingMealRepository cria o repositório de refeições candidatas.
func NewUpcomingMealRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UpcomingMealRepository {
	return &UpcomingMealRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUpcoming(row rowScanner) (domain.UpcomingMeal, error) {
	var m domain.UpcomingMeal
	err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Category,
		&m.Cuisine,
		&m.Image,
		pq.Array(&m.Ingredients),
		&m.Description,
		&m.Price,
		&m.PrepTime,
		&m.DistributorName,
		&m.DistributorEmail,
		&m.Status,
		&m.Likes,
		pq.Array(&m.LikedBy),
		&m.Rating,
		&m.ReviewsCount,
		&m.PostedAt,
	)
	if m.Ingredients == nil {
		m.Ingredients = []string{}
	}
	if m.LikedBy == nil {
		m.LikedBy = []string{}
	}
	return m, err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// Save insere um candidato novo. ID, status e contadores são definidos aqui.
func (r *UpcomingMealRepository) Save(ctx context.Context, m domain.UpcomingMeal) (domain.UpcomingMeal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	m.ID = uuid.NewString()
	m.Status = domain.StatusUpcoming
	m.Likes = 0
	m.LikedBy = []string{}
	m.Rating = 0
	m.ReviewsCount = 0
	m.Ingredients = nonNil(m.Ingredients)
	if m.PostedAt.IsZero() {
		m.PostedAt = time.Now().UTC()
	}

	insertSQL := `INSERT INTO upcoming_meals (` + upcomingColumns + `)
                  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		m.ID, m.Title, m.Category, m.Cuisine, m.Image, pq.Array(m.Ingredients), m.Description,
		m.Price, m.PrepTime, m.DistributorName, m.DistributorEmail, m.Status, m.Likes,
		pq.Array(m.LikedBy), m.Rating, m.ReviewsCount, m.PostedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir refeição candidata no DB.", err)
		return domain.UpcomingMeal{}, apperror.NewDBError("failed to insert upcoming meal", err)
	}

	r.logger.Info("Refeição candidata salva.", map[string]interface{}{"meal_id": m.ID, "title": m.Title})
	return m, nil
}

// FindByID busca um candidato pelo ID.
func (r *UpcomingMealRepository) FindByID(ctx context.Context, id string) (domain.UpcomingMeal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + upcomingColumns + ` FROM upcoming_meals WHERE id = $1`

	m, err := scanUpcoming(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UpcomingMeal{}, apperror.NewNotFoundError(fmt.Sprintf("Refeição candidata %s não existe.", id))
		}
		r.logger.Error("Falha ao buscar refeição candidata.", err)
		return domain.UpcomingMeal{}, apperror.NewDBError("failed to find upcoming meal", err)
	}
	return m, nil
}

// FindAll lista todos os candidatos (mais recentes primeiro).
func (r *UpcomingMealRepository) FindAll(ctx context.Context) ([]domain.UpcomingMeal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + upcomingColumns + ` FROM upcoming_meals ORDER BY posted_at DESC`
	return r.query(ctxTimeout, query)
}

// FindSortedByLikes retorna uma página de candidatos por curtidas (desc) e o total.
func (r *UpcomingMealRepository) FindSortedByLikes(ctx context.Context, offset, limit int) ([]domain.UpcomingMeal, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM upcoming_meals`).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar refeições candidatas.", err)
		return nil, 0, apperror.NewDBError("failed to count upcoming meals", err)
	}

	query := `SELECT ` + upcomingColumns + ` FROM upcoming_meals
              ORDER BY likes DESC, posted_at DESC
              OFFSET $1 LIMIT $2`
	meals, err := r.query(ctxTimeout, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

func (r *UpcomingMealRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.UpcomingMeal, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar refeições candidatas.", err)
		return nil, apperror.NewDBError("failed to list upcoming meals", err)
	}
	defer rows.Close()

	meals := []domain.UpcomingMeal{}
	for rows.Next() {
		m, err := scanUpcoming(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan upcoming meal", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate upcoming meals", err)
	}
	return meals, nil
}

// Delete remove o candidato e retorna quantas linhas foram apagadas (0 ou 1).
func (r *UpcomingMealRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM upcoming_meals WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover refeição candidata.", err)
		return 0, apperror.NewDBError("failed to delete upcoming meal", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewDBError("failed to read rows affected", err)
	}
	return deleted, nil
}

// AddVote aplica o voto numa única instrução condicional: só incrementa se o e-mail
// ainda não estiver em liked_by. Sem linha retornada => domain.ErrVoteNotApplied.
func (r *UpcomingMealRepository) AddVote(ctx context.Context, id, email string) (domain.UpcomingMeal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	updateSQL := `UPDATE upcoming_meals
                  SET likes = likes + 1, liked_by = array_append(liked_by, $2::text)
                  WHERE id = $1 AND NOT ($2::text = ANY(liked_by))
                  RETURNING ` + upcomingColumns

	m, err := scanUpcoming(r.DB.QueryRowContext(ctxTimeout, updateSQL, id, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.UpcomingMeal{}, domain.ErrVoteNotApplied
		}
		r.logger.Error("Falha ao registrar voto.", err)
		return domain.UpcomingMeal{}, apperror.NewDBError("failed to add vote", err)
	}

	r.logger.Debug("Voto registrado.", map[string]interface{}{"meal_id": id, "likes": m.Likes})
	return m, nil
}

// Publish move o candidato para o catálogo: DELETE + INSERT na mesma transação.
// Se outro voto concorrente já publicou, retorna domain.ErrCandidateGone e nada é inserido.
func (r *UpcomingMealRepository) Publish(ctx context.Context, candidateID string, meal domain.Meal) (domain.Meal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	meal.ID = uuid.NewString()
	meal.Ingredients = nonNil(meal.Ingredients)

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctxTimeout, `DELETE FROM upcoming_meals WHERE id = $1`, candidateID)
		if err != nil {
			return apperror.NewDBError("failed to delete promoted candidate", err)
		}
		deleted, err := res.RowsAffected()
		if err != nil {
			return apperror.NewDBError("failed to read rows affected", err)
		}
		if deleted == 0 {
			return domain.ErrCandidateGone
		}

		const insertSQL = `INSERT INTO meals (id, title, category, cuisine, image, ingredients, description,
                               price, prep_time, distributor_name, distributor_email, likes, rating, reviews_count, posted_at)
                           VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`
		_, err = tx.ExecContext(ctxTimeout, insertSQL,
			meal.ID, meal.Title, meal.Category, meal.Cuisine, meal.Image, pq.Array(meal.Ingredients),
			meal.Description, meal.Price, meal.PrepTime, meal.DistributorName, meal.DistributorEmail,
			meal.Likes, meal.Rating, meal.ReviewsCount, meal.PostedAt,
		)
		if err != nil {
			return apperror.NewDBError("failed to insert published meal", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrCandidateGone) {
			return domain.Meal{}, err
		}
		r.logger.Error("Falha ao publicar refeição candidata.", err)
		var appErr apperror.AppError
		if !errors.As(err, &appErr) {
			err = apperror.NewDBError("failed to publish meal", err)
		}
		return domain.Meal{}, err
	}

	r.logger.Info("Refeição publicada no catálogo.", map[string]interface{}{"candidate_id": candidateID, "meal_id": meal.ID})
	return meal, nil
}
