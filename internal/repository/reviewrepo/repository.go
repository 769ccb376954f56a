package reviewrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
)

const reviewColumns = `id, meal_id, meal_title, user_name, email, comment, rating, posted_at`

// refreshMealSQL recalcula os agregados da refeição a partir das avaliações.
const refreshMealSQL = `UPDATE meals SET
        reviews_count = (SELECT COUNT(*) FROM reviews WHERE meal_id = $1),
        rating = COALESCE((SELECT AVG(rating) FROM reviews WHERE meal_id = $1), 0)
    WHERE id = $1`

// ReviewRepository implementa domain.ReviewRepository sobre o PostgreSQL.
type ReviewRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewReviewRepository cria o repositório de avaliações.
func NewReviewRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ReviewRepository {
	return &ReviewRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReview(row rowScanner) (domain.Review, error) {
	var rv domain.Review
	err := row.Scan(
		&rv.ID,
		&rv.MealID,
		&rv.MealTitle,
		&rv.User,
		&rv.Email,
		&rv.Comment,
		&rv.Rating,
		&rv.PostedAt,
	)
	return rv, err
}

// Save insere a avaliação e atualiza reviews_count/rating da refeição na mesma transação.
func (r *ReviewRepository) Save(ctx context.Context, rv domain.Review) (domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	rv.ID = uuid.NewString()
	if rv.PostedAt.IsZero() {
		rv.PostedAt = time.Now().UTC()
	}

	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		insertSQL := `INSERT INTO reviews (` + reviewColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
		_, err := tx.ExecContext(ctxTimeout, insertSQL,
			rv.ID, rv.MealID, rv.MealTitle, rv.User, rv.Email, rv.Comment, rv.Rating, rv.PostedAt)
		if err != nil {
			if database.IsForeignKeyViolation(err) {
				return apperror.NewNotFoundError("Meal not found")
			}
			return apperror.NewDBError("failed to insert review", err)
		}
		if _, err := tx.ExecContext(ctxTimeout, refreshMealSQL, rv.MealID); err != nil {
			return apperror.NewDBError("failed to refresh meal rating", err)
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, r.txError("Falha ao salvar avaliação.", err)
	}

	r.logger.Info("Avaliação registrada.", map[string]interface{}{"review_id": rv.ID, "meal_id": rv.MealID})
	return rv, nil
}

// FindByID busca uma avaliação pelo ID.
func (r *ReviewRepository) FindByID(ctx context.Context, id string) (domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	rv, err := scanReview(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Review{}, apperror.NewNotFoundError("Review not found")
		}
		r.logger.Error("Falha ao buscar avaliação.", err)
		return domain.Review{}, apperror.NewDBError("failed to find review", err)
	}
	return rv, nil
}

// FindAll retorna uma página de todas as avaliações (mais recentes primeiro) e o total.
func (r *ReviewRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.Review, int, error) {
	return r.page(ctx, "", nil, offset, limit)
}

// FindByEmail retorna uma página das avaliações de um usuário e o total.
func (r *ReviewRepository) FindByEmail(ctx context.Context, email string, offset, limit int) ([]domain.Review, int, error) {
	return r.page(ctx, " WHERE email = $1", []interface{}{email}, offset, limit)
}

// FindByMeal lista as avaliações de uma refeição (mais recentes primeiro).
func (r *ReviewRepository) FindByMeal(ctx context.Context, mealID string) ([]domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE meal_id = $1 ORDER BY posted_at DESC`
	return r.query(ctxTimeout, query, mealID)
}

// Update altera comentário e/ou nota e recalcula a nota da refeição.
func (r *ReviewRepository) Update(ctx context.Context, id string, patch domain.ReviewPatch) (domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	if patch.Comment != nil {
		args = append(args, *patch.Comment)
		sets = append(sets, fmt.Sprintf("comment = $%d", len(args)))
	}
	if patch.Rating != nil {
		args = append(args, *patch.Rating)
		sets = append(sets, fmt.Sprintf("rating = $%d", len(args)))
	}
	if len(sets) == 0 {
		return domain.Review{}, apperror.NewValidationError("No fields to update")
	}
	args = append(args, id)

	var updated domain.Review
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		updateSQL := fmt.Sprintf(`UPDATE reviews SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), reviewColumns)

		var err error
		updated, err = scanReview(tx.QueryRowContext(ctxTimeout, updateSQL, args...))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NewNotFoundError("Review not found or no change made.")
			}
			return apperror.NewDBError("failed to update review", err)
		}
		if _, err := tx.ExecContext(ctxTimeout, refreshMealSQL, updated.MealID); err != nil {
			return apperror.NewDBError("failed to refresh meal rating", err)
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, r.txError("Falha ao atualizar avaliação.", err)
	}
	return updated, nil
}

// Delete remove a avaliação e recalcula os agregados da refeição. Retorna o registro removido.
func (r *ReviewRepository) Delete(ctx context.Context, id string) (domain.Review, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var deleted domain.Review
	err := database.WithTx(ctxTimeout, r.DB, func(tx *sql.Tx) error {
		var err error
		deleted, err = scanReview(tx.QueryRowContext(ctxTimeout,
			`DELETE FROM reviews WHERE id = $1 RETURNING `+reviewColumns, id))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NewNotFoundError("Review not found")
			}
			return apperror.NewDBError("failed to delete review", err)
		}
		if _, err := tx.ExecContext(ctxTimeout, refreshMealSQL, deleted.MealID); err != nil {
			return apperror.NewDBError("failed to refresh meal rating", err)
		}
		return nil
	})
	if err != nil {
		return domain.Review{}, r.txError("Falha ao remover avaliação.", err)
	}

	r.logger.Info("Avaliação removida.", map[string]interface{}{"review_id": id, "meal_id": deleted.MealID})
	return deleted, nil
}

func (r *ReviewRepository) page(ctx context.Context, where string, args []interface{}, offset, limit int) ([]domain.Review, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM reviews`+where, args...).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar avaliações.", err)
		return nil, 0, apperror.NewDBError("failed to count reviews", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews%s ORDER BY posted_at DESC, id OFFSET $%d LIMIT $%d`,
		reviewColumns, where, len(args)+1, len(args)+2)
	reviews, err := r.query(ctxTimeout, query, append(args, offset, limit)...)
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar avaliações.", err)
		return nil, apperror.NewDBError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := []domain.Review{}
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan review", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// txError registra falhas inesperadas e garante que o erro retornado seja tipado.
func (r *ReviewRepository) txError(msg string, err error) error {
	var appErr apperror.AppError
	if !errors.As(err, &appErr) {
		r.logger.Error(msg, err)
		return apperror.NewDBError("review transaction failed", err)
	}
	if appErr.HTTPStatus() >= 500 {
		r.logger.Error(msg, err)
	}
	return err
}
