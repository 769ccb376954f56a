package mealrequestrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
)

const requestColumns = `id, meal_id, meal_title, user_email, user_name, status, requested_at`

// MealRequestRepository implementa domain.MealRequestRepository sobre o PostgreSQL.
type MealRequestRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewMealRequestRepository cria o repositório de pedidos de refeição.
func NewMealRequestRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *MealRequestRepository {
	return &MealRequestRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(row rowScanner) (domain.MealRequest, error) {
	var mr domain.MealRequest
	err := row.Scan(
		&mr.ID,
		&mr.MealID,
		&mr.MealTitle,
		&mr.UserEmail,
		&mr.UserName,
		&mr.Status,
		&mr.RequestedAt,
	)
	return mr, err
}

// Save registra um pedido pendente. A restrição UNIQUE (meal_id, user_email) impede duplicatas.
func (r *MealRequestRepository) Save(ctx context.Context, mr domain.MealRequest) (domain.MealRequest, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	mr.ID = uuid.NewString()
	mr.Status = domain.RequestPending
	if mr.RequestedAt.IsZero() {
		mr.RequestedAt = time.Now().UTC()
	}

	query := `INSERT INTO meal_requests (` + requestColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7)`
	_, err := r.DB.ExecContext(ctxTimeout, query,
		mr.ID, mr.MealID, mr.MealTitle, mr.UserEmail, mr.UserName, mr.Status, mr.RequestedAt)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return domain.MealRequest{}, domain.ErrRequestExists
		case database.IsForeignKeyViolation(err):
			return domain.MealRequest{}, apperror.NewNotFoundError("Meal not found")
		}
		r.logger.Error("Falha ao salvar pedido de refeição.", err)
		return domain.MealRequest{}, apperror.NewDBError("failed to insert meal request", err)
	}

	r.logger.Info("Pedido de refeição registrado.", map[string]interface{}{"request_id": mr.ID, "meal_id": mr.MealID})
	return mr, nil
}

// Exists indica se o usuário já pediu a refeição.
func (r *MealRequestRepository) Exists(ctx context.Context, mealID, userEmail string) (bool, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var exists bool
	err := r.DB.QueryRowContext(ctxTimeout,
		`SELECT EXISTS (SELECT 1 FROM meal_requests WHERE meal_id = $1 AND user_email = $2)`,
		mealID, userEmail).Scan(&exists)
	if err != nil {
		r.logger.Error("Falha ao verificar pedido de refeição.", err)
		return false, apperror.NewDBError("failed to check meal request", err)
	}
	return exists, nil
}

// FindByID busca um pedido pelo ID.
func (r *MealRequestRepository) FindByID(ctx context.Context, id string) (domain.MealRequest, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	mr, err := scanRequest(r.DB.QueryRowContext(ctxTimeout,
		`SELECT `+requestColumns+` FROM meal_requests WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MealRequest{}, apperror.NewNotFoundError("Meal request not found")
		}
		r.logger.Error("Falha ao buscar pedido de refeição.", err)
		return domain.MealRequest{}, apperror.NewDBError("failed to find meal request", err)
	}
	return mr, nil
}

// FindByUser retorna uma página dos pedidos do usuário e o total.
func (r *MealRequestRepository) FindByUser(ctx context.Context, userEmail string, offset, limit int) ([]domain.MealRequest, int, error) {
	return r.page(ctx, " WHERE user_email = $1", []interface{}{userEmail}, offset, limit)
}

// FindAll retorna uma página de todos os pedidos e o total.
func (r *MealRequestRepository) FindAll(ctx context.Context, offset, limit int) ([]domain.MealRequest, int, error) {
	return r.page(ctx, "", nil, offset, limit)
}

// SearchByEmail filtra os pedidos por e-mail (ILIKE, curingas tratados como texto).
func (r *MealRequestRepository) SearchByEmail(ctx context.Context, keyword string, offset, limit int) ([]domain.MealRequest, int, error) {
	return r.page(ctx, " WHERE user_email ILIKE $1", []interface{}{database.ContainsPattern(keyword)}, offset, limit)
}

// MarkServing muda o status do pedido para "on serving".
func (r *MealRequestRepository) MarkServing(ctx context.Context, id string) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout,
		`UPDATE meal_requests SET status = $1 WHERE id = $2`, domain.RequestServing, id)
	if err != nil {
		r.logger.Error("Falha ao atualizar pedido de refeição.", err)
		return apperror.NewDBError("failed to update meal request", err)
	}
	updated, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read rows affected", err)
	}
	if updated == 0 {
		return apperror.NewNotFoundError("Meal request not found")
	}
	return nil
}

// Delete remove o pedido e retorna quantas linhas foram removidas.
func (r *MealRequestRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM meal_requests WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover pedido de refeição.", err)
		return 0, apperror.NewDBError("failed to delete meal request", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewDBError("failed to read rows affected", err)
	}
	return deleted, nil
}

func (r *MealRequestRepository) page(ctx context.Context, where string, args []interface{}, offset, limit int) ([]domain.MealRequest, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM meal_requests`+where, args...).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar pedidos de refeição.", err)
		return nil, 0, apperror.NewDBError("failed to count meal requests", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM meal_requests%s ORDER BY requested_at DESC, id OFFSET $%d LIMIT $%d`,
		requestColumns, where, len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctxTimeout, query, append(args, offset, limit)...)
	if err != nil {
		r.logger.Error("Falha ao listar pedidos de refeição.", err)
		return nil, 0, apperror.NewDBError("failed to list meal requests", err)
	}
	defer rows.Close()

	requests := []domain.MealRequest{}
	for rows.Next() {
		mr, err := scanRequest(rows)
		if err != nil {
			return nil, 0, apperror.NewDBError("failed to scan meal request", err)
		}
		requests = append(requests, mr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewDBError("failed to iterate meal requests", err)
	}
	return requests, total, nil
}
