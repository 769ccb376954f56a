package userrepo

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

const userColumns = `id, name, email, role, badge, created_at, updated_at`

// UserRepository implementa a interface domain.UserRepository sobre o PostgreSQL.
type UserRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewUserRepository cria uma nova instância do UserRepository, injetando o DB.
func NewUserRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *UserRepository {
	return &UserRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var user domain.User
	var badge sql.NullString
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&badge,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if badge.Valid {
		user.Badge = &badge.String
	}
	return user, err
}

// Save insere um novo usuário. E-mail já cadastrado retorna domain.ErrUserExists.
func (r *UserRepository) Save(ctx context.Context, user domain.User) (domain.User, error) {
	r.logger.Debug("Iniciando Save de usuário no repositório.", map[string]interface{}{"email": user.Email})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	if user.Role == "" {
		user.Role = domain.RoleUser
	}

	const insertSQL = `INSERT INTO users (id, name, email, role, badge, created_at, updated_at)
                       VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		user.ID,
		user.Name,
		user.Email,
		user.Role,
		user.Badge,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			r.logger.Debug("E-mail já cadastrado.", map[string]interface{}{"email": user.Email})
			return domain.User{}, domain.ErrUserExists
		}
		r.logger.Error("Falha ao inserir usuário no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to insert user", err)
	}

	r.logger.Info("Usuário salvo com sucesso no repositório.", map[string]interface{}{"user_id": user.ID, "email": user.Email})
	return user, nil
}

// FindByEmail busca um usuário pelo endereço de e-mail.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.DB.QueryRowContext(ctxTimeout, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email '%s' não encontrado", email))
		}
		r.logger.Error("Falha ao buscar usuário por email no DB.", err)
		return domain.User{}, apperror.NewDBError("failed to find user by email", err)
	}

	return user, nil
}

// UpdateRole altera o papel do usuário. Nenhuma linha afetada (id inexistente ou papel
// igual ao atual) vira NotFoundError.
func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.UserRole) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	const updateSQL = `UPDATE users SET role = $1, updated_at = NOW() WHERE id = $2 AND role <> $1`

	res, err := r.DB.ExecContext(ctxTimeout, updateSQL, role, id)
	if err != nil {
		r.logger.Error("Falha ao atualizar papel do usuário.", err)
		return apperror.NewDBError("failed to update user role", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read rows affected", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("User not found or role unchanged.")
	}

	r.logger.Info("Papel do usuário atualizado.", map[string]interface{}{"user_id": id, "role": role})
	return nil
}

// Search busca usuários cujo nome ou e-mail contenha keyword (sem diferenciar maiúsculas).
// % e _ na keyword são tratados como texto.
func (r *UserRepository) Search(ctx context.Context, keyword string) ([]domain.User, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + userColumns + ` FROM users
              WHERE name ILIKE $1 OR email ILIKE $1
              ORDER BY name, email`

	return r.query(ctxTimeout, query, database.ContainsPattern(keyword))
}

// SearchPage é a versão paginada de Search usada na gestão de usuários.
// Keyword vazia lista todos.
func (r *UserRepository) SearchPage(ctx context.Context, keyword string, offset, limit int) ([]domain.User, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	pattern := database.ContainsPattern(keyword)

	var total int
	countSQL := `SELECT COUNT(*) FROM users WHERE name ILIKE $1 OR email ILIKE $1`
	if err := r.DB.QueryRowContext(ctxTimeout, countSQL, pattern).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar usuários.", err)
		return nil, 0, apperror.NewDBError("failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users
              WHERE name ILIKE $1 OR email ILIKE $1
              ORDER BY created_at DESC, email
              OFFSET $2 LIMIT $3`

	users, err := r.query(ctxTimeout, query, pattern, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *UserRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Falha ao buscar usuários.", err)
		return nil, apperror.NewDBError("failed to search users", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate users", err)
	}

	return users, nil
}
