package mealrepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/cache"
	"hallpoint/internal/pkg/database"
	"hallpoint/internal/pkg/logger"
)

const mealColumns = `id, title, category, cuisine, image, ingredients, description, price, prep_time,
	distributor_name, distributor_email, likes, rating, reviews_count, posted_at`

// mealCacheKey é a chave de cache de uma refeição publicada.
const mealCacheKey = "meal:%s"

// MealRepository implementa domain.MealRepository (PostgreSQL + cache-aside no Redis).
type MealRepository struct {
	DB        *sql.DB
	Cache     cache.Client // opcional
	DBTimeout time.Duration
	CacheTTL  time.Duration
	logger    logger.Logger
}

// NewMealRepository cria o repositório do catálogo. cacheClient pode ser nil.
func NewMealRepository(db *sql.DB, cacheClient cache.Client, dbTimeout, cacheTTL time.Duration, logger logger.Logger) *MealRepository {
	return &MealRepository{
		DB:        db,
		Cache:     cacheClient,
		DBTimeout: dbTimeout,
		CacheTTL:  cacheTTL,
		logger:    logger,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMeal(row rowScanner) (domain.Meal, error) {
	var m domain.Meal
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
		&m.Likes,
		&m.Rating,
		&m.ReviewsCount,
		&m.PostedAt,
	)
	if m.Ingredients == nil {
		m.Ingredients = []string{}
	}
	return m, err
}

// Save insere uma refeição diretamente no catálogo.
func (r *MealRepository) Save(ctx context.Context, m domain.Meal) (domain.Meal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	m.ID = uuid.NewString()
	if m.Ingredients == nil {
		m.Ingredients = []string{}
	}
	if m.PostedAt.IsZero() {
		m.PostedAt = time.Now().UTC()
	}

	insertSQL := `INSERT INTO meals (` + mealColumns + `)
                  VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

	_, err := r.DB.ExecContext(ctxTimeout, insertSQL,
		m.ID, m.Title, m.Category, m.Cuisine, m.Image, pq.Array(m.Ingredients), m.Description,
		m.Price, m.PrepTime, m.DistributorName, m.DistributorEmail, m.Likes, m.Rating,
		m.ReviewsCount, m.PostedAt,
	)
	if err != nil {
		r.logger.Error("Falha ao inserir refeição no DB.", err)
		return domain.Meal{}, apperror.NewDBError("failed to insert meal", err)
	}

	r.logger.Info("Refeição salva no catálogo.", map[string]interface{}{"meal_id": m.ID, "title": m.Title})
	return m, nil
}

// FindByID busca uma refeição pelo ID, utilizando a estratégia Cache-Aside.
func (r *MealRepository) FindByID(ctx context.Context, id string) (domain.Meal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	key := fmt.Sprintf(mealCacheKey, id)

	// 1. Cache (READ)
	if r.Cache != nil {
		cached, err := r.Cache.Get(ctxTimeout, key)
		if err == nil {
			var meal domain.Meal
			if json.Unmarshal([]byte(cached), &meal) == nil {
				r.logger.Debug("Cache hit de refeição.", map[string]interface{}{"meal_id": id})
				return meal, nil
			}
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("Falha ao ler refeição do cache; seguindo para o DB.", map[string]interface{}{"meal_id": id, "error": err.Error()})
		}
	}

	// 2. Banco de Dados
	query := `SELECT ` + mealColumns + ` FROM meals WHERE id = $1`
	meal, err := scanMeal(r.DB.QueryRowContext(ctxTimeout, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Meal{}, apperror.NewNotFoundError("Meal not found")
		}
		r.logger.Error("Falha ao buscar refeição no DB.", err)
		return domain.Meal{}, apperror.NewDBError("failed to find meal", err)
	}

	// 3. Cache (WRITE)
	if r.Cache != nil {
		if payload, err := json.Marshal(meal); err == nil {
			if err := r.Cache.Set(ctxTimeout, key, payload, r.CacheTTL); err != nil {
				r.logger.Warn("Falha ao gravar refeição no cache.", map[string]interface{}{"meal_id": id, "error": err.Error()})
			}
		}
	}

	return meal, nil
}

// FindAll aplica filtro e paginação (page começa em 0) e retorna também o total filtrado.
func (r *MealRepository) FindAll(ctx context.Context, filter domain.MealFilter) ([]domain.Meal, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var conds []string
	var args []interface{}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Search != "" {
		add("title ILIKE $%d", database.ContainsPattern(filter.Search))
	}
	if filter.Category != "" {
		add("category = $%d", filter.Category)
	}
	if filter.MinPrice != nil {
		add("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("price <= $%d", *filter.MaxPrice)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM meals`+where, args...).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar refeições.", err)
		return nil, 0, apperror.NewDBError("failed to count meals", err)
	}

	pageArgs := append(args, filter.Offset, filter.Limit)
	query := fmt.Sprintf(`SELECT %s FROM meals%s ORDER BY posted_at DESC, id OFFSET $%d LIMIT $%d`,
		mealColumns, where, len(args)+1, len(args)+2)

	meals, err := r.query(ctxTimeout, query, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// FindByDistributor lista as refeições publicadas por um distribuidor.
func (r *MealRepository) FindByDistributor(ctx context.Context, email string) ([]domain.Meal, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + mealColumns + ` FROM meals WHERE distributor_email = $1 ORDER BY posted_at DESC`
	return r.query(ctxTimeout, query, email)
}

// FindSorted retorna uma página do catálogo por curtidas e avaliações (desc) e o total.
func (r *MealRepository) FindSorted(ctx context.Context, offset, limit int) ([]domain.Meal, int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var total int
	if err := r.DB.QueryRowContext(ctxTimeout, `SELECT COUNT(*) FROM meals`).Scan(&total); err != nil {
		r.logger.Error("Falha ao contar refeições.", err)
		return nil, 0, apperror.NewDBError("failed to count meals", err)
	}

	query := `SELECT ` + mealColumns + ` FROM meals
              ORDER BY likes DESC, reviews_count DESC, posted_at DESC
              OFFSET $1 LIMIT $2`
	meals, err := r.query(ctxTimeout, query, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	return meals, total, nil
}

// Update aplica os campos informados em patch. Nenhuma linha alterada vira NotFoundError.
func (r *MealRepository) Update(ctx context.Context, id string, patch domain.MealSubmission) error {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var sets []string
	var args []interface{}
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Cuisine != nil {
		set("cuisine", *patch.Cuisine)
	}
	if patch.Image != nil {
		set("image", *patch.Image)
	}
	if patch.Ingredients != nil {
		set("ingredients", pq.Array(patch.Ingredients))
	}
	if patch.Description != nil {
		set("description", *patch.Description)
	}
	if patch.Price != nil {
		set("price", *patch.Price)
	}
	if patch.PrepTime != nil {
		set("prep_time", *patch.PrepTime)
	}
	if patch.DistributorName != nil {
		set("distributor_name", *patch.DistributorName)
	}
	if patch.DistributorEmail != nil {
		set("distributor_email", *patch.DistributorEmail)
	}
	if len(sets) == 0 {
		return apperror.NewValidationError("No fields to update")
	}

	args = append(args, id)
	updateSQL := fmt.Sprintf(`UPDATE meals SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	res, err := r.DB.ExecContext(ctxTimeout, updateSQL, args...)
	if err != nil {
		r.logger.Error("Falha ao atualizar refeição.", err)
		return apperror.NewDBError("failed to update meal", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewDBError("failed to read rows affected", err)
	}
	if affected == 0 {
		return apperror.NewNotFoundError("Meal not found or already updated")
	}

	r.Invalidate(ctxTimeout, id)
	r.logger.Info("Refeição atualizada.", map[string]interface{}{"meal_id": id, "fields": len(sets)})
	return nil
}

// Delete remove a refeição (avaliações e pedidos caem junto via ON DELETE CASCADE).
func (r *MealRepository) Delete(ctx context.Context, id string) (int64, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM meals WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao remover refeição.", err)
		return 0, apperror.NewDBError("failed to delete meal", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, apperror.NewDBError("failed to read rows affected", err)
	}

	r.Invalidate(ctxTimeout, id)
	return deleted, nil
}

// Like incrementa as curtidas de uma refeição publicada e retorna o novo total.
func (r *MealRepository) Like(ctx context.Context, id string) (int, error) {
	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	var likes int
	err := r.DB.QueryRowContext(ctxTimeout,
		`UPDATE meals SET likes = likes + 1 WHERE id = $1 RETURNING likes`, id).Scan(&likes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperror.NewNotFoundError("Meal not found or already liked")
		}
		r.logger.Error("Falha ao curtir refeição.", err)
		return 0, apperror.NewDBError("failed to like meal", err)
	}

	r.Invalidate(ctxTimeout, id)
	return likes, nil
}

// Invalidate remove a refeição do cache. Falhas só geram log: a entrada expira pelo TTL.
func (r *MealRepository) Invalidate(ctx context.Context, id string) {
	if r.Cache == nil {
		return
	}
	if err := r.Cache.Delete(ctx, fmt.Sprintf(mealCacheKey, id)); err != nil {
		r.logger.Warn("Falha ao invalidar refeição no cache.", map[string]interface{}{"meal_id": id, "error": err.Error()})
	}
}

func (r *MealRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Meal, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Falha ao listar refeições.", err)
		return nil, apperror.NewDBError("failed to list meals", err)
	}
	defer rows.Close()

	meals := []domain.Meal{}
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			return nil, apperror.NewDBError("failed to scan meal", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDBError("failed to iterate meals", err)
	}
	return meals, nil
}
