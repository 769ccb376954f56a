package domain

import (
	"context"
	"time"
)

// Review é a avaliação de um usuário sobre uma refeição publicada.
type Review struct {
	ID        string    `json:"id"`
	MealID    string    `json:"mealId"`
	MealTitle string    `json:"mealTitle"`
	User      string    `json:"user"`
	Email     string    `json:"email"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	PostedAt  time.Time `json:"posted_at"`
}

// ReviewSubmission é o payload de POST /meals/{id}/reviews.
type ReviewSubmission struct {
	MealTitle string `json:"mealTitle"`
	User      string `json:"user"`
	Email     string `json:"email"`
	Comment   string `json:"comment"`
	Rating    *int   `json:"rating"`
}

// ReviewPatch é o payload de PATCH /reviews/{id}; campos nulos não mudam.
type ReviewPatch struct {
	Comment *string `json:"comment"`
	Rating  *int    `json:"rating"`
}

// ReviewPage é uma página de avaliações (page começa em 1).
type ReviewPage struct {
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"totalPages"`
	Reviews    []Review `json:"reviews"`
}

// Limites da nota de uma avaliação.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewRepository define o contrato de persistência das avaliações.
// Save, Update e Delete recalculam reviews_count e rating da refeição na mesma transação.
type ReviewRepository interface {
	// Save retorna NotFoundError quando a refeição não existe.
	Save(ctx context.Context, review Review) (Review, error)
	FindByID(ctx context.Context, id string) (Review, error)
	FindAll(ctx context.Context, offset, limit int) ([]Review, int, error)
	FindByEmail(ctx context.Context, email string, offset, limit int) ([]Review, int, error)
	FindByMeal(ctx context.Context, mealID string) ([]Review, error)
	Update(ctx context.Context, id string, patch ReviewPatch) (Review, error)
	Delete(ctx context.Context, id string) (Review, error)
}
