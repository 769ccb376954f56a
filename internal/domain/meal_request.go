package domain

import (
	"context"
	"time"
)

// Status de um pedido de refeição.
const (
	RequestPending = "pending"
	RequestServing = "on serving"
)

// MealRequest é o pedido de um usuário por uma refeição do catálogo.
type MealRequest struct {
	ID          string    `json:"id"`
	MealID      string    `json:"mealId"`
	MealTitle   string    `json:"mealTitle"`
	UserEmail   string    `json:"userEmail"`
	UserName    string    `json:"userName"`
	Status      string    `json:"status"`
	RequestedAt time.Time `json:"requested_at"`
}

// MealRequestSubmission é o payload de POST /meal-requests.
type MealRequestSubmission struct {
	MealID    string `json:"mealId"`
	MealTitle string `json:"mealTitle"`
	UserEmail string `json:"userEmail"`
	UserName  string `json:"userName"`
}

// MealRequestPage é uma página de pedidos (page começa em 1).
type MealRequestPage struct {
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Data       []MealRequest `json:"data"`
}

// MealRequestRepository define o contrato de persistência dos pedidos.
type MealRequestRepository interface {
	// Save retorna ErrRequestExists para o mesmo par (refeição, usuário) e
	// NotFoundError quando a refeição não existe.
	Save(ctx context.Context, request MealRequest) (MealRequest, error)
	Exists(ctx context.Context, mealID, userEmail string) (bool, error)
	FindByID(ctx context.Context, id string) (MealRequest, error)
	FindByUser(ctx context.Context, userEmail string, offset, limit int) ([]MealRequest, int, error)
	FindAll(ctx context.Context, offset, limit int) ([]MealRequest, int, error)
	SearchByEmail(ctx context.Context, keyword string, offset, limit int) ([]MealRequest, int, error)
	MarkServing(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (int64, error)
}
