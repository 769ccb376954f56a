package domain

import (
	"context"
	"time"
)

// User representa a entidade do usuário no diretório.
// A autenticação em si acontece no provedor de identidade do front-end; aqui só chega o e-mail.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      UserRole  `json:"role"`
	Badge     *string   `json:"badge"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserRole é um tipo string para representar o papel do usuário no sistema.
type UserRole string

// Constantes para os papéis de usuário
const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// IsValid indica se o papel pertence ao conjunto aceito (admin, user).
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserRegistration representa o payload de entrada para o registro.
type UserRegistration struct {
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Badge *string `json:"badge"`
}

// RoleUpdate é o payload de PATCH /users/update-role/{id}.
type RoleUpdate struct {
	Role UserRole `json:"role"`
}

// UserPage é a resposta de GET /users/manageUsers.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// UserRepository define o contrato de persistência para a entidade User.
type UserRepository interface {
	// Save retorna ErrUserExists quando o e-mail já está cadastrado.
	Save(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	UpdateRole(ctx context.Context, id string, role UserRole) error
	Search(ctx context.Context, keyword string) ([]User, error)
	SearchPage(ctx context.Context, keyword string, offset, limit int) ([]User, int, error)
}
