package domain

// SessionRequest é o payload de POST /jwt.
type SessionRequest struct {
	Email string `json:"email"`
}

// SessionClaims são os dados do usuário carregados no token de sessão.
type SessionClaims struct {
	Email string
	Role  UserRole
}

// Caller é quem fez a requisição: e-mail do token e papel relido do diretório.
type Caller struct {
	Email string
	Role  UserRole
}

// CanManage indica se o caller pode alterar um recurso pertencente a ownerEmail.
func (c Caller) CanManage(ownerEmail string) bool {
	return c.Role == RoleAdmin || (c.Email != "" && c.Email == ownerEmail)
}
