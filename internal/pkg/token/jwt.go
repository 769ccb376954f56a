package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"hallpoint/internal/domain"
)

// issuer é gravado em todos os tokens emitidos e exigido na validação.
const issuer = "HallPoint-API"

// ErrInvalidToken é o único erro exposto pela validação: expirado, adulterado ou malformado
// são indistinguíveis para quem chama.
var ErrInvalidToken = errors.New("token inválido")

// TokenService define o contrato para manipulação de JWTs.
type TokenService interface {
	GenerateToken(claims domain.SessionClaims) (string, error)
	ValidateToken(tokenString string) (*CustomClaims, error)
}

// CustomClaims define as informações específicas que queremos armazenar no JWT.
type CustomClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Service implementa a interface TokenService (HS256).
type Service struct {
	secretKey []byte
	expiry    time.Duration
}

// NewService cria uma nova instância do serviço Token.
func NewService(secretKey string, expiry time.Duration) *Service {
	return &Service{
		secretKey: []byte(secretKey),
		expiry:    expiry,
	}
}

// Expiry retorna a validade configurada dos tokens (usada como Max-Age do cookie).
func (s *Service) Expiry() time.Duration {
	return s.expiry
}

// GenerateToken cria um novo JWT assinado contendo o e-mail e o papel do usuário.
func (s *Service) GenerateToken(session domain.SessionClaims) (string, error) {
	now := time.Now()
	claims := CustomClaims{
		Email: session.Email,
		Role:  string(session.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   session.Email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("falha ao assinar o token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken valida o token string e retorna as claims se for válido.
// Qualquer falha é reportada como ErrInvalidToken (a causa fica encadeada para log).
func (s *Service) ValidateToken(tokenString string) (*CustomClaims, error) {
	claims := &CustomClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
