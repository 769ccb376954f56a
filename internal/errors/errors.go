package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError é a interface central para todos os erros customizados do HallPoint.
// Ela permite que o código externo (Handler/Middleware) acesse a Categoria e a Mensagem do erro.
type AppError interface {
	Error() string    // Implementa a interface error padrão do Go
	Category() string // Categoria do erro (e.g., "VALIDATION_ERROR", "NOT_FOUND", "INTERNAL_ERROR")
	HTTPStatus() int  // Código HTTP sugerido para o Handler
	Message() string  // Mensagem segura para o cliente
	Unwrap() error    // Permite encapsular erros subjacentes (original error)
}

// --- Tipos de Erro Específicos (Erros de Domínio) ---

// ValidationError representa falhas de validação de dados de entrada.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string    { return fmt.Sprintf("Erro de Validação: %s", e.Msg) }
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ValidationError) Message() string  { return e.Msg }
func (e *ValidationError) Unwrap() error    { return nil }

// NewValidationError cria um novo erro de validação.
func NewValidationError(msg string) AppError {
	return &ValidationError{Msg: msg}
}

// DuplicateVoteError indica que o e-mail já consta em liked_by do candidato.
type DuplicateVoteError struct {
	Msg string
}

func (e *DuplicateVoteError) Error() string    { return fmt.Sprintf("Voto duplicado: %s", e.Msg) }
func (e *DuplicateVoteError) Category() string { return "DUPLICATE_VOTE" }
func (e *DuplicateVoteError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *DuplicateVoteError) Message() string  { return e.Msg }
func (e *DuplicateVoteError) Unwrap() error    { return nil }

// NewDuplicateVoteError cria o erro retornado quando o usuário já curtiu a refeição.
func NewDuplicateVoteError() AppError {
	return &DuplicateVoteError{Msg: "You already liked this meal"}
}

// NotFoundError representa a ausência de um recurso solicitado.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("Recurso não encontrado: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound } // 404
func (e *NotFoundError) Message() string  { return e.Msg }
func (e *NotFoundError) Unwrap() error    { return nil }

// NewNotFoundError cria um novo erro de recurso não encontrado.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// UnauthorizedError representa a ausência de credencial (cookie sem token, claims ausentes).
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("Não autorizado: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized } // 401
func (e *UnauthorizedError) Message() string  { return e.Msg }
func (e *UnauthorizedError) Unwrap() error    { return nil }

// NewUnauthorizedError cria um novo erro 401.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ForbiddenError representa credencial inválida/expirada ou papel sem permissão.
type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string    { return fmt.Sprintf("Acesso proibido: %s", e.Msg) }
func (e *ForbiddenError) Category() string { return "FORBIDDEN" }
func (e *ForbiddenError) HTTPStatus() int  { return http.StatusForbidden } // 403
func (e *ForbiddenError) Message() string  { return e.Msg }
func (e *ForbiddenError) Unwrap() error    { return nil }

// NewForbiddenError cria um novo erro 403.
func NewForbiddenError(msg string) AppError {
	return &ForbiddenError{Msg: msg}
}

// ConflictError representa uma operação que colide com o estado atual (ex.: pedido repetido).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("Conflito: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusBadRequest } // 400
func (e *ConflictError) Message() string  { return e.Msg }
func (e *ConflictError) Unwrap() error    { return nil }

// NewConflictError cria um novo erro de conflito.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// TooManyRequestsError é retornado pelo rate limiter.
type TooManyRequestsError struct {
	Msg string
}

func (e *TooManyRequestsError) Error() string    { return fmt.Sprintf("Limite excedido: %s", e.Msg) }
func (e *TooManyRequestsError) Category() string { return "RATE_LIMITED" }
func (e *TooManyRequestsError) HTTPStatus() int  { return http.StatusTooManyRequests } // 429
func (e *TooManyRequestsError) Message() string  { return e.Msg }
func (e *TooManyRequestsError) Unwrap() error    { return nil }

// NewTooManyRequestsError cria um novo erro 429.
func NewTooManyRequestsError(msg string) AppError {
	return &TooManyRequestsError{Msg: msg}
}

// --- Tipos de Erro de Infraestrutura (Encapsulamento) ---

// InternalError representa falhas inesperadas no servidor, serviço ou repositório.
type InternalError struct {
	Msg string
	Err error // Erro original subjacente (e.g., erro do driver SQL)
}

func (e *InternalError) Error() string    { return fmt.Sprintf("Erro Interno: %s", e.Msg) }
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError } // 500
func (e *InternalError) Unwrap() error    { return e.Err }

// Message nunca expõe a causa ao cliente; o detalhe fica apenas no log.
func (e *InternalError) Message() string { return e.Msg }

// NewInternalError cria um erro de servidor (para falhas de lógica ou código não esperado).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError é um atalho para criar um InternalError específico de falhas no DB.
// A mensagem pública é genérica; o erro do driver segue disponível via Unwrap.
func NewDBError(msg string, err error) AppError {
	return &InternalError{Msg: "Internal Server Error", Err: fmt.Errorf("%s (DB): %w", msg, err)}
}

// --- Helper para o Handler (Tradução Final) ---

// MapToHTTPStatus recebe um erro e o traduz para o código HTTP, categoria e mensagem pública.
func MapToHTTPStatus(err error) (int, string, string) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Message()
	}

	// Erro não tipado: tratado como erro interno genérico.
	return http.StatusInternalServerError, "UNKNOWN_ERROR", "Internal Server Error"
}
