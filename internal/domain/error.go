package domain

import "errors"

// ErrorResponse é a estrutura padronizada para respostas de erro na API.
// @Description Estrutura padronizada para respostas de erro na API.
type ErrorResponse struct {
	Success  bool   `json:"success" example:"false"`
	Code     int    `json:"code" example:"400"`
	Category string `json:"category" example:"VALIDATION_ERROR"`
	Message  string `json:"message" example:"Missing required fields"`
}

// Erros sentinela dos repositórios.
var (
	ErrUserExists     = errors.New("user already exists")
	ErrVoteNotApplied = errors.New("vote not applied")
	ErrCandidateGone  = errors.New("candidate already removed")
	ErrRequestExists  = errors.New("meal request already exists")
)
