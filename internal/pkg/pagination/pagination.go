package pagination

import (
	"math"

	apperror "hallpoint/internal/errors"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// maxOffset mantém o OFFSET dentro do que o PostgreSQL aceita sem estourar int.
	maxOffset = math.MaxInt32
)

// Params é a paginação já normalizada de page/limit vindos da query string.
type Params struct {
	Page   int
	Limit  int
	Offset int
}

// Normalize aplica os padrões (limit 10, teto 100) e calcula o offset.
// first é o número da primeira página (0 no catálogo, 1 nas listagens administrativas).
// Uma página cujo offset estouraria vira ValidationError.
func Normalize(page, limit, first int) (Params, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page < first {
		page = first
	}
	if page-first > maxOffset/limit {
		return Params{}, apperror.NewValidationError("Invalid page")
	}
	return Params{Page: page, Limit: limit, Offset: (page - first) * limit}, nil
}

// HasMore indica se existem itens depois desta página.
func (p Params) HasMore(total int) bool {
	return p.Offset+p.Limit < total
}

// TotalPages arredonda total/limit para cima.
func (p Params) TotalPages(total int) int {
	return int(math.Ceil(float64(total) / float64(p.Limit)))
}
