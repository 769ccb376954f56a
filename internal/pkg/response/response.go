package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hallpoint/internal/domain"
	apperror "hallpoint/internal/errors"
	"hallpoint/internal/pkg/logger"
)

// JSON escreve data como corpo JSON com o status informado.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Error traduz err (via MapToHTTPStatus) para a resposta padronizada de erro.
// 5xx são registrados como erro com a causa completa; 4xx apenas em debug.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if log != nil {
		if status >= http.StatusInternalServerError {
			log.Error(fmt.Sprintf("Erro de Servidor: %s %s [%s]", r.Method, r.URL.Path, category), err)
		} else {
			log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
				"method": r.Method,
				"path":   r.URL.Path,
			})
		}
	}

	JSON(w, status, domain.ErrorResponse{
		Success:  false,
		Code:     status,
		Category: category,
		Message:  message,
	})
}
