package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/vladislavdragonenkov/orderhub/internal/domain"
)

// ErrorMessage — тело ответа при ошибке.
type ErrorMessage struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError транслирует доменную ошибку в HTTP-статус:
// not found — 404, нарушение бизнес-правила — 400, конфликт — 409,
// остальное — 500 без деталей наружу.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case domain.IsBusinessRule(err):
		status = http.StatusBadRequest
		message = err.Error()
	case domain.IsConflict(err):
		status = http.StatusConflict
		message = err.Error()
	}

	writeJSON(w, status, ErrorMessage{
		Status:  status,
		Message: message,
		Path:    r.URL.Path,
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorMessage{
		Status:  http.StatusBadRequest,
		Message: message,
		Path:    r.URL.Path,
	})
}
