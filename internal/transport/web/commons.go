package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/app"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/service"
)

// maxAuthBodyBytes bounds signup and login bodies
const maxAuthBodyBytes = 1 << 20

// Handler is a container for application dependencies that are required by HTTP handlers.
// By embedding the application's dependency injection container, it provides handlers
// with access to services, repositories, and configuration.
type Handler struct {
	container *app.Container
}

// NewHandler creates and returns a new Handler instance.
func NewHandler(container *app.Container) *Handler {
	return &Handler{container: container}
}

// errorBody is the JSON shape of every error answer
type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// ErrorResponse sends a JSON body {"error": message} with the given status.
func ErrorResponse(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, errorBody{Error: message})
}

// jsonResponse sends data as JSON with 200 OK.
func jsonResponse(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "err", err)
	}
}

// limitRequestBody wraps a request body with MaxBytesReader to limit its size.
func limitRequestBody(w http.ResponseWriter, r *http.Request, maxBytes int64) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
}

// decodeJSON reads the request body into dst and answers 400 or 413 itself
// when it cannot. Returns false when the caller must stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ErrorResponse(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		ErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP answers / Traduit les erreurs de service en réponses HTTP
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: vErr.Message, Field: vErr.Field})
	case errors.Is(err, service.ErrValidation):
		ErrorResponse(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrPhoneTaken):
		ErrorResponse(w, service.ErrPhoneTaken.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		ErrorResponse(w, service.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, service.ErrRecordConflict):
		ErrorResponse(w, service.ErrRecordConflict.Error(), http.StatusConflict)
	default:
		// Detail stays in the logs
		slog.Error("request failed", "request_id", GetRequestID(r.Context()), "path", r.URL.Path, "err", err)
		ErrorResponse(w, fallback, http.StatusInternalServerError)
	}
}
