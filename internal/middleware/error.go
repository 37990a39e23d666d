package middleware

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// ErrorBody is the generic error response shape: a single message
// under "error".
type ErrorBody struct {
	Error string `json:"error"`
}

// MessageBody carries a human-readable message under "message", used
// by the auth gate and the delete confirmation.
type MessageBody struct {
	Message string `json:"message"`
}

// ValidationErrorBody is the response shape for payload validation
// failures.
type ValidationErrorBody struct {
	Error   string      `json:"error"`
	Details []Violation `json:"details"`
}

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithError sends an {"error": message} response
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, ErrorBody{Error: message})
}

// RespondWithMessage sends a {"message": message} response
func RespondWithMessage(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, MessageBody{Message: message})
}

// RespondWithValidationErrors sends the 400 body used for schema
// violations.
func RespondWithValidationErrors(w http.ResponseWriter, violations []Violation) {
	RespondWithJSON(w, http.StatusBadRequest, ValidationErrorBody{
		Error:   "Error en la validación del body",
		Details: violations,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
