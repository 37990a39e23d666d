package middleware

import (
	"net/http"

	"prestamos-api/internal/service"

	"go.uber.org/zap"
)

// AuthMiddleware gates requests behind remote token introspection. The
// authorization header is forwarded to the validator even when absent;
// the remote side decides what an empty token means. A request
// proceeds only when introspection succeeded and reported a usuario.
func AuthMiddleware(tokens service.TokenValidator, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("Authorization")
			logger.Debug("Validating token", zap.Bool("token_present", token != ""))

			result, err := tokens.Validate(r.Context(), token)
			if err != nil {
				logger.Error("Token validation failed unexpectedly", zap.Error(err))
				RespondWithMessage(w, http.StatusUnauthorized, "Token no valido")
				return
			}

			if result.Outcome != service.OutcomeOK || result.Usuario == "" {
				logger.Error("Token no valido",
					zap.Int("status", result.Status),
					zap.String("message", result.Message),
				)
				RespondWithMessage(w, http.StatusUnauthorized, "Token no valido")
				return
			}

			logger.Debug("Token accepted", zap.String("usuario", result.Usuario))
			next.ServeHTTP(w, r)
		})
	}
}
