package transport

import (
	"net/http"

	"prestamos-api/internal/middleware"
	"prestamos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// LoanHandler handles pawn-loan calculation requests
type LoanHandler struct {
	loanService service.LoanService
	logger      *zap.Logger
}

// NewLoanHandler creates a new LoanHandler
func NewLoanHandler(loanService service.LoanService, logger *zap.Logger) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		logger:      logger,
	}
}

// RegisterRoutes registers the loan route behind the auth gate
func (h *LoanHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/api/v1/prestamo", h.Calculate)
	})
}

// Calculate handles the loan value calculation
func (h *LoanHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	payload, violations, err := middleware.DecodeAndValidate(r.Body, middleware.LoanSchema)
	if err != nil {
		h.logger.Debug("Loan request decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(violations) > 0 {
		h.logger.Error("Loan request validation failed", zap.Any("violations", violations))
		middleware.RespondWithValidationErrors(w, violations)
		return
	}

	idProducto := payload["idProducto"].(string)
	gramaje := payload["gramaje"].(float64)

	h.logger.Info("Calculating loan value",
		zap.String("id_producto", idProducto),
		zap.Float64("gramaje", gramaje),
	)

	result, err := h.loanService.Calculate(r.Context(), idProducto, gramaje)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}
