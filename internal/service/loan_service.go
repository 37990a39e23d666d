package service

import (
	"context"
	"fmt"

	"prestamos-api/internal/domain"
	"prestamos-api/internal/repository"

	"go.uber.org/zap"
)

// LoanService computes pawn-loan ("empeño") values for stored
// products.
type LoanService interface {
	Calculate(ctx context.Context, idProducto string, gramaje float64) (*domain.LoanResult, error)
}

type loanService struct {
	productService ProductService
	rate           float64
	logger         *zap.Logger
}

// NewLoanService creates a new instance of LoanService. rate is the
// configured loan fraction applied to precio*gramaje.
func NewLoanService(productService ProductService, rate float64, logger *zap.Logger) LoanService {
	return &loanService{
		productService: productService,
		rate:           rate,
		logger:         logger,
	}
}

// Calculate looks up the product by its business id and derives the
// loan value. gramaje is taken as-is; zero and negative weights are
// not rejected here and simply yield a zero or negative value.
func (s *loanService) Calculate(ctx context.Context, idProducto string, gramaje float64) (*domain.LoanResult, error) {
	product, err := s.productService.GetProductByID(ctx, idProducto)
	if err != nil {
		if err == repository.ErrProductNotFound {
			err = fmt.Errorf("Producto con ID %s no encontrado", idProducto)
		}
		s.logger.Error("Failed to calculate loan value",
			zap.String("id_producto", idProducto),
			zap.Error(err),
		)
		return nil, err
	}

	valorEmpenio := product.Precio * gramaje * s.rate

	s.logger.Info("Loan value calculated",
		zap.String("id_producto", idProducto),
		zap.Float64("gramaje", gramaje),
		zap.Float64("valor_empenio", valorEmpenio),
	)

	return &domain.LoanResult{
		IDProducto:   idProducto,
		ValorEmpenio: valorEmpenio,
		Message:      "Empeño calculado exitosamente",
	}, nil
}
