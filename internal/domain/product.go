package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product is the persisted pawn-shop product. IDProducto is the
// business identifier the API is keyed by; ID is the storage key and
// never leaves the repository layer.
type Product struct {
	ID          uuid.UUID `json:"-" db:"id"`
	IDProducto  string    `json:"idProducto" db:"id_producto"`
	Descripcion string    `json:"descripcion" db:"descripcion"`
	Precio      float64   `json:"precio" db:"precio"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// ProductUpdate carries the updatable fields of a product. Nil fields
// are left untouched.
type ProductUpdate struct {
	Descripcion *string
	Precio      *float64
}

// LoanResult is the outcome of a pawn-loan calculation. It is returned
// to the caller, never persisted.
type LoanResult struct {
	IDProducto   string  `json:"idProducto"`
	ValorEmpenio float64 `json:"valorEmpenio"`
	Message      string  `json:"message"`
}
