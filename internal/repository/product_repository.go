package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"prestamos-api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrProductExists   = errors.New("product already exists")
)

// ProductRepository defines the interface for product data access.
// All lookups are keyed by the business identifier idProducto, never
// by the storage key.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetAll(ctx context.Context) ([]*domain.Product, error)
	GetByID(ctx context.Context, idProducto string) (*domain.Product, error)
	Update(ctx context.Context, idProducto string, update domain.ProductUpdate) error
	Delete(ctx context.Context, idProducto string) (*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product. A duplicate idProducto surfaces as
// ErrProductExists via the unique constraint; timestamps are assigned
// here and reflected back on the passed product.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (id, id_producto, descripcion, precio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	_, err := r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.IDProducto,
		product.Descripcion,
		product.Precio,
		product.CreatedAt,
		product.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrProductExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// GetAll retrieves every product, in storage order.
func (r *productRepository) GetAll(ctx context.Context) ([]*domain.Product, error) {
	query := `
		SELECT id, id_producto, descripcion, precio, created_at, updated_at
		FROM products
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.IDProducto,
			&product.Descripcion,
			&product.Precio,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetByID retrieves the product whose idProducto matches, or
// ErrProductNotFound.
func (r *productRepository) GetByID(ctx context.Context, idProducto string) (*domain.Product, error) {
	query := `
		SELECT id, id_producto, descripcion, precio, created_at, updated_at
		FROM products
		WHERE id_producto = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, idProducto).Scan(
		&product.ID,
		&product.IDProducto,
		&product.Descripcion,
		&product.Precio,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by id: %w", err)
	}

	return product, nil
}

// Update applies a partial update to the product matching idProducto.
// Fields left nil in the update keep their stored values. The new
// state is committed before this returns, so a caller observing
// success sees post-update state on the next read.
func (r *productRepository) Update(ctx context.Context, idProducto string, update domain.ProductUpdate) error {
	query := `
		UPDATE products
		SET descripcion = COALESCE($2, descripcion),
		    precio = COALESCE($3, precio),
		    updated_at = $4
		WHERE id_producto = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		idProducto,
		update.Descripcion,
		update.Precio,
		time.Now().UTC(),
	)

	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Delete removes the product matching idProducto and returns the
// removed record, or ErrProductNotFound.
func (r *productRepository) Delete(ctx context.Context, idProducto string) (*domain.Product, error) {
	query := `
		DELETE FROM products
		WHERE id_producto = $1
		RETURNING id, id_producto, descripcion, precio, created_at, updated_at
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, idProducto).Scan(
		&product.ID,
		&product.IDProducto,
		&product.Descripcion,
		&product.Precio,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return product, nil
}
