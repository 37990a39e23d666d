package service

import (
	"context"
	"fmt"

	"prestamos-api/internal/domain"
	"prestamos-api/internal/repository"
)

// ProductService defines the interface for product business logic.
// It is a thin layer over the repository; persistence details stay
// behind it.
type ProductService interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetAllProducts(ctx context.Context) ([]*domain.Product, error)
	GetProductByID(ctx context.Context, idProducto string) (*domain.Product, error)
	UpdateProduct(ctx context.Context, idProducto string, update domain.ProductUpdate) error
	DeleteProduct(ctx context.Context, idProducto string) (*domain.Product, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// CreateProduct stores a new product and returns the stored record,
// timestamps included.
func (s *productService) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := s.productRepo.Create(ctx, product); err != nil {
		if err == repository.ErrProductExists {
			return nil, fmt.Errorf("producto con ID %s ya existe", product.IDProducto)
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetAllProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.GetAll(ctx)
}

func (s *productService) GetProductByID(ctx context.Context, idProducto string) (*domain.Product, error) {
	return s.productRepo.GetByID(ctx, idProducto)
}

func (s *productService) UpdateProduct(ctx context.Context, idProducto string, update domain.ProductUpdate) error {
	return s.productRepo.Update(ctx, idProducto, update)
}

func (s *productService) DeleteProduct(ctx context.Context, idProducto string) (*domain.Product, error) {
	return s.productRepo.Delete(ctx, idProducto)
}
