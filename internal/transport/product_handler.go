package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"prestamos-api/internal/domain"
	"prestamos-api/internal/middleware"
	"prestamos-api/internal/repository"
	"prestamos-api/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateProductRequest is the partial-update payload. Absent fields
// leave the stored values untouched.
type UpdateProductRequest struct {
	Descripcion *string  `json:"descripcion"`
	Precio      *float64 `json:"precio"`
}

// ProductHandler handles HTTP requests for product CRUD
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.GetAll)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	payload, violations, err := middleware.DecodeAndValidate(r.Body, middleware.ProductSchema)
	if err != nil {
		h.logger.Debug("Create product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(violations) > 0 {
		h.logger.Debug("Create product validation failed", zap.Any("violations", violations))
		middleware.RespondWithValidationErrors(w, violations)
		return
	}

	// Safe assertions: the schema guarantees the field types.
	product := &domain.Product{
		IDProducto:  payload["idProducto"].(string),
		Descripcion: payload["descripcion"].(string),
		Precio:      payload["precio"].(float64),
	}

	created, err := h.productService.CreateProduct(r.Context(), product)
	if err != nil {
		h.logger.Error("Failed to create product",
			zap.String("id_producto", product.IDProducto),
			zap.Error(err),
		)
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("Product created", zap.String("id_producto", created.IDProducto))
	middleware.RespondWithJSON(w, http.StatusCreated, created)
}

// GetAll handles listing every product
func (h *ProductHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.GetAllProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// GetByID handles fetching a single product by its business id
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.GetProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		h.logger.Error("Failed to get product", zap.String("id_producto", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Update handles a partial update of a product
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Debug("Update product decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.ProductUpdate{
		Descripcion: req.Descripcion,
		Precio:      req.Precio,
	}

	if err := h.productService.UpdateProduct(r.Context(), id, update); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		h.logger.Error("Failed to update product", zap.String("id_producto", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Info("Product updated", zap.String("id_producto", id))
	w.WriteHeader(http.StatusNoContent)
}

// Delete handles removing a product by its business id
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "Producto no encontrado")
			return
		}
		h.logger.Error("Failed to delete product", zap.String("id_producto", id), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.logger.Info("Product deleted", zap.String("id_producto", id))
	middleware.RespondWithMessage(w, http.StatusOK, "Producto eliminado correctamente")
}
