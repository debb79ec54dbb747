package repositories

import (
	"context"

	"toystore/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns in-stock products matching filter, ordered by ID.
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// GetByIDs returns the existing products among ids, in no particular order.
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// DecrementStock subtracts amount only if enough stock remains.
	// It returns ErrStockConflict when no row qualified.
	DecrementStock(ctx context.Context, id uint, amount int) error
	IncrementStock(ctx context.Context, id uint, amount int) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	Create(ctx context.Context, category *models.Category) error
}
