package services

import (
	"context"
	"errors"

	"toystore/internal/apperrors"
	"toystore/internal/models"
	"toystore/internal/repositories"
)

// CatalogService handles read access to products and categories.
type CatalogService struct {
	products   repositories.ProductRepository
	categories repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repositories.ProductRepository, categories repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		products:   products,
		categories: categories,
	}
}

// ListProducts returns the in-stock products matching filter.
func (s *CatalogService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	products, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return products, nil
}

// GetProduct returns a single product with its category.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrProductNotFound.Wrap(err)
		}
		return nil, apperrors.Persistence(err)
	}
	return product, nil
}

// ListCategories returns every category.
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	return categories, nil
}
