package services

import (
	"context"
	"errors"

	"toystore/internal/apperrors"
	"toystore/internal/cart"
	"toystore/internal/models"
	"toystore/internal/repositories"

	"github.com/shopspring/decimal"
)

// CartLine is one priced line of a cart view.
type CartLine struct {
	Product  models.Product  `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartView is a cart priced at current catalog prices.
type CartView struct {
	Items []CartLine      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartService validates and prices cart contents. Carts are plain values;
// callers load and save them through a cart.Store.
type CartService struct {
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(products repositories.ProductRepository) *CartService {
	return &CartService{products: products}
}

// Add puts quantity units of productID into c.
// The requested quantity is checked against current stock; checkout checks again.
func (s *CartService) Add(ctx context.Context, c *cart.Cart, productID uint, quantity int) error {
	if quantity <= 0 {
		return apperrors.ErrInvalidQuantity
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.ErrProductNotFound.Wrap(err)
		}
		return apperrors.Persistence(err)
	}
	if quantity > product.StockQuantity {
		return apperrors.ErrInsufficientStock.Wrapf("product %d has %d units, requested %d",
			productID, product.StockQuantity, quantity)
	}

	c.Add(productID, quantity)
	return nil
}

// View prices every line of c. Products that no longer exist are left out.
func (s *CartService) View(ctx context.Context, c *cart.Cart) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Total: decimal.Zero}
	if c.IsEmpty() {
		return view, nil
	}

	products, err := s.products.GetByIDs(ctx, c.ProductIDs())
	if err != nil {
		return nil, apperrors.Persistence(err)
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, item := range c.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			continue
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		view.Items = append(view.Items, CartLine{
			Product:  product,
			Quantity: item.Quantity,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
	}
	return view, nil
}

// Remove drops the line for productID. It reports whether the cart changed.
func (s *CartService) Remove(c *cart.Cart, productID uint) bool {
	return c.Remove(productID)
}
