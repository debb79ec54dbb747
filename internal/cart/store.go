package cart

import "context"

// Store keeps carts between requests, keyed by user.
type Store interface {
	// Get returns the user's cart, or an empty one if none is stored.
	Get(ctx context.Context, userID uint) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Delete(ctx context.Context, userID uint) error
}
