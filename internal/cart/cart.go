// Package cart holds the per-session shopping cart and the stores that keep it between requests.
package cart

import "time"

// Item is one cart line.
type Item struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Cart maps products to requested quantities, keeping the order in which products were first added.
type Cart struct {
	UserID    uint      `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an empty cart for userID.
func New(userID uint) *Cart {
	return &Cart{UserID: userID, Items: []Item{}}
}

// Add increments the quantity of productID, appending a new line on first add.
// quantity must be positive; callers validate it.
func (c *Cart) Add(productID uint, quantity int) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return
		}
	}
	c.Items = append(c.Items, Item{ProductID: productID, Quantity: quantity})
}

// Quantity returns the quantity held for productID.
func (c *Cart) Quantity(productID uint) int {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item.Quantity
		}
	}
	return 0
}

// Remove drops the line for productID. It reports whether a line was removed.
func (c *Cart) Remove(productID uint) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = []Item{}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.Items)
}

// ProductIDs returns the product identifiers in insertion order.
func (c *Cart) ProductIDs() []uint {
	ids := make([]uint, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}
