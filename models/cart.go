package models

import "time"

// Cart quantity limits, enforced on every mutation.
const (
	MinQuantityPerItem = 1
	MaxQuantityPerItem = 99
)

// CartItem is one product line in a cart. Name, price and image are kept
// locally so the cart can be rendered without refetching the catalog.
type CartItem struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
}

// Cart holds the items a user intends to purchase. At most one CartItem
// exists per product; quantities stay within [MinQuantityPerItem,
// MaxQuantityPerItem].
type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func clampQuantity(q int) int {
	if q > MaxQuantityPerItem {
		return MaxQuantityPerItem
	}
	if q < MinQuantityPerItem {
		return MinQuantityPerItem
	}
	return q
}

// Add merges quantity into an existing line for the product or appends a new
// one. The resulting quantity is clamped to MaxQuantityPerItem.
func (c *Cart) Add(p Product, quantity int) CartItem {
	for i, item := range c.Items {
		if item.ProductID == p.ID {
			c.Items[i].Quantity = clampQuantity(item.Quantity + quantity)
			return c.Items[i]
		}
	}
	item := CartItem{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Description: p.Description,
		Quantity:    clampQuantity(quantity),
	}
	c.Items = append(c.Items, item)
	return item
}

// SetQuantity updates the line for productID. A quantity of zero or less
// removes the line. Reports whether the product was present.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			if quantity <= 0 {
				c.Remove(productID)
				return true
			}
			c.Items[i].Quantity = clampQuantity(quantity)
			return true
		}
	}
	return false
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID int64) bool {
	for i, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// Total is the sum of price times quantity over all lines, recomputed on
// demand.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count is the total number of units across all lines (cart badge counter).
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// Weight estimates the cart weight for delivery calculation. Product weights
// are not tracked, so each unit counts as one kilogram.
func (c *Cart) Weight() float64 {
	return float64(c.Count())
}
