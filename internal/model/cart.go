package model

import "github.com/google/uuid"

// CartLine is a single product entry in a cart. Name and Price are a
// snapshot of the product at the time it was added, not a live reference.
type CartLine struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
}

// Cart is the per-user collection of product lines with a running total.
// Total always equals the sum of price*quantity over all lines; the
// mutation methods recompute it after every change.
type Cart struct {
	Products []CartLine `json:"products"`
	Total    float64    `json:"total"`
}

// EmptyCart returns a cart with no lines and a zero total.
func EmptyCart() Cart {
	return Cart{
		Products: []CartLine{},
		Total:    0,
	}
}

// Add merges quantity into an existing line for the product, or appends a
// new line snapshotting the product's current name and price. Fails with
// ErrInvalidQuantity when quantity < 1.
func (c *Cart) Add(product *Product, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	merged := false
	for i := range c.Products {
		if c.Products[i].ProductID == product.ID {
			c.Products[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		c.Products = append(c.Products, CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
	}

	c.recomputeTotal()
	return nil
}

// Remove decrements the line for productID by quantity, dropping the line
// entirely when the full held quantity is removed. Fails with
// ErrInvalidQuantity when quantity < 1, ErrProductNotInCart when the
// product has no line, and a quantity-too-large error when more than the
// held quantity is requested.
func (c *Cart) Remove(productID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	idx := -1
	for i := range c.Products {
		if c.Products[i].ProductID == productID {
			idx = i
			break
		}
	}

	if idx == -1 {
		return ErrProductNotInCart
	}

	held := c.Products[idx].Quantity
	switch {
	case quantity > held:
		return NewQuantityTooLargeError(held)
	case quantity == held:
		c.Products = append(c.Products[:idx], c.Products[idx+1:]...)
	default:
		c.Products[idx].Quantity -= quantity
	}

	c.recomputeTotal()
	return nil
}

// Clone returns a deep copy of the cart. Orders snapshot carts through
// this method so later mutations of the live cart never reach them.
func (c Cart) Clone() Cart {
	products := make([]CartLine, len(c.Products))
	copy(products, c.Products)
	return Cart{
		Products: products,
		Total:    c.Total,
	}
}

func (c *Cart) recomputeTotal() {
	total := 0.0
	for _, line := range c.Products {
		total += line.Price * float64(line.Quantity)
	}
	c.Total = total
}
