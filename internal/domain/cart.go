package domain

import "fmt"

// Monetary amounts are whole currency units; the catalog prices carry
// no minor units.
const (
	FreeShippingThreshold int64 = 100_000
	FlatShippingFee       int64 = 10_000
	TaxRatePercent        int64 = 3
)

// ProductSummary is the contract at the add-to-cart boundary. Handlers
// decode into this instead of passing raw payloads through.
type ProductSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Image         string `json:"image"`
	Category      string `json:"category"`
}

// LineItem is one purchasable variant in the cart. Its ID is the
// composite key of product, color and size.
type LineItem struct {
	ID            string `json:"id"`
	ProductID     string `json:"product_id"`
	Name          string `json:"name"`
	Price         int64  `json:"price"`
	OriginalPrice int64  `json:"original_price"`
	Image         string `json:"image"`
	Color         string `json:"color"`
	Size          string `json:"size"`
	Quantity      int    `json:"quantity"`
	Category      string `json:"category"`
}

// LineKey builds the composite key identifying a variant within the cart.
func LineKey(productID, color, size string) string {
	return fmt.Sprintf("%s-%s-%s", productID, color, size)
}

// Totals are derived from the cart on demand, never stored.
type Totals struct {
	Subtotal  int64 `json:"subtotal"`
	ItemCount int   `json:"item_count"`
	Shipping  int64 `json:"shipping"`
	Tax       int64 `json:"tax"`
	Total     int64 `json:"total"`
}

// Cart is an ordered sequence of line items. Insertion order is
// preserved across mutations; removal compacts the sequence.
type Cart struct {
	Items []LineItem `json:"items"`
}

// Add merges quantity into an existing line item with the same
// composite key, or appends a new item built from the product summary.
// Negative requested quantities are clamped to zero; an item whose
// merged quantity would drop to zero or below is removed instead.
// It returns the affected item, or nil when the call was a no-op.
func (c *Cart) Add(p ProductSummary, color, size string, quantity int) *LineItem {
	if quantity < 0 {
		quantity = 0
	}

	key := LineKey(p.ID, color, size)
	for i := range c.Items {
		if c.Items[i].ID != key {
			continue
		}
		c.Items[i].Quantity += quantity
		if c.Items[i].Quantity <= 0 {
			c.removeAt(i)
			return nil
		}
		item := c.Items[i]
		return &item
	}

	if quantity == 0 {
		return nil
	}

	item := LineItem{
		ID:            key,
		ProductID:     p.ID,
		Name:          p.Name,
		Price:         p.Price,
		OriginalPrice: p.OriginalPrice,
		Image:         p.Image,
		Color:         color,
		Size:          size,
		Quantity:      quantity,
		Category:      p.Category,
	}
	c.Items = append(c.Items, item)
	return &item
}

// Remove deletes the line item with the given composite key. Absent
// keys are a no-op.
func (c *Cart) Remove(itemID string) bool {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.removeAt(i)
			return true
		}
	}
	return false
}

// UpdateQuantity replaces the quantity of the matching item, leaving
// every other field untouched. Quantities of zero or below delegate
// to Remove.
func (c *Cart) UpdateQuantity(itemID string, quantity int) bool {
	if quantity <= 0 {
		return c.Remove(itemID)
	}
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear empties the cart. Idempotent.
func (c *Cart) Clear() {
	c.Items = nil
}

// Totals computes the derived amounts for the current state. Shipping
// is free once the subtotal exceeds the threshold; tax is a flat
// percentage of the subtotal.
func (c *Cart) Totals() Totals {
	var t Totals
	for _, it := range c.Items {
		t.Subtotal += it.Price * int64(it.Quantity)
		t.ItemCount += it.Quantity
	}
	if t.Subtotal <= FreeShippingThreshold {
		t.Shipping = FlatShippingFee
	}
	t.Tax = t.Subtotal * TaxRatePercent / 100
	t.Total = t.Subtotal + t.Shipping + t.Tax
	return t
}

func (c *Cart) removeAt(i int) {
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
}
