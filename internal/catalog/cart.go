package catalog

import (
	"strconv"
	"strings"
)

// Cart is the ordered set of product ids a shopper picked.
type Cart struct {
	ids []int
}

// ParseCart reads the comma separated id list kept in the cart cookie.
// Malformed, unknown and repeated ids are dropped.
func ParseCart(s string) Cart {
	var c Cart
	for _, field := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			continue
		}
		_ = c.Add(id)
	}
	return c
}

// String is the inverse of ParseCart.
func (c Cart) String() string {
	parts := make([]string, len(c.ids))
	for i, id := range c.ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

// Add puts a product in the cart. Adding twice is a no-op.
func (c *Cart) Add(id int) error {
	if _, err := ProductByID(id); err != nil {
		return err
	}
	if c.Contains(id) {
		return nil
	}
	c.ids = append(c.ids, id)
	return nil
}

// Remove takes a product out of the cart.
func (c *Cart) Remove(id int) {
	for i, existing := range c.ids {
		if existing == id {
			c.ids = append(c.ids[:i], c.ids[i+1:]...)
			return
		}
	}
}

func (c Cart) Contains(id int) bool {
	for _, existing := range c.ids {
		if existing == id {
			return true
		}
	}
	return false
}

func (c Cart) Len() int {
	return len(c.ids)
}

// Items returns the products in the order they were added.
func (c Cart) Items() []Product {
	items := make([]Product, 0, len(c.ids))
	for _, id := range c.ids {
		if p, err := ProductByID(id); err == nil {
			items = append(items, p)
		}
	}
	return items
}

// Subtotal sums the item prices in cents.
func (c Cart) Subtotal() int64 {
	var total int64
	for _, p := range c.Items() {
		total += p.PriceCents
	}
	return total
}
