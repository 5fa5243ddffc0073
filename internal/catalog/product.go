// Package catalog models the storefront: its products, a shopper's cart and
// the orders placed from it.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/storefront-qa/sauce-e2e/internal/naming"
)

// Product is one item of the storefront inventory.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Image       string `json:"image"`
}

// Price renders the price the way the storefront labels it, e.g. "$29.99".
func (p Product) Price() string {
	return FormatCents(p.PriceCents)
}

// ElementID is the data-test suffix of the product's buttons.
func (p Product) ElementID() string {
	return naming.ToElementID(p.Name)
}

// FormatCents renders an amount as dollars.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// Domain errors
var (
	ErrUnknownProduct   = errors.New("unknown product")
	ErrUnknownSortOrder = errors.New("unknown sort order")
)

// SortOrder is a value of the inventory sort dropdown.
type SortOrder string

// Sort orders
const (
	SortNameAsc   SortOrder = "az"
	SortNameDesc  SortOrder = "za"
	SortPriceAsc  SortOrder = "lohi"
	SortPriceDesc SortOrder = "hilo"
)

// SortOrders lists the dropdown options in display order.
var SortOrders = []struct {
	Value SortOrder
	Label string
}{
	{SortNameAsc, "Name (A to Z)"},
	{SortNameDesc, "Name (Z to A)"},
	{SortPriceAsc, "Price (low to high)"},
	{SortPriceDesc, "Price (high to low)"},
}

var inventory = []Product{
	{ID: 4, Name: "Sauce Labs Backpack", PriceCents: 2999, Image: "sauce-backpack-1200x1500.jpg",
		Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection."},
	{ID: 0, Name: "Sauce Labs Bike Light", PriceCents: 999, Image: "bike-light-1200x1500.jpg",
		Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes, 1 AAA battery included."},
	{ID: 1, Name: "Sauce Labs Bolt T-Shirt", PriceCents: 1599, Image: "bolt-shirt-1200x1500.jpg",
		Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton, heather gray with red bolt."},
	{ID: 5, Name: "Sauce Labs Fleece Jacket", PriceCents: 4999, Image: "sauce-pullover-1200x1500.jpg",
		Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office."},
	{ID: 2, Name: "Sauce Labs Onesie", PriceCents: 799, Image: "red-onesie-1200x1500.jpg",
		Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel."},
	{ID: 3, Name: "Test.allTheThings() T-Shirt (Red)", PriceCents: 1599, Image: "red-tatt-1200x1500.jpg",
		Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests. Super-soft and comfy ringspun combed cotton."},
}

// Products returns the inventory sorted by name.
func Products() []Product {
	out := make([]Product, len(inventory))
	copy(out, inventory)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProductByID looks a product up by its numeric id.
func ProductByID(id int) (Product, error) {
	for _, p := range inventory {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: id %d", ErrUnknownProduct, id)
}

// ProductByName looks a product up by its display name.
func ProductByName(name string) (Product, error) {
	for _, p := range inventory {
		if p.Name == name {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("%w: %q", ErrUnknownProduct, name)
}

// Sort orders products in place. Ties keep their relative order.
func Sort(products []Product, order SortOrder) error {
	var less func(a, b Product) bool
	switch order {
	case SortNameAsc:
		less = func(a, b Product) bool { return a.Name < b.Name }
	case SortNameDesc:
		less = func(a, b Product) bool { return a.Name > b.Name }
	case SortPriceAsc:
		less = func(a, b Product) bool { return a.PriceCents < b.PriceCents }
	case SortPriceDesc:
		less = func(a, b Product) bool { return a.PriceCents > b.PriceCents }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSortOrder, order)
	}
	sort.SliceStable(products, func(i, j int) bool { return less(products[i], products[j]) })
	return nil
}
