package handlers

import (
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
	"github.com/storefront-qa/sauce-e2e/internal/config"
)

// BrokenImage is what problem_user sees instead of every product photo.
const BrokenImage = "sl-404.jpg"

// InventoryHandler serves the product listing
type InventoryHandler struct {
	template *template.Template
	logger   *zap.Logger
}

// InventoryData represents the data passed to the inventory template
type InventoryData struct {
	page
	SortOrders []struct {
		Value catalog.SortOrder
		Label string
	}
	Sort     catalog.SortOrder
	Products []productView
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(tmpl *template.Template, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{template: tmpl, logger: logger}
}

// ServeHTTP lists the inventory in the order named by ?sort=
func (h *InventoryHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	shopper, _ := ShopperFrom(r.Context())
	cart := cartFrom(r)

	order := catalog.SortOrder(r.URL.Query().Get("sort"))
	if order == "" {
		order = catalog.SortNameAsc
	}
	products := catalog.Products()
	if err := catalog.Sort(products, order); err != nil {
		h.logger.Debug("ignoring sort order", zap.String("sort", string(order)), zap.Error(err))
		order = catalog.SortNameAsc
	}

	views := make([]productView, len(products))
	for i, p := range products {
		views[i] = newProductView(p, shopper, cart, "-"+p.ElementID())
	}

	render(w, h.logger, h.template, "inventory.html", InventoryData{
		page:       page{Title: "Products", CartCount: cart.Len()},
		SortOrders: catalog.SortOrders,
		Sort:       order,
		Products:   views,
	})
}

// ItemHandler serves a single product at /inventory-item.html?id=N
type ItemHandler struct {
	template *template.Template
	logger   *zap.Logger
}

// ItemData represents the data passed to the item template. A nil Product
// renders the not found state.
type ItemData struct {
	page
	Product *productView
}

// NewItemHandler creates a new product detail handler
func NewItemHandler(tmpl *template.Template, logger *zap.Logger) *ItemHandler {
	return &ItemHandler{template: tmpl, logger: logger}
}

func (h *ItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	shopper, _ := ShopperFrom(r.Context())
	cart := cartFrom(r)
	data := ItemData{page: page{CartCount: cart.Len()}}

	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err == nil {
		if p, err := catalog.ProductByID(id); err == nil {
			view := newProductView(p, shopper, cart, "")
			data.Product = &view
		}
	}
	if data.Product == nil {
		h.logger.Debug("item not found", zap.String("id", r.URL.Query().Get("id")))
	}

	render(w, h.logger, h.template, "item.html", data)
}

func newProductView(p catalog.Product, shopper Shopper, cart catalog.Cart, suffix string) productView {
	image := p.Image
	if shopper.Role == config.ProblemUser {
		image = BrokenImage
	}
	return productView{
		Product:      p,
		ImageURL:     "/static/img/" + image,
		InCart:       cart.Contains(p.ID),
		ButtonSuffix: suffix,
	}
}
