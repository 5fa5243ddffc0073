package handlers

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
)

// CartHandler serves the cart page
type CartHandler struct {
	template *template.Template
	logger   *zap.Logger
}

// CartData represents the data passed to the cart template
type CartData struct {
	page
	Items    []catalog.Product
	Editable bool
}

// NewCartHandler creates a new cart handler
func NewCartHandler(tmpl *template.Template, logger *zap.Logger) *CartHandler {
	return &CartHandler{template: tmpl, logger: logger}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	cart := cartFrom(r)

	render(w, h.logger, h.template, "cart.html", CartData{
		page:     page{Title: "Your Cart", CartCount: cart.Len()},
		Items:    cart.Items(),
		Editable: true,
	})
}
