package handlers

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
	"github.com/storefront-qa/sauce-e2e/internal/services"
)

// CheckoutInfoHandler serves checkout step one, the customer form
type CheckoutInfoHandler struct {
	template *template.Template
	checkout services.CheckoutService
	logger   *zap.Logger
}

// CheckoutInfoData represents the data passed to the step one template
type CheckoutInfoData struct {
	page
	Customer catalog.Customer
	Form     map[string]string
	Error    string
}

// NewCheckoutInfoHandler creates a new step one handler
func NewCheckoutInfoHandler(tmpl *template.Template, checkout services.CheckoutService, logger *zap.Logger) *CheckoutInfoHandler {
	return &CheckoutInfoHandler{template: tmpl, checkout: checkout, logger: logger}
}

func (h *CheckoutInfoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := CheckoutInfoData{page: page{Title: "Checkout: Your Information", CartCount: cartFrom(r).Len()}}

	switch r.Method {
	case http.MethodGet:
		render(w, h.logger, h.template, "checkout_one.html", data)
		return
	case http.MethodPost:
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	data.Customer = catalog.Customer{
		FirstName:  r.PostForm.Get("firstName"),
		LastName:   r.PostForm.Get("lastName"),
		PostalCode: r.PostForm.Get("postalCode"),
	}

	id, err := h.checkout.Start(data.Customer)
	if err != nil {
		var missing *catalog.MissingFieldError
		if !errors.As(err, &missing) {
			h.logger.Error("failed to start checkout", zap.Error(err))
			http.Error(w, "Failed to start checkout", http.StatusInternalServerError)
			return
		}
		data.Error = missing.Message()
		data.Form = map[string]string{
			"firstName":  data.Customer.FirstName,
			"lastName":   data.Customer.LastName,
			"postalCode": data.Customer.PostalCode,
		}
		render(w, h.logger, h.template, "checkout_one.html", data)
		return
	}

	if c, err := r.Cookie(CheckoutCookie); err == nil {
		h.checkout.Abandon(c.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CheckoutCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/checkout-step-two.html", http.StatusSeeOther)
}

// CheckoutOverviewHandler serves checkout step two and places the order
type CheckoutOverviewHandler struct {
	template *template.Template
	checkout services.CheckoutService
	logger   *zap.Logger
}

// CheckoutOverviewData represents the data passed to the step two template
type CheckoutOverviewData struct {
	page
	Order *catalog.Order
}

// NewCheckoutOverviewHandler creates a new step two handler
func NewCheckoutOverviewHandler(tmpl *template.Template, checkout services.CheckoutService, logger *zap.Logger) *CheckoutOverviewHandler {
	return &CheckoutOverviewHandler{template: tmpl, checkout: checkout, logger: logger}
}

func (h *CheckoutOverviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	c, err := r.Cookie(CheckoutCookie)
	if err != nil {
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}
	cart := cartFrom(r)

	if r.Method == http.MethodGet {
		order, err := h.checkout.Preview(c.Value, cart)
		if err != nil {
			h.logger.Debug("no open checkout", zap.Error(err))
			http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
			return
		}
		render(w, h.logger, h.template, "checkout_two.html", CheckoutOverviewData{
			page:  page{Title: "Checkout: Overview", CartCount: cart.Len()},
			Order: order,
		})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	if r.PostForm.Has("cancel") {
		h.cancel(w, r, c.Value, cart)
		return
	}

	order, err := h.checkout.PlaceOrder(c.Value, cart)
	if err != nil {
		h.logger.Warn("failed to place order", zap.Error(err))
		http.Redirect(w, r, "/checkout-step-one.html", http.StatusSeeOther)
		return
	}

	h.logger.Info("order placed",
		zap.String("reference", order.Reference),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total()),
	)
	clearCookie(w, CheckoutCookie)
	clearCookie(w, CartCookie)
	http.SetCookie(w, &http.Cookie{
		Name:     OrderCookie,
		Value:    order.Reference,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/checkout-complete.html", http.StatusSeeOther)
}

// cancel closes the checkout and returns to the inventory. The cart is kept.
func (h *CheckoutOverviewHandler) cancel(w http.ResponseWriter, r *http.Request, checkoutID string, cart catalog.Cart) {
	order, err := h.checkout.Cancel(checkoutID, cart)
	if err != nil {
		h.logger.Debug("nothing to cancel", zap.Error(err))
	} else {
		h.logger.Info("checkout cancelled", zap.String("reference", order.Reference))
	}
	clearCookie(w, CheckoutCookie)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

// CheckoutCompleteHandler serves the confirmation page
type CheckoutCompleteHandler struct {
	template *template.Template
	checkout services.CheckoutService
	logger   *zap.Logger
}

// CheckoutCompleteData represents the data passed to the confirmation template
type CheckoutCompleteData struct {
	page
	Order *catalog.Order
}

// NewCheckoutCompleteHandler creates a new confirmation handler
func NewCheckoutCompleteHandler(tmpl *template.Template, checkout services.CheckoutService, logger *zap.Logger) *CheckoutCompleteHandler {
	return &CheckoutCompleteHandler{template: tmpl, checkout: checkout, logger: logger}
}

func (h *CheckoutCompleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data := CheckoutCompleteData{page: page{Title: "Checkout: Complete!", CartCount: cartFrom(r).Len()}}
	if c, err := r.Cookie(OrderCookie); err == nil {
		order, err := h.checkout.GetOrderByReference(c.Value)
		switch {
		case err != nil:
			h.logger.Debug("placed order not found", zap.String("reference", c.Value), zap.Error(err))
		case order.IsComplete():
			data.Order = order
		}
	}
	render(w, h.logger, h.template, "checkout_complete.html", data)
}
