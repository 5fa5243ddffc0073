package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaxRatePercent is the sales tax applied at checkout.
const TaxRatePercent = 8

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusComplete  OrderStatus = "complete"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ErrInvalidStatusTransition is returned when an order cannot move to the requested state.
var ErrInvalidStatusTransition = errors.New("invalid order status transition")

// Customer is the information collected on checkout step one.
type Customer struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// MissingFieldError names the first empty customer field.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return strings.ToLower(e.Field) + " is required"
}

// Message is the banner text the storefront shows for the error.
func (e *MissingFieldError) Message() string {
	return "Error: " + e.Field + " is required"
}

// Validate checks the fields in form order. Whitespace counts as a value.
func (c Customer) Validate() error {
	switch {
	case c.FirstName == "":
		return &MissingFieldError{Field: "First Name"}
	case c.LastName == "":
		return &MissingFieldError{Field: "Last Name"}
	case c.PostalCode == "":
		return &MissingFieldError{Field: "Postal Code"}
	}
	return nil
}

// Order is a placed checkout with its money lines frozen.
type Order struct {
	ID            string
	Reference     string
	Customer      Customer
	Items         []Product
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Status        OrderStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Tax computes the sales tax of a subtotal, rounded half up to the cent.
func Tax(subtotalCents int64) int64 {
	return (subtotalCents*TaxRatePercent + 50) / 100
}

// NewOrder prices cart for customer. An empty cart is a valid order.
func NewOrder(customer Customer, cart Cart) (*Order, error) {
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	subtotal := cart.Subtotal()
	tax := Tax(subtotal)
	now := time.Now()
	id := uuid.New()

	return &Order{
		ID:            id.String(),
		Reference:     fmt.Sprintf("ORDER-%s", strings.ToUpper(id.String()[:8])),
		Customer:      customer,
		Items:         cart.Items(),
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
		Status:        OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Complete marks a pending order as placed.
func (o *Order) Complete() error {
	if !o.IsPending() {
		return fmt.Errorf("%w: cannot complete order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.Status = OrderStatusComplete
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel abandons a pending order.
func (o *Order) Cancel() error {
	if !o.IsPending() {
		return fmt.Errorf("%w: cannot cancel order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

func (o *Order) IsComplete() bool {
	return o.Status == OrderStatusComplete
}

// Subtotal renders the item total, e.g. "$39.98".
func (o *Order) Subtotal() string {
	return FormatCents(o.SubtotalCents)
}

func (o *Order) Tax() string {
	return FormatCents(o.TaxCents)
}

func (o *Order) Total() string {
	return FormatCents(o.TotalCents)
}
