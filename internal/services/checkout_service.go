package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
)

// CheckoutRepository defines the persistence the checkout flow needs
type CheckoutRepository interface {
	SaveCheckout(id string, customer catalog.Customer) error
	GetCheckout(id string) (catalog.Customer, error)
	DeleteCheckout(id string)
	CreateOrder(order *catalog.Order) error
	GetOrderByReference(reference string) (*catalog.Order, error)
}

// CheckoutService drives a cart through the three checkout steps
type CheckoutService interface {
	Start(customer catalog.Customer) (string, error)
	Preview(checkoutID string, cart catalog.Cart) (*catalog.Order, error)
	PlaceOrder(checkoutID string, cart catalog.Cart) (*catalog.Order, error)
	Cancel(checkoutID string, cart catalog.Cart) (*catalog.Order, error)
	Abandon(checkoutID string)
	GetOrderByReference(reference string) (*catalog.Order, error)
}

// CheckoutServiceImpl implements CheckoutService
type CheckoutServiceImpl struct {
	repo CheckoutRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(repo CheckoutRepository) CheckoutService {
	return &CheckoutServiceImpl{
		repo: repo,
	}
}

// Start validates the customer details and opens a checkout for them. A
// validation failure is returned as *catalog.MissingFieldError.
func (s *CheckoutServiceImpl) Start(customer catalog.Customer) (string, error) {
	if err := customer.Validate(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	if err := s.repo.SaveCheckout(id, customer); err != nil {
		return "", fmt.Errorf("failed to save checkout: %w", err)
	}
	return id, nil
}

// Preview prices cart for an open checkout without placing it.
func (s *CheckoutServiceImpl) Preview(checkoutID string, cart catalog.Cart) (*catalog.Order, error) {
	customer, err := s.repo.GetCheckout(checkoutID)
	if err != nil {
		return nil, fmt.Errorf("failed to get checkout: %w", err)
	}
	return catalog.NewOrder(customer, cart)
}

// PlaceOrder completes an open checkout and closes it
func (s *CheckoutServiceImpl) PlaceOrder(checkoutID string, cart catalog.Cart) (*catalog.Order, error) {
	order, err := s.Preview(checkoutID, cart)
	if err != nil {
		return nil, err
	}

	if err := order.Complete(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.repo.DeleteCheckout(checkoutID)
	return order, nil
}

// Cancel closes an open checkout from the overview. The priced order is kept
// with status cancelled.
func (s *CheckoutServiceImpl) Cancel(checkoutID string, cart catalog.Cart) (*catalog.Order, error) {
	order, err := s.Preview(checkoutID, cart)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.Abandon(checkoutID)
	return order, nil
}

// Abandon drops an open checkout. Unknown ids are ignored.
func (s *CheckoutServiceImpl) Abandon(checkoutID string) {
	s.repo.DeleteCheckout(checkoutID)
}

// GetOrderByReference retrieves a placed order by its reference
func (s *CheckoutServiceImpl) GetOrderByReference(reference string) (*catalog.Order, error) {
	order, err := s.repo.GetOrderByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}
