package repository

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
)

// ErrNotFound is returned when a checkout or order does not exist.
var ErrNotFound = errors.New("not found")

// OrderRepository keeps checkouts in progress and placed orders in memory.
// It is safe for concurrent use by the storefront handlers.
type OrderRepository struct {
	mu        sync.RWMutex
	checkouts map[string]catalog.Customer
	orders    map[string]*catalog.Order
}

// NewOrderRepository creates an empty repository
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		checkouts: make(map[string]catalog.Customer),
		orders:    make(map[string]*catalog.Order),
	}
}

// SaveCheckout stores the customer details entered for checkout id.
func (r *OrderRepository) SaveCheckout(id string, customer catalog.Customer) error {
	if id == "" {
		return errors.New("checkout id cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.checkouts[id] = customer
	return nil
}

// GetCheckout returns the customer details of checkout id.
func (r *OrderRepository) GetCheckout(id string) (catalog.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.checkouts[id]
	if !ok {
		return catalog.Customer{}, fmt.Errorf("checkout %q: %w", id, ErrNotFound)
	}
	return customer, nil
}

// DeleteCheckout forgets checkout id. Deleting a missing checkout is a no-op.
func (r *OrderRepository) DeleteCheckout(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.checkouts, id)
}

// CreateOrder stores a copy of order keyed by its reference
func (r *OrderRepository) CreateOrder(order *catalog.Order) error {
	if order == nil || order.Reference == "" {
		return errors.New("failed to create order: reference is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.Reference]; exists {
		return fmt.Errorf("failed to create order: reference %s already exists", order.Reference)
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	stored := *order
	r.orders[order.Reference] = &stored
	return nil
}

// GetOrderByReference retrieves an order by its reference
func (r *OrderRepository) GetOrderByReference(reference string) (*catalog.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[reference]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", reference, ErrNotFound)
	}
	out := *order
	return &out, nil
}
