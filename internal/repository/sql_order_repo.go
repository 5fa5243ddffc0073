package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
)

// SQLOrderRepository archives placed orders in PostgreSQL. Checkouts in
// progress are short lived and stay in memory.
type SQLOrderRepository struct {
	checkouts *OrderRepository
	db        *sql.DB
}

// NewOrderRepositoryWithDB creates a repository backed by db. The orders
// table must exist; see database.RunMigrations.
func NewOrderRepositoryWithDB(db *sql.DB) *SQLOrderRepository {
	return &SQLOrderRepository{
		checkouts: NewOrderRepository(),
		db:        db,
	}
}

func (r *SQLOrderRepository) SaveCheckout(id string, customer catalog.Customer) error {
	return r.checkouts.SaveCheckout(id, customer)
}

func (r *SQLOrderRepository) GetCheckout(id string) (catalog.Customer, error) {
	return r.checkouts.GetCheckout(id)
}

func (r *SQLOrderRepository) DeleteCheckout(id string) {
	r.checkouts.DeleteCheckout(id)
}

// CreateOrder creates a new order in the database
func (r *SQLOrderRepository) CreateOrder(order *catalog.Order) error {
	if order == nil || order.Reference == "" {
		return errors.New("failed to create order: reference is required")
	}

	query := `
		INSERT INTO orders (id, reference, first_name, last_name, postal_code, cart,
		                    subtotal_cents, tax_cents, total_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	_, err := r.db.Exec(query,
		order.ID,
		order.Reference,
		order.Customer.FirstName,
		order.Customer.LastName,
		order.Customer.PostalCode,
		cartOf(order.Items),
		order.SubtotalCents,
		order.TaxCents,
		order.TotalCents,
		string(order.Status),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

// GetOrderByReference retrieves an order by its reference
func (r *SQLOrderRepository) GetOrderByReference(reference string) (*catalog.Order, error) {
	query := `
		SELECT id, reference, first_name, last_name, postal_code, cart,
		       subtotal_cents, tax_cents, total_cents, status, created_at, updated_at
		FROM orders
		WHERE reference = $1
	`

	var (
		order  catalog.Order
		cart   string
		status string
	)
	err := r.db.QueryRow(query, reference).Scan(
		&order.ID,
		&order.Reference,
		&order.Customer.FirstName,
		&order.Customer.LastName,
		&order.Customer.PostalCode,
		&cart,
		&order.SubtotalCents,
		&order.TaxCents,
		&order.TotalCents,
		&status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", reference, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.Items = catalog.ParseCart(cart).Items()
	order.Status = catalog.OrderStatus(status)
	return &order, nil
}

// cartOf renders items in the cart cookie format so reads can reuse ParseCart.
func cartOf(items []catalog.Product) string {
	ids := make([]string, len(items))
	for i, p := range items {
		ids[i] = strconv.Itoa(p.ID)
	}
	return strings.Join(ids, ",")
}
