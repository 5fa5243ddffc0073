// Package helpers holds the reusable steps of the browser suite: signing in
// by role, cart manipulation, checkout, metadata checks and visual snapshots.
//
// Helpers are stateless. They never retry and never wrap the errors returned
// by a browser.Session; configuration problems surface as
// *config.ConfigurationError before any browser interaction happens.
package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/naming"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
)

// Helpers binds the suite steps to a user directory and a logger.
type Helpers struct {
	users  *config.Users
	logger *zap.Logger
}

// New returns Helpers resolving credentials from users. A nil logger disables logging.
func New(users *config.Users, logger *zap.Logger) *Helpers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Helpers{
		users:  users,
		logger: logger.Named("helpers"),
	}
}

// LoginAs opens the storefront root and signs in as role. It does not check
// that the login succeeded; that is the caller's assertion.
func (h *Helpers) LoginAs(session browser.Session, role config.Role) error {
	creds, err := h.users.GetUser(role)
	if err != nil {
		return err
	}

	h.logger.Debug("logging in", zap.String("role", string(role)), zap.String("username", creds.Username))
	if _, err := session.Goto("/"); err != nil {
		return err
	}
	return pages.NewLoginPage(session).Login(creds.Username, creds.Password)
}

// AttemptLogin submits raw credentials from the current page.
func (h *Helpers) AttemptLogin(session browser.Session, username, password string) error {
	h.logger.Debug("attempting login", zap.Int("usernameLength", len(username)))
	return pages.NewLoginPage(session).Login(username, password)
}

// AddItemsToCart clicks the add button of every named product, in order.
func (h *Helpers) AddItemsToCart(session browser.Session, productNames ...string) error {
	for _, name := range productNames {
		h.logger.Debug("adding to cart", zap.String("product", name))
		if err := session.Click(pages.AddToCartSelector(name)); err != nil {
			return err
		}
	}
	return nil
}

// FillCheckoutForm fills every field of checkout step one, including empty
// values, and continues.
func (h *Helpers) FillCheckoutForm(session browser.Session, info pages.CheckoutInfo) error {
	fields := []struct {
		selector string
		value    string
	}{
		{pages.SelectorFirstName, info.FirstName},
		{pages.SelectorLastName, info.LastName},
		{pages.SelectorPostalCode, info.PostalCode},
	}
	for _, f := range fields {
		if err := session.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	return session.Click(pages.SelectorContinue)
}

// CartCount reads the cart badge. A hidden badge means an empty cart.
func CartCount(session browser.Session) (int, error) {
	visible, err := session.IsVisible(pages.SelectorCartBadge)
	if err != nil {
		return 0, err
	}
	if !visible {
		return 0, nil
	}
	text, err := session.TextContent(pages.SelectorCartBadge)
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("cart badge %q is not a number: %w", text, err)
	}
	return count, nil
}

// ToElementID converts a product display name to its data-test suffix.
func ToElementID(displayName string) string {
	return naming.ToElementID(displayName)
}

// ToSnapshotFilename converts a free-form label to a baseline file name.
func ToSnapshotFilename(label string) string {
	return naming.ToSnapshotFilename(label)
}
