package pages

import (
	"fmt"
	"regexp"

	"github.com/storefront-qa/sauce-e2e/internal/naming"
)

// Shared
const (
	SelectorTitle = ".title"
	SelectorError = `[data-test="error"]`
)

// Login page
const (
	SelectorUsername         = `[data-test="username"]`
	SelectorPassword         = `[data-test="password"]`
	SelectorLoginButton      = `[data-test="login-button"]`
	SelectorErrorButton      = ".error-button"
	SelectorLoginCredentials = "#login_credentials"
)

// Inventory page
const (
	SelectorInventoryItem      = ".inventory_item"
	SelectorInventoryItemName  = ".inventory_item_name"
	SelectorInventoryItemPrice = ".inventory_item_price"
	SelectorSortDropdown       = `[data-test="product-sort-container"]`
	SelectorCartBadge          = ".shopping_cart_badge"
	SelectorCartLink           = ".shopping_cart_link"
	SelectorErrorBanner        = `#api-error-banner, .error-banner, [data-test="error-banner"]`
)

// Product detail page
const (
	SelectorDetailsName        = ".inventory_details_name"
	SelectorDetailsDescription = ".inventory_details_desc"
	SelectorDetailsPrice       = ".inventory_details_price"
	SelectorDetailsImage       = ".inventory_details_img"
	SelectorDetailsAdd         = `[data-test^="add-to-cart"]`
	SelectorDetailsRemove      = `[data-test^="remove"]`
	SelectorBackToProducts     = `[data-test="back-to-products"]`
)

// Cart page
const (
	SelectorCartItem         = ".cart_item"
	SelectorCartQuantity     = ".cart_quantity"
	SelectorContinueShopping = `[data-test="continue-shopping"]`
	SelectorCheckout         = `[data-test="checkout"]`
)

// Checkout pages
const (
	SelectorFirstName      = `[data-test="firstName"]`
	SelectorLastName       = `[data-test="lastName"]`
	SelectorPostalCode     = `[data-test="postalCode"]`
	SelectorContinue       = `[data-test="continue"]`
	SelectorCancel         = `[data-test="cancel"]`
	SelectorFinish         = `[data-test="finish"]`
	SelectorSubtotal       = ".summary_subtotal_label"
	SelectorTax            = ".summary_tax_label"
	SelectorTotal          = ".summary_total_label"
	SelectorPaymentInfo    = `[data-test="payment-info-value"]`
	SelectorShippingInfo   = `[data-test="shipping-info-value"]`
	SelectorCompleteHeader = ".complete-header"
	SelectorCompleteText   = ".complete-text"
	SelectorPonyExpress    = ".pony_express"
	SelectorBackHome       = `[data-test="back-to-products"]`
)

// Navigation
const (
	SelectorMenuButton   = "#react-burger-menu-btn"
	SelectorMenuClose    = "#react-burger-cross-btn"
	SelectorAllItemsLink = "#inventory_sidebar_link"
	SelectorAboutLink    = "#about_sidebar_link"
	SelectorLogoutLink   = "#logout_sidebar_link"
	SelectorResetLink    = "#reset_sidebar_link"
	SelectorSidebarMenu  = ".bm-menu"
	SelectorTwitterLink  = `[data-test="social-twitter"]`
	SelectorFacebookLink = `[data-test="social-facebook"]`
	SelectorLinkedInLink = `[data-test="social-linkedin"]`
)

// AddToCartSelector addresses the add button of a product by display name.
func AddToCartSelector(productName string) string {
	return fmt.Sprintf(`[data-test="add-to-cart-%s"]`, naming.ToElementID(productName))
}

// RemoveSelector addresses the remove button of a product by display name.
func RemoveSelector(productName string) string {
	return fmt.Sprintf(`[data-test="remove-%s"]`, naming.ToElementID(productName))
}

func regexpFor(pattern string) *regexp.Regexp {
	return regexp.MustCompile(pattern)
}
