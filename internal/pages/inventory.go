package pages

import (
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// Sort options of the inventory dropdown.
const (
	SortNameAsc   = "az"
	SortNameDesc  = "za"
	SortPriceAsc  = "lohi"
	SortPriceDesc = "hilo"
)

// InventoryPage is the product listing at /inventory.html.
type InventoryPage struct {
	Base
}

func NewInventoryPage(s browser.Session, opts ...Option) *InventoryPage {
	return &InventoryPage{Base: newBase(s, opts...)}
}

func (p *InventoryPage) AssertInventoryPageDisplayed() error {
	if err := p.AssertText(SelectorTitle, "Products"); err != nil {
		return err
	}
	loc, err := p.locator(SelectorInventoryItem)
	if err != nil {
		return err
	}
	return p.expect().Locator(loc.First()).ToBeVisible()
}

func (p *InventoryPage) AssertProductCount(n int) error {
	return p.AssertCount(SelectorInventoryItem, n)
}

func (p *InventoryPage) SelectSort(option string) error {
	loc, err := p.locator(SelectorSortDropdown)
	if err != nil {
		return err
	}
	_, err = loc.SelectOption(playwright.SelectOptionValues{Values: playwright.StringSlice(option)})
	return err
}

func (p *InventoryPage) AssertSortOption(option string) error {
	e, err := p.expectLocator(SelectorSortDropdown)
	if err != nil {
		return err
	}
	return e.ToHaveValue(option)
}

func (p *InventoryPage) ProductNames() ([]string, error) {
	return p.AllTexts(SelectorInventoryItemName)
}

// ProductPrices parses the "$29.99" style price labels.
func (p *InventoryPage) ProductPrices() ([]float64, error) {
	labels, err := p.AllTexts(SelectorInventoryItemPrice)
	if err != nil {
		return nil, err
	}
	return parsePrices(labels)
}

func parsePrices(labels []string) ([]float64, error) {
	prices := make([]float64, 0, len(labels))
	for _, label := range labels {
		price, err := strconv.ParseFloat(strings.TrimPrefix(strings.TrimSpace(label), "$"), 64)
		if err != nil {
			return nil, err
		}
		prices = append(prices, price)
	}
	return prices, nil
}

func (p *InventoryPage) AddProductToCart(productName string) error {
	return p.session.Click(AddToCartSelector(productName))
}

func (p *InventoryPage) RemoveProductFromCart(productName string) error {
	return p.session.Click(RemoveSelector(productName))
}

// ButtonState is the state of a product's cart button.
type ButtonState string

const (
	ButtonAdd    ButtonState = "add"
	ButtonRemove ButtonState = "remove"
)

func (p *InventoryPage) AssertProductButtonState(productName string, state ButtonState) error {
	if state == ButtonAdd {
		return p.AssertVisible(AddToCartSelector(productName))
	}
	return p.AssertVisible(RemoveSelector(productName))
}

func (p *InventoryPage) ClickProductName(productName string) error {
	return p.ClickWithText(SelectorInventoryItemName, productName)
}

// AssertCartBadgeCount expects the badge to show n, or to be hidden for 0.
func (p *InventoryPage) AssertCartBadgeCount(n int) error {
	if n > 0 {
		return p.AssertText(SelectorCartBadge, strconv.Itoa(n))
	}
	return p.AssertHidden(SelectorCartBadge)
}

func (p *InventoryPage) NavigateToCart() error {
	return p.session.Click(SelectorCartLink)
}

func (p *InventoryPage) AssertShoppingCartLinkVisible() error {
	return p.AssertVisible(SelectorCartLink)
}

func (p *InventoryPage) AssertErrorBannerVisible(expected string) error {
	if err := p.AssertVisible(SelectorErrorBanner); err != nil {
		return err
	}
	if expected == "" {
		return nil
	}
	return p.AssertContainsText(SelectorErrorBanner, expected)
}

func (p *InventoryPage) AssertErrorBannerNotVisible() error {
	return p.AssertHidden(SelectorErrorBanner)
}
