package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// CartPage is /cart.html.
type CartPage struct {
	Base
}

func NewCartPage(s browser.Session, opts ...Option) *CartPage {
	return &CartPage{Base: newBase(s, opts...)}
}

func (p *CartPage) AssertCartPageDisplayed() error {
	if err := p.AssertURL(`/cart\.html`); err != nil {
		return err
	}
	return p.AssertText(SelectorTitle, "Your Cart")
}

func (p *CartPage) AssertItemCount(n int) error {
	return p.AssertCount(SelectorCartItem, n)
}

func (p *CartPage) AssertItemInCart(productName string) error {
	pg, err := p.page()
	if err != nil {
		return err
	}
	return p.expect().Locator(pg.Locator(SelectorInventoryItemName).GetByText(productName, playwright.LocatorGetByTextOptions{Exact: playwright.Bool(true)})).ToBeVisible()
}

func (p *CartPage) ItemNames() ([]string, error) {
	return p.AllTexts(SelectorInventoryItemName)
}

func (p *CartPage) RemoveItem(productName string) error {
	return p.session.Click(RemoveSelector(productName))
}

func (p *CartPage) ContinueShopping() error {
	return p.session.Click(SelectorContinueShopping)
}

func (p *CartPage) Checkout() error {
	return p.session.Click(SelectorCheckout)
}
