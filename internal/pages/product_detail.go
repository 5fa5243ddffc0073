package pages

import (
	"strings"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// ProductDetailPage is /inventory-item.html.
type ProductDetailPage struct {
	Base
}

func NewProductDetailPage(s browser.Session, opts ...Option) *ProductDetailPage {
	return &ProductDetailPage{Base: newBase(s, opts...)}
}

func (p *ProductDetailPage) AssertProductDetailsDisplayed() error {
	for _, sel := range []string{SelectorDetailsName, SelectorDetailsDescription, SelectorDetailsPrice, SelectorDetailsImage} {
		if err := p.AssertVisible(sel); err != nil {
			return err
		}
	}
	return nil
}

func (p *ProductDetailPage) AssertProductName(name string) error {
	return p.AssertText(SelectorDetailsName, name)
}

func (p *ProductDetailPage) ProductName() (string, error) {
	name, err := p.session.TextContent(SelectorDetailsName)
	return strings.TrimSpace(name), err
}

func (p *ProductDetailPage) ProductPrice() (float64, error) {
	label, err := p.session.TextContent(SelectorDetailsPrice)
	if err != nil {
		return 0, err
	}
	prices, err := parsePrices([]string{label})
	if err != nil {
		return 0, err
	}
	return prices[0], nil
}

func (p *ProductDetailPage) AddToCart() error {
	return p.session.Click(SelectorDetailsAdd)
}

func (p *ProductDetailPage) RemoveFromCart() error {
	return p.session.Click(SelectorDetailsRemove)
}

func (p *ProductDetailPage) AssertRemoveButtonVisible() error {
	return p.AssertVisible(SelectorDetailsRemove)
}

func (p *ProductDetailPage) BackToProducts() error {
	return p.session.Click(SelectorBackToProducts)
}
