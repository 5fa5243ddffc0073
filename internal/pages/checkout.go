package pages

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// Checkout validation messages shown on step one.
const (
	ErrFirstNameRequired  = "Error: First Name is required"
	ErrLastNameRequired   = "Error: Last Name is required"
	ErrPostalCodeRequired = "Error: Postal Code is required"
)

// CheckoutInfo is the customer form of step one.
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// CheckoutStepOnePage is /checkout-step-one.html.
type CheckoutStepOnePage struct {
	Base
}

func NewCheckoutStepOnePage(s browser.Session, opts ...Option) *CheckoutStepOnePage {
	return &CheckoutStepOnePage{Base: newBase(s, opts...)}
}

func (p *CheckoutStepOnePage) AssertDisplayed() error {
	return p.AssertText(SelectorTitle, "Checkout: Your Information")
}

// FillInformation fills the form. Empty fields are left untouched.
func (p *CheckoutStepOnePage) FillInformation(info CheckoutInfo) error {
	fields := []struct {
		selector string
		value    string
	}{
		{SelectorFirstName, info.FirstName},
		{SelectorLastName, info.LastName},
		{SelectorPostalCode, info.PostalCode},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := p.session.Fill(f.selector, f.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *CheckoutStepOnePage) Continue() error {
	return p.session.Click(SelectorContinue)
}

func (p *CheckoutStepOnePage) Cancel() error {
	return p.session.Click(SelectorCancel)
}

func (p *CheckoutStepOnePage) AssertErrorMessage(expected string) error {
	return p.AssertContainsText(SelectorError, expected)
}

// Summary holds the money lines of the overview page.
type Summary struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// Consistent reports whether subtotal plus tax equals total to the cent.
func (s Summary) Consistent() bool {
	return math.Round((s.Subtotal+s.Tax)*100) == math.Round(s.Total*100)
}

// CheckoutStepTwoPage is the overview at /checkout-step-two.html.
type CheckoutStepTwoPage struct {
	Base
}

func NewCheckoutStepTwoPage(s browser.Session, opts ...Option) *CheckoutStepTwoPage {
	return &CheckoutStepTwoPage{Base: newBase(s, opts...)}
}

func (p *CheckoutStepTwoPage) AssertDisplayed() error {
	return p.AssertText(SelectorTitle, "Checkout: Overview")
}

func (p *CheckoutStepTwoPage) AssertItemCount(n int) error {
	return p.AssertCount(SelectorCartItem, n)
}

func (p *CheckoutStepTwoPage) AssertPaymentAndShipping() error {
	if err := p.AssertText(SelectorPaymentInfo, "SauceCard #31337"); err != nil {
		return err
	}
	return p.AssertText(SelectorShippingInfo, "Free Pony Express Delivery!")
}

// Summary reads and parses subtotal, tax and total.
func (p *CheckoutStepTwoPage) Summary() (Summary, error) {
	var s Summary
	lines := []struct {
		selector string
		prefix   string
		dst      *float64
	}{
		{SelectorSubtotal, "Item total:", &s.Subtotal},
		{SelectorTax, "Tax:", &s.Tax},
		{SelectorTotal, "Total:", &s.Total},
	}
	for _, line := range lines {
		text, err := p.session.TextContent(line.selector)
		if err != nil {
			return Summary{}, err
		}
		amount, err := ParseAmount(text, line.prefix)
		if err != nil {
			return Summary{}, err
		}
		*line.dst = amount
	}
	return s, nil
}

// ParseAmount parses labels like "Tax: $2.40".
func ParseAmount(label, prefix string) (float64, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(label), prefix)
	if !ok {
		return 0, fmt.Errorf("label %q does not start with %q", label, prefix)
	}
	rest = strings.TrimPrefix(strings.TrimSpace(rest), "$")
	amount, err := strconv.ParseFloat(rest, 64)
	if err != nil {
		return 0, fmt.Errorf("label %q: %w", label, err)
	}
	return amount, nil
}

func (p *CheckoutStepTwoPage) Finish() error {
	return p.session.Click(SelectorFinish)
}

func (p *CheckoutStepTwoPage) Cancel() error {
	return p.session.Click(SelectorCancel)
}

// CheckoutCompletePage is /checkout-complete.html.
type CheckoutCompletePage struct {
	Base
}

func NewCheckoutCompletePage(s browser.Session, opts ...Option) *CheckoutCompletePage {
	return &CheckoutCompletePage{Base: newBase(s, opts...)}
}

func (p *CheckoutCompletePage) AssertOrderComplete() error {
	if err := p.AssertText(SelectorTitle, "Checkout: Complete!"); err != nil {
		return err
	}
	if err := p.AssertText(SelectorCompleteHeader, "Thank you for your order!"); err != nil {
		return err
	}
	if err := p.AssertVisible(SelectorCompleteText); err != nil {
		return err
	}
	return p.AssertVisible(SelectorPonyExpress)
}

func (p *CheckoutCompletePage) BackHome() error {
	return p.session.Click(SelectorBackHome)
}
