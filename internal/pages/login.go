package pages

import (
	"github.com/playwright-community/playwright-go"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// LoginPage is the storefront entry point at "/".
type LoginPage struct {
	Base
}

// NewLoginPage wraps s.
func NewLoginPage(s browser.Session, opts ...Option) *LoginPage {
	return &LoginPage{Base: newBase(s, opts...)}
}

// Login fills both fields and submits.
func (p *LoginPage) Login(username, password string) error {
	if err := p.session.Fill(SelectorUsername, username); err != nil {
		return err
	}
	if err := p.session.Fill(SelectorPassword, password); err != nil {
		return err
	}
	return p.session.Click(SelectorLoginButton)
}

func (p *LoginPage) AssertLoginPageDisplayed() error {
	for _, sel := range []string{SelectorUsername, SelectorPassword, SelectorLoginButton} {
		if err := p.AssertVisible(sel); err != nil {
			return err
		}
	}
	return nil
}

func (p *LoginPage) AssertErrorMessage(expected string) error {
	if err := p.AssertVisible(SelectorError); err != nil {
		return err
	}
	return p.AssertContainsText(SelectorError, expected)
}

// ClearErrorMessage dismisses the error banner and waits for it to go away.
func (p *LoginPage) ClearErrorMessage() error {
	if err := p.session.Click(SelectorErrorButton); err != nil {
		return err
	}
	return p.AssertHidden(SelectorError)
}

func (p *LoginPage) AssertNoErrorDisplayed() error {
	return p.AssertHidden(SelectorError)
}

func (p *LoginPage) AssertAcceptedUsernamesListed() error {
	return p.AssertVisible(SelectorLoginCredentials)
}

func (p *LoginPage) AssertAcceptedUsernamesTextVisible() error {
	pg, err := p.page()
	if err != nil {
		return err
	}
	return p.expect().Locator(pg.GetByText("Accepted usernames are:")).ToBeVisible()
}

// AssertLoginFieldsVisible checks the fields by accessible role and name.
func (p *LoginPage) AssertLoginFieldsVisible() error {
	pg, err := p.page()
	if err != nil {
		return err
	}
	for _, name := range []string{"Username", "Password"} {
		field := pg.GetByRole(*playwright.AriaRoleTextbox, playwright.PageGetByRoleOptions{Name: name})
		if err := p.expect().Locator(field).ToBeVisible(); err != nil {
			return err
		}
	}
	return nil
}
