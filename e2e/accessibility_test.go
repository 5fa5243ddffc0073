package e2e

import (
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
	"github.com/storefront-qa/sauce-e2e/internal/probe"
)

// bypassCSP lets axe-core load into pages served with default-src 'self'.
var bypassCSP = playwright.BrowserNewContextOptions{BypassCSP: playwright.Bool(true)}

// TestAccessibility_KeyboardLogin
// Feature: Accessibility
//
//	Scenario: Sign in with the keyboard only
//	  Given the username field has focus
//	  When I type, Tab to the password, type and press Enter
//	  Then I am signed in
func TestAccessibility_KeyboardLogin(t *testing.T) {
	t.Parallel()
	session := newSession(t)
	login := pages.NewLoginPage(session, opts()...)
	require.NoError(t, login.Goto("/"))
	creds, err := users.GetUser(config.StandardUser)
	require.NoError(t, err)

	require.NoError(t, session.Fill(pages.SelectorUsername, creds.Username))
	require.NoError(t, session.Press(pages.SelectorUsername, "Tab"))
	require.NoError(t, login.AssertFocused(pages.SelectorPassword))

	require.NoError(t, session.Fill(pages.SelectorPassword, creds.Password))
	require.NoError(t, session.Press(pages.SelectorPassword, "Enter"))

	require.NoError(t, pages.NewInventoryPage(session, opts()...).AssertInventoryPageDisplayed())
}

// TestAccessibility_LabelledFields
//
//	Scenario: Login fields are reachable by accessible name
func TestAccessibility_LabelledFields(t *testing.T) {
	t.Parallel()
	session := newSession(t)
	login := pages.NewLoginPage(session, opts()...)
	require.NoError(t, login.Goto("/"))

	require.NoError(t, login.AssertLoginFieldsVisible())
}

// TestAccessibility_ImagesHaveAltText
func TestAccessibility_ImagesHaveAltText(t *testing.T) {
	t.Parallel()
	session := loggedIn(t, config.StandardUser)

	require.NoError(t, pages.NewInventoryPage(session, opts()...).AssertCount("img:not([alt]), img[alt='']", 0))
}

// TestAccessibility_AxeScans
//
//	Scenario Outline: No WCAG 2 A or AA violations
//	  Given I am on the <page>
//	  When axe-core scans the document
//	  Then it reports no violations
func TestAccessibility_AxeScans(t *testing.T) {
	t.Parallel()
	requireLocal(t)

	tests := []struct {
		name string
		open func(t *testing.T) browser.Session
	}{
		{
			name: "login",
			open: func(t *testing.T) browser.Session {
				session := newSession(t, bypassCSP)
				require.NoError(t, pages.NewLoginPage(session, opts()...).Goto("/"))
				return session
			},
		},
		{
			name: "inventory",
			open: func(t *testing.T) browser.Session {
				return loggedIn(t, config.StandardUser, bypassCSP)
			},
		},
		{
			name: "product detail",
			open: func(t *testing.T) browser.Session {
				session := loggedIn(t, config.StandardUser, bypassCSP)
				require.NoError(t, pages.NewInventoryPage(session, opts()...).ClickProductName("Sauce Labs Backpack"))
				require.NoError(t, pages.NewProductDetailPage(session, opts()...).AssertProductDetailsDisplayed())
				return session
			},
		},
		{
			name: "checkout",
			open: func(t *testing.T) browser.Session {
				session := loggedIn(t, config.StandardUser, bypassCSP)
				require.NoError(t, h.AddItemsToCart(session, "Sauce Labs Backpack"))
				require.NoError(t, pages.NewInventoryPage(session, opts()...).NavigateToCart())
				require.NoError(t, pages.NewCartPage(session, opts()...).Checkout())
				require.NoError(t, pages.NewCheckoutStepOnePage(session, opts()...).AssertDisplayed())
				return session
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			session := tt.open(t)

			require.NoError(t, probe.AssertNoAccessibilityViolations(t, session, "wcag2a", "wcag2aa"))
		})
	}
}
