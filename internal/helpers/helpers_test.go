package helpers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"

	"github.com/storefront-qa/sauce-e2e/internal/browser/browsertest"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
)

func newHelpers(t *testing.T, password string) *Helpers {
	t.Helper()
	users, err := config.LoadUsers(func(key string) string {
		if key == "PASSWORD" {
			return password
		}
		return ""
	})
	require.NoError(t, err)
	return New(users, zaptest.NewLogger(t))
}

func TestLoginAs_DrivesTheLoginForm(t *testing.T) {
	// GIVEN a configured password and a fresh session
	h := newHelpers(t, "secret_sauce")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	// WHEN logging in as the standard user
	err := h.LoginAs(fake, config.StandardUser)

	// THEN the root page is opened and the form submitted once
	require.NoError(t, err)
	assert.Equal(t, []browsertest.Action{
		{Kind: "goto", Selector: "/"},
		{Kind: "fill", Selector: pages.SelectorUsername, Value: "standard_user"},
		{Kind: "fill", Selector: pages.SelectorPassword, Value: "secret_sauce"},
		{Kind: "click", Selector: pages.SelectorLoginButton},
	}, fake.Actions)
	assert.Equal(t, "https://www.saucedemo.com/", fake.URL())
}

func TestLoginAs_LockedOutUserStillSubmits(t *testing.T) {
	h := newHelpers(t, "secret_sauce")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	require.NoError(t, h.LoginAs(fake, config.LockedOutUser))

	fills := fake.ActionsOf("fill")
	require.Len(t, fills, 2)
	assert.Equal(t, "locked_out_user", fills[0].Value)
	assert.Len(t, fake.ActionsOf("click"), 1)
}

func TestLoginAs_ConfigurationErrorsBeforeAnyInteraction(t *testing.T) {
	tests := []struct {
		name     string
		password string
		role     config.Role
		wantErr  error
		wantKind config.ErrorKind
	}{
		{"unknown role", "secret_sauce", "admin_user", config.ErrUnknownRole, config.UnknownRole},
		{"missing secret", "", config.StandardUser, config.ErrMissingSecret, config.MissingSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHelpers(t, tt.password)
			fake := browsertest.NewFakeSession("https://www.saucedemo.com")

			err := h.LoginAs(fake, tt.role)

			require.ErrorIs(t, err, tt.wantErr)
			var cfgErr *config.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKind, cfgErr.Kind)
			assert.Empty(t, fake.Actions, "no browser interaction on configuration errors")
		})
	}
}

func TestLoginAs_AutomationErrorsPassThroughUnmodified(t *testing.T) {
	boom := errors.New("net::ERR_CONNECTION_REFUSED")
	tests := []struct {
		name   string
		key    string
		clicks int
	}{
		{"navigation", "goto:/", 0},
		{"username field", "fill:" + pages.SelectorUsername, 0},
		{"login button", "click:" + pages.SelectorLoginButton, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHelpers(t, "secret_sauce")
			fake := browsertest.NewFakeSession("https://www.saucedemo.com")
			fake.Errors[tt.key] = boom

			err := h.LoginAs(fake, config.StandardUser)

			assert.Same(t, boom, err)
			assert.Len(t, fake.ActionsOf("click"), tt.clicks, "no retry")
		})
	}
}

func TestLoginAs_ConcurrentSessionsAreIndependent(t *testing.T) {
	h := newHelpers(t, "secret_sauce")
	roles := []config.Role{config.StandardUser, config.ProblemUser, config.VisualUser, config.ErrorUser}

	for _, role := range roles {
		t.Run(string(role), func(t *testing.T) {
			t.Parallel()
			fake := browsertest.NewFakeSession("https://www.saucedemo.com")

			require.NoError(t, h.LoginAs(fake, role))

			assert.Equal(t, string(role), fake.ActionsOf("fill")[0].Value)
		})
	}
}

func TestAttemptLogin_RawCredentials(t *testing.T) {
	h := newHelpers(t, "")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	require.NoError(t, h.AttemptLogin(fake, "' OR '1'='1", "x"))

	fills := fake.ActionsOf("fill")
	require.Len(t, fills, 2)
	assert.Equal(t, "' OR '1'='1", fills[0].Value)
	assert.Empty(t, fake.ActionsOf("goto"))
}

func TestAddItemsToCart(t *testing.T) {
	h := newHelpers(t, "secret_sauce")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	err := h.AddItemsToCart(fake, "Sauce Labs Backpack", "Test.allTheThings() T-Shirt (Red)")

	require.NoError(t, err)
	clicks := fake.ActionsOf("click")
	require.Len(t, clicks, 2)
	assert.Equal(t, `[data-test="add-to-cart-sauce-labs-backpack"]`, clicks[0].Selector)
	assert.Equal(t, `[data-test="add-to-cart-test.allthethings-t-shirt-red"]`, clicks[1].Selector)
}

func TestAddItemsToCart_StopsAtFirstFailure(t *testing.T) {
	h := newHelpers(t, "secret_sauce")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")
	boom := errors.New("timeout")
	fake.Errors["click:"+pages.AddToCartSelector("Sauce Labs Bike Light")] = boom

	err := h.AddItemsToCart(fake, "Sauce Labs Bike Light", "Sauce Labs Onesie")

	assert.Same(t, boom, err)
	assert.Len(t, fake.ActionsOf("click"), 1)
}

func TestCartCount(t *testing.T) {
	tests := []struct {
		name    string
		visible bool
		text    string
		want    int
		wantErr bool
	}{
		{name: "hidden badge means empty cart", visible: false, want: 0},
		{name: "badge shows count", visible: true, text: "3", want: 3},
		{name: "whitespace around count", visible: true, text: " 2\n", want: 2},
		{name: "garbage text", visible: true, text: "many", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := browsertest.NewFakeSession("https://www.saucedemo.com")
			fake.Visible[pages.SelectorCartBadge] = tt.visible
			fake.Texts[pages.SelectorCartBadge] = tt.text

			got, err := CartCount(fake)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFillCheckoutForm_FillsEveryFieldThenContinues(t *testing.T) {
	h := newHelpers(t, "secret_sauce")
	fake := browsertest.NewFakeSession("https://www.saucedemo.com")

	err := h.FillCheckoutForm(fake, pages.CheckoutInfo{FirstName: "John", PostalCode: "12345"})

	require.NoError(t, err)
	assert.Equal(t, []browsertest.Action{
		{Kind: "fill", Selector: pages.SelectorFirstName, Value: "John"},
		{Kind: "fill", Selector: pages.SelectorLastName, Value: ""},
		{Kind: "fill", Selector: pages.SelectorPostalCode, Value: "12345"},
		{Kind: "click", Selector: pages.SelectorContinue},
	}, fake.Actions)
}

func TestToElementID_MatchesAddToCartSuffix(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		name := rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ().-]{0,30}`).Draw(rt, "name")

		want := `[data-test="add-to-cart-` + ToElementID(name) + `"]`
		if got := pages.AddToCartSelector(name); got != want {
			rt.Fatalf("selector %q, want %q", got, want)
		}
	})
}
