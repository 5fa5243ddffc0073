package cli

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/handlers"
)

func startStorefront(t *testing.T) string {
	t.Helper()
	users, err := config.LoadUsers(func(key string) string {
		if key == "PASSWORD" {
			return "secret_sauce"
		}
		return ""
	})
	require.NoError(t, err)

	deps, err := BuildServerDependencies(users, config.ServerConfig{Host: "127.0.0.1", Port: "0"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	listener, server, err := StartServer(deps)
	require.NoError(t, err)
	t.Cleanup(func() {
		server.Close()
		listener.Close()
	})
	return fmt.Sprintf("http://%s", listener.Addr().String())
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestStorefront_ProtectedPageRedirectsToLogin(t *testing.T) {
	base := startStorefront(t)
	client := newClient(t)

	resp, err := client.Get(base + "/cart.html")
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, "You can only access")
	assert.Contains(t, body, "/cart.html")
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestStorefront_LoginAndCheckout(t *testing.T) {
	base := startStorefront(t)
	client := newClient(t)

	resp, err := client.PostForm(base+"/", url.Values{"user-name": {"standard_user"}, "password": {"secret_sauce"}})
	require.NoError(t, err)
	body := readBody(t, resp)
	require.Equal(t, "/inventory.html", resp.Request.URL.Path)
	assert.Contains(t, body, "Sauce Labs Backpack")

	baseURL, err := url.Parse(base)
	require.NoError(t, err)
	client.Jar.SetCookies(baseURL, []*http.Cookie{{Name: handlers.CartCookie, Value: "4", Path: "/"}})

	resp, err = client.Get(base + "/api/inventory")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), `"cart":[4]`)

	resp, err = client.PostForm(base+"/checkout-step-one.html", url.Values{"firstName": {"Jane"}, "lastName": {"Doe"}, "postalCode": {"12345"}})
	require.NoError(t, err)
	body = readBody(t, resp)
	require.Equal(t, "/checkout-step-two.html", resp.Request.URL.Path)
	assert.Contains(t, body, "Total: $32.39")

	resp, err = client.PostForm(base+"/checkout-step-two.html", url.Values{})
	require.NoError(t, err)
	body = readBody(t, resp)
	assert.Equal(t, "/checkout-complete.html", resp.Request.URL.Path)
	assert.Contains(t, body, "Thank you for your order!")
	assert.Contains(t, body, `data-test="order-reference"`)
	assert.Contains(t, body, "$32.39")
	assert.False(t, strings.Contains(body, "shopping-cart-badge"), "cart is emptied by the order")

	resp, err = client.Get(base + "/logout")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, "/", resp.Request.URL.Path)

	resp, err = client.Get(base + "/api/inventory")
	require.NoError(t, err)
	readBody(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStorefront_LockedOutUser(t *testing.T) {
	base := startStorefront(t)
	client := newClient(t)

	resp, err := client.PostForm(base+"/", url.Values{"user-name": {"locked_out_user"}, "password": {"secret_sauce"}})
	require.NoError(t, err)
	body := readBody(t, resp)

	assert.Equal(t, "/", resp.Request.URL.Path)
	assert.Contains(t, body, handlers.MsgLockedOut)
}
