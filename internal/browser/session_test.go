package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveURL(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		target string
		want   string
	}{
		{"root path", "https://www.saucedemo.com", "/", "https://www.saucedemo.com/"},
		{"page path", "https://www.saucedemo.com", "/inventory.html", "https://www.saucedemo.com/inventory.html"},
		{"relative path", "http://127.0.0.1:4000", "cart.html", "http://127.0.0.1:4000/cart.html"},
		{"absolute url untouched", "http://127.0.0.1:4000", "https://example.com/x", "https://example.com/x"},
		{"no base", "", "/cart.html", "/cart.html"},
		{"query kept", "http://127.0.0.1:4000", "/inventory-item.html?id=4", "http://127.0.0.1:4000/inventory-item.html?id=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.base, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveURL_InvalidTarget(t *testing.T) {
	_, err := ResolveURL("http://127.0.0.1:4000", "http://[::1")
	assert.Error(t, err)
}

func TestNewSession_TrimsBase(t *testing.T) {
	s := NewSession(nil, "https://www.saucedemo.com/")
	assert.Equal(t, "https://www.saucedemo.com", s.baseURL)
}
