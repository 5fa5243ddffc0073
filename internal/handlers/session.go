package handlers

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/catalog"
	"github.com/storefront-qa/sauce-e2e/internal/config"
)

// Cookie names
const (
	SessionCookie  = "session-username"
	CartCookie     = "cart-contents"
	CheckoutCookie = "session-checkout"
	FlashCookie    = "session-flash"
	OrderCookie    = "session-order"
)

const sessionLifetime = 10 * time.Minute

type contextKey struct{}

// Shopper is the signed-in user of a request.
type Shopper struct {
	Username string
	Role     config.Role
}

// ShopperFrom returns the shopper attached by Sessions.RequireLogin.
func ShopperFrom(ctx context.Context) (Shopper, bool) {
	s, ok := ctx.Value(contextKey{}).(Shopper)
	return s, ok
}

// Sessions resolves the session cookie against the user directory.
type Sessions struct {
	users  *config.Users
	logger *zap.Logger
}

// NewSessions creates the session resolver
func NewSessions(users *config.Users, logger *zap.Logger) *Sessions {
	return &Sessions{users: users, logger: logger}
}

// Current returns the shopper named by the session cookie. Unknown and
// locked out usernames are not signed in.
func (s *Sessions) Current(r *http.Request) (Shopper, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return Shopper{}, false
	}
	role, ok := s.users.RoleOf(c.Value)
	if !ok || role == config.LockedOutUser {
		return Shopper{}, false
	}
	return Shopper{Username: c.Value, Role: role}, true
}

// RequireLogin sends anonymous requests back to the login page with an
// explanation of which page they tried to open.
func (s *Sessions) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shopper, ok := s.Current(r)
		if !ok {
			s.logger.Debug("anonymous access", zap.String("path", r.URL.Path))
			http.SetCookie(w, &http.Cookie{
				Name:     FlashCookie,
				Value:    url.QueryEscape(r.URL.Path),
				Path:     "/",
				MaxAge:   60,
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, shopper)))
	})
}

func setSession(w http.ResponseWriter, username string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    username,
		Path:     "/",
		MaxAge:   int(sessionLifetime.Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
}

// cartFrom reads the cart the browser keeps in its cookie.
func cartFrom(r *http.Request) catalog.Cart {
	c, err := r.Cookie(CartCookie)
	if err != nil {
		return catalog.Cart{}
	}
	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return catalog.Cart{}
	}
	return catalog.ParseCart(value)
}

// SecurityHeaders adds the hardening headers every response carries. HSTS is
// only sent over TLS.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Content-Security-Policy", "default-src 'self'; img-src 'self' data:; frame-ancestors 'none'")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}
