package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/config"
)

// Login banner texts
const (
	MsgUsernameRequired = "Epic sadface: Username is required"
	MsgPasswordRequired = "Epic sadface: Password is required"
	MsgLockedOut        = "Epic sadface: Sorry, this user has been locked out."
	MsgNoMatch          = "Epic sadface: Username and password do not match any user in this service"
)

// LoginHandler serves the login page at "/"
type LoginHandler struct {
	template    *template.Template
	users       *config.Users
	sessions    *Sessions
	logger      *zap.Logger
	glitchDelay time.Duration
}

// LoginData represents the data passed to the login template
type LoginData struct {
	// Form holds rejected input keyed by data-test hook; app.js puts it back
	// into the fields so it never appears in an attribute.
	Form      map[string]string
	Error     string
	Usernames []string
	Password  string
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(tmpl *template.Template, users *config.Users, sessions *Sessions, logger *zap.Logger, glitchDelay time.Duration) *LoginHandler {
	return &LoginHandler{
		template:    tmpl,
		users:       users,
		sessions:    sessions,
		logger:      logger,
		glitchDelay: glitchDelay,
	}
}

// ServeHTTP renders the form on GET and signs the shopper in on POST
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.show(w, r)
	case http.MethodPost:
		h.login(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *LoginHandler) show(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
		return
	}

	data := h.data("", "")
	if c, err := r.Cookie(FlashCookie); err == nil {
		if path, err := url.QueryUnescape(c.Value); err == nil && path != "" {
			data.Error = "Epic sadface: You can only access '" + path + "' when you are logged in."
		}
		clearCookie(w, FlashCookie)
	}
	render(w, h.logger, h.template, "login.html", data)
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("user-name")
	password := r.PostForm.Get("password")

	if msg := h.authenticate(username, password); msg != "" {
		h.logger.Info("login rejected", zap.String("username", username), zap.String("reason", msg))
		render(w, h.logger, h.template, "login.html", h.data(username, msg))
		return
	}

	role, _ := h.users.RoleOf(username)
	if role == config.PerformanceGlitchUser {
		if err := sleep(r.Context(), h.glitchDelay); err != nil {
			return
		}
	}

	h.logger.Info("login", zap.String("username", username), zap.String("role", string(role)))
	setSession(w, username)
	http.Redirect(w, r, "/inventory.html", http.StatusSeeOther)
}

// authenticate returns the banner text for a rejected login, or "".
func (h *LoginHandler) authenticate(username, password string) string {
	switch {
	case username == "":
		return MsgUsernameRequired
	case password == "":
		return MsgPasswordRequired
	}

	role, ok := h.users.RoleOf(username)
	if !ok || h.users.Password() == "" || password != h.users.Password() {
		return MsgNoMatch
	}
	if role == config.LockedOutUser {
		return MsgLockedOut
	}
	return ""
}

func (h *LoginHandler) data(username, msg string) LoginData {
	var form map[string]string
	if username != "" {
		form = map[string]string{"username": username}
	}
	return LoginData{
		Form:      form,
		Error:     msg,
		Usernames: h.users.Usernames(),
		Password:  h.users.Password(),
	}
}

// LogoutHandler ends the session and returns to the login page
type LogoutHandler struct {
	logger *zap.Logger
}

// NewLogoutHandler creates a new logout handler
func NewLogoutHandler(logger *zap.Logger) *LogoutHandler {
	return &LogoutHandler{logger: logger}
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil {
		h.logger.Info("logout", zap.String("username", c.Value))
	}
	clearCookie(w, SessionCookie)
	clearCookie(w, CheckoutCookie)
	clearCookie(w, OrderCookie)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
