package e2e

import (
	"fmt"
	"os"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/storefront-qa/sauce-e2e/internal/browser"
	internalcli "github.com/storefront-qa/sauce-e2e/internal/cli"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/helpers"
	"github.com/storefront-qa/sauce-e2e/internal/logging"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
	"github.com/storefront-qa/sauce-e2e/internal/probe"
)

// localPassword is the shared secret the replica publishes on its login page.
const localPassword = "secret_sauce"

var (
	suite     *config.SuiteConfig
	users     *config.Users
	launcher  *browser.Launcher
	h         *helpers.Helpers
	snapshots *helpers.Snapshotter
	baseURL   string
	logger    *zap.Logger

	// launchErr is set when playwright could not start; browser specs skip.
	launchErr error
)

// TestMain loads the suite settings, starts the local storefront when no
// BASE_URL is given and launches the browser shared by all specs.
func TestMain(m *testing.M) {
	os.Exit(run(m))
}

func run(m *testing.M) int {
	if _, err := config.LoadDotEnv("../.env", ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		return 1
	}

	var err error
	suite, err = config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	logger = logging.New(suite.LogLevel, suite.LogFormat).Named("e2e")
	defer logging.Sync(logger)

	if suite.UsesLocalStorefront() && os.Getenv("PASSWORD") == "" {
		os.Setenv("PASSWORD", localPassword)
	}
	users, err = config.LoadUsers(os.Getenv)
	if err != nil {
		logger.Error("failed to load users", zap.Error(err))
		return 1
	}
	h = helpers.New(users, logger)
	snapshots = helpers.NewSnapshotter(suite, logger)
	probe.AxeScriptURL = suite.AxeScriptURL

	baseURL = suite.BaseURL
	if suite.UsesLocalStorefront() {
		serverCfg := config.LoadServerConfig(os.Getenv)
		serverCfg.Host, serverCfg.Port = "127.0.0.1", "0"
		deps, err := internalcli.BuildServerDependencies(users, serverCfg, logger)
		if err != nil {
			logger.Error("failed to build storefront", zap.Error(err))
			return 1
		}
		listener, server, err := internalcli.StartServer(deps)
		if err != nil {
			logger.Error("failed to start storefront", zap.Error(err))
			return 1
		}
		defer listener.Close()
		defer server.Close()
		baseURL = "http://" + listener.Addr().String()
	}
	logger.Info("running specs", zap.String("baseURL", baseURL), zap.String("browser", suite.Browser))

	launcher, launchErr = browser.Launch(suite, logger)
	if launchErr != nil {
		logger.Warn("browser specs will be skipped", zap.Error(launchErr))
	} else {
		defer launcher.Close()
	}

	return m.Run()
}

// newSession opens an isolated browsing context for t and closes it when t ends.
func newSession(t *testing.T, options ...playwright.BrowserNewContextOptions) *browser.PageSession {
	t.Helper()
	if launchErr != nil {
		t.Skipf("playwright is not available: %v", launchErr)
	}
	session, ctx, err := launcher.NewSession(baseURL, options...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ctx.Close()
	})
	return session
}

func opts() []pages.Option {
	return []pages.Option{pages.WithTimeout(suite.DefaultTimeout)}
}

// loggedIn returns a session signed in as role and parked on the inventory.
func loggedIn(t *testing.T, role config.Role, options ...playwright.BrowserNewContextOptions) *browser.PageSession {
	t.Helper()
	session := newSession(t, options...)
	require.NoError(t, h.LoginAs(session, role))
	require.NoError(t, pages.NewInventoryPage(session, opts()...).AssertInventoryPageDisplayed())
	return session
}

// requireLocal skips specs that depend on the replica's exact behavior.
func requireLocal(t *testing.T) {
	t.Helper()
	if !suite.UsesLocalStorefront() {
		t.Skip("runs against the local storefront only")
	}
}

// onLoginPage returns a fresh session already showing the login form.
func onLoginPage(t *testing.T) *browser.PageSession {
	t.Helper()
	session := newSession(t)
	require.NoError(t, pages.NewLoginPage(session, opts()...).Goto("/"))
	return session
}
