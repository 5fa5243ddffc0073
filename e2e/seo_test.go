package e2e

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/helpers"
	"github.com/storefront-qa/sauce-e2e/internal/pages"
)

// TestSEO_BasicMetadata
// Feature: SEO
//
//	Scenario: Public and signed-in pages carry a title, description and viewport
func TestSEO_BasicMetadata(t *testing.T) {
	t.Parallel()

	t.Run("login", func(t *testing.T) {
		t.Parallel()
		session := newSession(t)
		require.NoError(t, pages.NewLoginPage(session, opts()...).Goto("/"))

		require.NoError(t, helpers.VerifyBasicSeoMetadata(t, session))
	})

	t.Run("inventory", func(t *testing.T) {
		t.Parallel()
		session := loggedIn(t, config.StandardUser)

		require.NoError(t, helpers.VerifyBasicSeoMetadata(t, session))
	})
}
