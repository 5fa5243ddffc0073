package pages

import (
	"github.com/storefront-qa/sauce-e2e/internal/browser"
)

// SocialNetwork names a footer link.
type SocialNetwork string

const (
	Twitter  SocialNetwork = "twitter"
	Facebook SocialNetwork = "facebook"
	LinkedIn SocialNetwork = "linkedin"
)

var socialSelectors = map[SocialNetwork]string{
	Twitter:  SelectorTwitterLink,
	Facebook: SelectorFacebookLink,
	LinkedIn: SelectorLinkedInLink,
}

// NavigationMenu is the burger menu and footer present on every signed-in page.
type NavigationMenu struct {
	Base
}

func NewNavigationMenu(s browser.Session, opts ...Option) *NavigationMenu {
	return &NavigationMenu{Base: newBase(s, opts...)}
}

func (m *NavigationMenu) Open() error {
	if err := m.session.Click(SelectorMenuButton); err != nil {
		return err
	}
	return m.AssertVisible(SelectorSidebarMenu)
}

func (m *NavigationMenu) Close() error {
	if err := m.session.Click(SelectorMenuClose); err != nil {
		return err
	}
	return m.AssertHidden(SelectorSidebarMenu)
}

func (m *NavigationMenu) AssertMenuItemsVisible() error {
	for _, sel := range []string{SelectorAllItemsLink, SelectorAboutLink, SelectorLogoutLink, SelectorResetLink} {
		if err := m.AssertVisible(sel); err != nil {
			return err
		}
	}
	return nil
}

// Logout opens the menu when needed and signs out.
func (m *NavigationMenu) Logout() error {
	if err := m.Open(); err != nil {
		return err
	}
	return m.session.Click(SelectorLogoutLink)
}

func (m *NavigationMenu) ResetAppState() error {
	if err := m.Open(); err != nil {
		return err
	}
	return m.session.Click(SelectorResetLink)
}

func (m *NavigationMenu) AllItems() error {
	if err := m.Open(); err != nil {
		return err
	}
	return m.session.Click(SelectorAllItemsLink)
}

// AboutHref returns the target of the About link without following it.
func (m *NavigationMenu) AboutHref() (string, error) {
	return m.href(SelectorAboutLink)
}

// SocialHref returns the footer link target for network.
func (m *NavigationMenu) SocialHref(network SocialNetwork) (string, error) {
	sel, ok := socialSelectors[network]
	if !ok {
		return "", &UnknownSocialNetworkError{Network: network}
	}
	return m.href(sel)
}

func (m *NavigationMenu) href(selector string) (string, error) {
	loc, err := m.locator(selector)
	if err != nil {
		return "", err
	}
	return loc.GetAttribute("href")
}

// UnknownSocialNetworkError is returned for a network without a footer link.
type UnknownSocialNetworkError struct {
	Network SocialNetwork
}

func (e *UnknownSocialNetworkError) Error() string {
	return "no footer link for " + string(e.Network)
}
