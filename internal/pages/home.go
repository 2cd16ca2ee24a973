// internal/pages/home.go
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/binaytara/sitecheck/internal/browser"
)

const (
	homeNavSelector = "header nav a"

	newsletterEmailSelector   = "form.newsletter input[type=email]"
	newsletterSubmitSelector  = "form.newsletter button[type=submit]"
	newsletterSuccessSelector = "form.newsletter .success-message, .newsletter-confirmation"
)

// Home is the landing page. Its checks cover the primary navigation and the
// newsletter signup form in the footer.
type Home struct {
	page *Page
}

// NewHome builds the landing page object.
func NewHome(browse Browsing, baseURL string) *Home {
	return &Home{page: NewPage(browse, baseURL, "/", "Binaytara")}
}

// Open navigates to the landing page.
func (h *Home) Open(ctx context.Context) (browser.NavigationResult, error) {
	return h.page.Open(ctx)
}

// NavLinks returns the text and target of every link in the primary
// navigation, keyed by the link text.
func (h *Home) NavLinks(ctx context.Context) (map[string]string, error) {
	doc, err := h.page.Document(ctx)
	if err != nil {
		return nil, err
	}
	links := collectLinks(doc, homeNavSelector)
	if len(links) == 0 {
		return nil, fmt.Errorf("no links found in primary navigation")
	}
	return links, nil
}

// Subscribe fills the newsletter form and waits for the confirmation
// message.
func (h *Home) Subscribe(ctx context.Context, email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("newsletter email cannot be empty")
	}

	eng := h.page.engine()
	if err := eng.Fill(ctx, newsletterEmailSelector, email); err != nil {
		return fmt.Errorf("failed to fill newsletter email: %w", err)
	}
	if err := eng.Click(ctx, newsletterSubmitSelector); err != nil {
		return fmt.Errorf("failed to submit newsletter form: %w", err)
	}
	if err := eng.WaitVisible(ctx, newsletterSuccessSelector, browser.DefaultAssertTimeout); err != nil {
		return fmt.Errorf("newsletter confirmation did not appear: %w", err)
	}
	return nil
}
