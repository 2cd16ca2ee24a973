// internal/pages/about.go
package pages

import (
	"context"
	"regexp"

	"github.com/binaytara/sitecheck/internal/browser"
)

var missionPattern = regexp.MustCompile(`(?i)(mission|about|binaytara)`)

// About is the organization's about page.
type About struct {
	page *Page
}

// NewAbout builds the about page object.
func NewAbout(browse Browsing, baseURL string) *About {
	return &About{page: NewPage(browse, baseURL, "/about", "About")}
}

// Open navigates to the about page.
func (a *About) Open(ctx context.Context) (browser.NavigationResult, error) {
	return a.page.Open(ctx)
}

// MissionHeading asserts the page's top-level heading names the mission and
// returns its text.
func (a *About) MissionHeading(ctx context.Context) (string, error) {
	return a.page.Heading(ctx, missionPattern)
}
