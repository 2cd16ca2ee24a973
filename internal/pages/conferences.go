// internal/pages/conferences.go
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/binaytara/sitecheck/internal/browser"
)

const (
	conferenceSearchSelector = "input[type=search], input[name=q]"
	conferenceSubmitSelector = "form.search button[type=submit], button.search-submit"
	conferenceCardSelector   = ".conference-card, article.conference"
	conferenceNextSelector   = ".pagination a[rel=next], .pagination .next a"
)

// Conference is one listing entry on the conferences page.
type Conference struct {
	Title string
	URL   string
}

// Conferences is the conference listing page with its search box and
// pagination controls.
type Conferences struct {
	page *Page
}

// NewConferences builds the conferences page object.
func NewConferences(browse Browsing, baseURL string) *Conferences {
	return &Conferences{page: NewPage(browse, baseURL, "/conferences", "Conferences")}
}

// Open navigates to the conferences listing.
func (c *Conferences) Open(ctx context.Context) (browser.NavigationResult, error) {
	return c.page.Open(ctx)
}

// Search submits a query through the listing's search box. Results settle
// when the card list becomes visible again.
func (c *Conferences) Search(ctx context.Context, query string) error {
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("search query cannot be empty")
	}

	eng := c.page.engine()
	if err := eng.Fill(ctx, conferenceSearchSelector, query); err != nil {
		return fmt.Errorf("failed to fill conference search: %w", err)
	}
	if err := eng.Click(ctx, conferenceSubmitSelector); err != nil {
		return fmt.Errorf("failed to submit conference search: %w", err)
	}
	if err := eng.WaitVisible(ctx, conferenceCardSelector, browser.DefaultAssertTimeout); err != nil {
		return fmt.Errorf("search results did not render: %w", err)
	}
	return nil
}

// Listings returns the conference entries currently rendered.
func (c *Conferences) Listings(ctx context.Context) ([]Conference, error) {
	doc, err := c.page.Document(ctx)
	if err != nil {
		return nil, err
	}

	var listings []Conference
	doc.Find(conferenceCardSelector).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h2, h3, .title").First().Text())
		href, _ := s.Find("a[href]").First().Attr("href")
		if title == "" {
			return
		}
		listings = append(listings, Conference{Title: title, URL: href})
	})
	return listings, nil
}

// HasNextPage reports whether the pagination exposes a next-page control.
func (c *Conferences) HasNextPage(ctx context.Context) (bool, error) {
	doc, err := c.page.Document(ctx)
	if err != nil {
		return false, err
	}
	return doc.Find(conferenceNextSelector).Length() > 0, nil
}

// NextPage follows the pagination's next-page control and waits for the new
// card list to render.
func (c *Conferences) NextPage(ctx context.Context) error {
	eng := c.page.engine()
	if err := eng.Click(ctx, conferenceNextSelector); err != nil {
		return fmt.Errorf("failed to follow pagination: %w", err)
	}
	if err := eng.WaitVisible(ctx, conferenceCardSelector, browser.DefaultAssertTimeout); err != nil {
		return fmt.Errorf("next page did not render: %w", err)
	}
	return nil
}
