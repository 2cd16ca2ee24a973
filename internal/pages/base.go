// internal/pages/base.go

// Package pages holds the page objects for the Binaytara Foundation website.
// Each page object composes the shared browsing capability instead of
// inheriting from a base class: it holds a Browsing instance and forwards
// navigation, title and heading checks to it, adding only its own selectors
// and interactions.
package pages

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/binaytara/sitecheck/internal/browser"
)

// Browsing is the capability set every page object needs: navigation with a
// not-found verdict, title expectation, heading assertion and raw element
// access. *browser.Navigator satisfies it.
type Browsing interface {
	Navigate(ctx context.Context, target string, opts browser.NavigateOptions) (browser.NavigationResult, error)
	ExpectTitle(ctx context.Context, expected string, timeout time.Duration) error
	AssertHeading(ctx context.Context, pattern *regexp.Regexp) (string, error)
	Engine() browser.Engine
}

// Page is the shared core of every page object: a path on the site, the
// title fragment the page is expected to carry, and the browsing capability
// the checks run through.
type Page struct {
	browse  Browsing
	baseURL string
	path    string
	title   string
}

// NewPage builds the shared page core.
func NewPage(browse Browsing, baseURL, path, title string) *Page {
	return &Page{
		browse:  browse,
		baseURL: strings.TrimRight(baseURL, "/"),
		path:    path,
		title:   title,
	}
}

// URL returns the absolute URL of the page.
func (p *Page) URL() string {
	if p.path == "" || p.path == "/" {
		return p.baseURL + "/"
	}
	return p.baseURL + "/" + strings.TrimLeft(p.path, "/")
}

// Open navigates to the page and returns the verdict. A 404 outcome is
// returned to the caller, not raised; the title check only runs for pages
// that exist.
func (p *Page) Open(ctx context.Context) (browser.NavigationResult, error) {
	result, err := p.browse.Navigate(ctx, p.URL(), browser.NavigateOptions{})
	if err != nil {
		return result, err
	}
	if result.Is404 {
		return result, nil
	}
	if p.title != "" {
		if err := p.browse.ExpectTitle(ctx, p.title, 0); err != nil {
			return result, fmt.Errorf("%s: %w", p.path, err)
		}
	}
	return result, nil
}

// Heading asserts the page's visible h1 and returns its text.
func (p *Page) Heading(ctx context.Context, pattern *regexp.Regexp) (string, error) {
	return p.browse.AssertHeading(ctx, pattern)
}

// Document parses the current page's markup for element-level inspection
// that goes beyond single-selector reads.
func (p *Page) Document(ctx context.Context) (*goquery.Document, error) {
	html, err := p.browse.Engine().HTML(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}
	return doc, nil
}

func (p *Page) engine() browser.Engine {
	return p.browse.Engine()
}

// collectLinks gathers link text and href for every anchor matching the
// selector. Anchors without text or href are skipped.
func collectLinks(doc *goquery.Document, selector string) map[string]string {
	links := make(map[string]string)
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		href, ok := s.Attr("href")
		if text == "" || !ok || strings.TrimSpace(href) == "" {
			return
		}
		links[text] = href
	})
	return links
}
