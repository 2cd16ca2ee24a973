// internal/pages/pages_test.go
package pages

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/binaytara/sitecheck/internal/browser"
)

type fakeEngine struct {
	html           string
	title          string
	text           map[string]string
	clicks         []string
	fills          map[string]string
	clickErr       error
	fillErr        error
	waitVisibleErr error
}

func (f *fakeEngine) Navigate(ctx context.Context, url string, opts browser.NavigateOptions) (*browser.Response, error) {
	return &browser.Response{Status: 200, URL: url}, nil
}
func (f *fakeEngine) Title(ctx context.Context) (string, error)    { return f.title, nil }
func (f *fakeEngine) Location(ctx context.Context) (string, error) { return "", nil }
func (f *fakeEngine) BodyText(ctx context.Context) (string, error) { return "", nil }
func (f *fakeEngine) HTML(ctx context.Context) (string, error)     { return f.html, nil }
func (f *fakeEngine) Text(ctx context.Context, selector string) (string, error) {
	return f.text[selector], nil
}
func (f *fakeEngine) Click(ctx context.Context, selector string) error {
	f.clicks = append(f.clicks, selector)
	return f.clickErr
}
func (f *fakeEngine) Fill(ctx context.Context, selector, value string) error {
	if f.fills == nil {
		f.fills = make(map[string]string)
	}
	f.fills[selector] = value
	return f.fillErr
}
func (f *fakeEngine) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return f.waitVisibleErr
}
func (f *fakeEngine) Screenshot(ctx context.Context) ([]byte, error) { return []byte{1}, nil }
func (f *fakeEngine) Close() error                                   { return nil }

type fakeBrowse struct {
	engine      *fakeEngine
	navResult   browser.NavigationResult
	navErr      error
	navigated   []string
	titleChecks []string
	titleErr    error
	headingText string
	headingErr  error
}

func (f *fakeBrowse) Navigate(ctx context.Context, target string, opts browser.NavigateOptions) (browser.NavigationResult, error) {
	f.navigated = append(f.navigated, target)
	return f.navResult, f.navErr
}

func (f *fakeBrowse) ExpectTitle(ctx context.Context, expected string, timeout time.Duration) error {
	f.titleChecks = append(f.titleChecks, expected)
	return f.titleErr
}

func (f *fakeBrowse) AssertHeading(ctx context.Context, pattern *regexp.Regexp) (string, error) {
	if f.headingErr != nil {
		return "", f.headingErr
	}
	if pattern != nil && !pattern.MatchString(f.headingText) {
		return "", errors.New("heading mismatch")
	}
	return f.headingText, nil
}

func (f *fakeBrowse) Engine() browser.Engine { return f.engine }

func newFakeBrowse(html string) *fakeBrowse {
	return &fakeBrowse{
		engine:    &fakeEngine{html: html},
		navResult: browser.NavigationResult{Response: &browser.Response{Status: 200}, Status: 200},
	}
}

func TestPageURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://binaytara.org", "/", "https://binaytara.org/"},
		{"https://binaytara.org/", "/about", "https://binaytara.org/about"},
		{"https://binaytara.org", "conferences", "https://binaytara.org/conferences"},
	}
	for _, tt := range tests {
		p := NewPage(newFakeBrowse(""), tt.base, tt.path, "")
		if got := p.URL(); got != tt.want {
			t.Errorf("URL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestOpenSkipsTitleCheckOnNotFound(t *testing.T) {
	fb := newFakeBrowse("")
	fb.navResult = browser.NavigationResult{Is404: true, Status: 404}

	home := NewHome(fb, "https://binaytara.org")
	result, err := home.Open(context.Background())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if !result.Is404 {
		t.Error("expected 404 verdict to pass through")
	}
	if len(fb.titleChecks) != 0 {
		t.Error("title must not be checked on a missing page")
	}
}

func TestOpenChecksTitleWhenFound(t *testing.T) {
	fb := newFakeBrowse("")
	home := NewHome(fb, "https://binaytara.org")

	if _, err := home.Open(context.Background()); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(fb.titleChecks) != 1 || fb.titleChecks[0] != "Binaytara" {
		t.Errorf("expected one title check for Binaytara, got %v", fb.titleChecks)
	}
}

func TestHomeNavLinks(t *testing.T) {
	fb := newFakeBrowse(`<html><body><header><nav>
		<a href="/about">About</a>
		<a href="/conferences">Conferences</a>
		<a href="/news">News</a>
		<a href="/broken"> </a>
	</nav></header></body></html>`)

	home := NewHome(fb, "https://binaytara.org")
	links, err := home.NavLinks(context.Background())
	if err != nil {
		t.Fatalf("NavLinks failed: %v", err)
	}
	if len(links) != 3 {
		t.Errorf("expected 3 nav links, got %d: %v", len(links), links)
	}
	if links["Conferences"] != "/conferences" {
		t.Errorf("unexpected conferences target %q", links["Conferences"])
	}
}

func TestHomeNavLinksEmptyNav(t *testing.T) {
	home := NewHome(newFakeBrowse(`<html><body></body></html>`), "https://binaytara.org")
	if _, err := home.NavLinks(context.Background()); err == nil {
		t.Error("expected error for missing navigation")
	}
}

func TestHomeSubscribe(t *testing.T) {
	fb := newFakeBrowse("")
	home := NewHome(fb, "https://binaytara.org")

	if err := home.Subscribe(context.Background(), "donor@example.org"); err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}
	if got := fb.engine.fills[newsletterEmailSelector]; got != "donor@example.org" {
		t.Errorf("email not filled, got %q", got)
	}
	if len(fb.engine.clicks) != 1 || fb.engine.clicks[0] != newsletterSubmitSelector {
		t.Errorf("submit not clicked, got %v", fb.engine.clicks)
	}
}

func TestHomeSubscribeRejectsEmptyEmail(t *testing.T) {
	home := NewHome(newFakeBrowse(""), "https://binaytara.org")
	if err := home.Subscribe(context.Background(), "  "); err == nil {
		t.Error("expected error for empty email")
	}
}

func TestHomeSubscribeConfirmationMissing(t *testing.T) {
	fb := newFakeBrowse("")
	fb.engine.waitVisibleErr = errors.New("not visible")

	home := NewHome(fb, "https://binaytara.org")
	err := home.Subscribe(context.Background(), "donor@example.org")
	if err == nil || !strings.Contains(err.Error(), "confirmation") {
		t.Errorf("expected confirmation error, got %v", err)
	}
}

func TestAboutMissionHeading(t *testing.T) {
	fb := newFakeBrowse("")
	fb.headingText = "Our Mission"

	about := NewAbout(fb, "https://binaytara.org")
	heading, err := about.MissionHeading(context.Background())
	if err != nil {
		t.Fatalf("MissionHeading failed: %v", err)
	}
	if heading != "Our Mission" {
		t.Errorf("unexpected heading %q", heading)
	}
}

func TestConferencesListings(t *testing.T) {
	fb := newFakeBrowse(`<html><body>
		<article class="conference"><h3>CAR T Summit 2026</h3><a href="/conferences/car-t-2026">Details</a></article>
		<article class="conference"><h3>Hematology Update</h3><a href="/conferences/heme-update">Details</a></article>
		<div class="pagination"><a rel="next" href="?page=2">Next</a></div>
	</body></html>`)

	conferences := NewConferences(fb, "https://binaytara.org")
	listings, err := conferences.Listings(context.Background())
	if err != nil {
		t.Fatalf("Listings failed: %v", err)
	}
	if len(listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(listings))
	}
	if listings[0].Title != "CAR T Summit 2026" || listings[0].URL != "/conferences/car-t-2026" {
		t.Errorf("unexpected first listing %+v", listings[0])
	}

	hasNext, err := conferences.HasNextPage(context.Background())
	if err != nil {
		t.Fatalf("HasNextPage failed: %v", err)
	}
	if !hasNext {
		t.Error("expected a next-page control")
	}
}

func TestConferencesSearchRejectsEmptyQuery(t *testing.T) {
	conferences := NewConferences(newFakeBrowse(""), "https://binaytara.org")
	if err := conferences.Search(context.Background(), ""); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestConferencesSearchFillsAndSubmits(t *testing.T) {
	fb := newFakeBrowse("")
	conferences := NewConferences(fb, "https://binaytara.org")

	if err := conferences.Search(context.Background(), "oncology"); err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if got := fb.engine.fills[conferenceSearchSelector]; got != "oncology" {
		t.Errorf("query not filled, got %q", got)
	}
}

func TestNewsCategoriesAndFilter(t *testing.T) {
	fb := newFakeBrowse(`<html><body>
		<nav class="categories">
			<a href="/news?category=press">Press Releases</a>
			<a href="/news?category=events">Events</a>
		</nav>
		<article class="news-item"><h2>New Cancer Center</h2><a href="/news/center">Read</a><span class="category">Press Releases</span></article>
	</body></html>`)

	news := NewNews(fb, "https://binaytara.org")
	categories, err := news.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %v", categories)
	}

	if err := news.FilterByCategory(context.Background(), "press releases"); err != nil {
		t.Fatalf("FilterByCategory failed: %v", err)
	}
	if len(fb.engine.clicks) != 1 {
		t.Fatalf("expected one click, got %v", fb.engine.clicks)
	}
	if !strings.Contains(fb.engine.clicks[0], "/news?category=press") {
		t.Errorf("clicked wrong filter %q", fb.engine.clicks[0])
	}
}

func TestNewsFilterUnknownCategory(t *testing.T) {
	news := NewNews(newFakeBrowse(`<html><body><nav class="categories"><a href="/news?category=events">Events</a></nav></body></html>`), "https://binaytara.org")
	err := news.FilterByCategory(context.Background(), "sports")
	if err == nil || !strings.Contains(err.Error(), "sports") {
		t.Errorf("expected unknown-category error naming the category, got %v", err)
	}
}

func TestNewsArticles(t *testing.T) {
	fb := newFakeBrowse(`<html><body>
		<article class="news-item"><h2>New Cancer Center Opens</h2><a href="/news/center">Read</a><span class="category">Press</span></article>
		<article class="news-item"><h2></h2></article>
	</body></html>`)

	news := NewNews(fb, "https://binaytara.org")
	articles, err := news.Articles(context.Background())
	if err != nil {
		t.Fatalf("Articles failed: %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("expected 1 titled article, got %d", len(articles))
	}
	if articles[0].Category != "Press" {
		t.Errorf("unexpected category %q", articles[0].Category)
	}
}
