// internal/pages/news.go
package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/binaytara/sitecheck/internal/browser"
)

const (
	newsArticleSelector  = "article.news-item, .news-card"
	newsCategorySelector = ".news-categories a, nav.categories a"
	newsNextSelector     = ".pagination a[rel=next], .pagination .next a"
)

// Article is one entry on the news listing.
type Article struct {
	Title    string
	URL      string
	Category string
}

// News is the news and announcements listing with its category filter and
// pagination controls.
type News struct {
	page *Page
}

// NewNews builds the news page object.
func NewNews(browse Browsing, baseURL string) *News {
	return &News{page: NewPage(browse, baseURL, "/news", "News")}
}

// Open navigates to the news listing.
func (n *News) Open(ctx context.Context) (browser.NavigationResult, error) {
	return n.page.Open(ctx)
}

// Categories returns the filter categories offered by the listing, keyed by
// label.
func (n *News) Categories(ctx context.Context) (map[string]string, error) {
	doc, err := n.page.Document(ctx)
	if err != nil {
		return nil, err
	}
	return collectLinks(doc, newsCategorySelector), nil
}

// FilterByCategory activates a category filter and waits for the filtered
// list to render. The category is matched against the filter link text.
func (n *News) FilterByCategory(ctx context.Context, category string) error {
	categories, err := n.Categories(ctx)
	if err != nil {
		return err
	}

	var target string
	for label, href := range categories {
		if strings.EqualFold(label, category) {
			target = href
			break
		}
	}
	if target == "" {
		return fmt.Errorf("news category %q not offered by the listing", category)
	}

	eng := n.page.engine()
	selector := fmt.Sprintf("%s[href=%q]", strings.Split(newsCategorySelector, ",")[0], target)
	if err := eng.Click(ctx, selector); err != nil {
		return fmt.Errorf("failed to activate category filter: %w", err)
	}
	if err := eng.WaitVisible(ctx, newsArticleSelector, browser.DefaultAssertTimeout); err != nil {
		return fmt.Errorf("filtered news list did not render: %w", err)
	}
	return nil
}

// Articles returns the news entries currently rendered.
func (n *News) Articles(ctx context.Context) ([]Article, error) {
	doc, err := n.page.Document(ctx)
	if err != nil {
		return nil, err
	}

	var articles []Article
	doc.Find(newsArticleSelector).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h2, h3, .title").First().Text())
		href, _ := s.Find("a[href]").First().Attr("href")
		category := strings.TrimSpace(s.Find(".category, .tag").First().Text())
		if title == "" {
			return
		}
		articles = append(articles, Article{Title: title, URL: href, Category: category})
	})
	return articles, nil
}

// HasNextPage reports whether the pagination exposes a next-page control.
func (n *News) HasNextPage(ctx context.Context) (bool, error) {
	doc, err := n.page.Document(ctx)
	if err != nil {
		return false, err
	}
	return doc.Find(newsNextSelector).Length() > 0, nil
}

// NextPage follows the pagination's next-page control.
func (n *News) NextPage(ctx context.Context) error {
	eng := n.page.engine()
	if err := eng.Click(ctx, newsNextSelector); err != nil {
		return fmt.Errorf("failed to follow pagination: %w", err)
	}
	if err := eng.WaitVisible(ctx, newsArticleSelector, browser.DefaultAssertTimeout); err != nil {
		return fmt.Errorf("next page did not render: %w", err)
	}
	return nil
}
