// internal/audit/audit.go
package audit

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Finding is one accessibility problem discovered in a page snapshot.
type Finding struct {
	Rule    string `json:"rule"`
	Detail  string `json:"detail"`
	Element string `json:"element,omitempty"`
}

func (f Finding) String() string {
	if f.Element != "" {
		return fmt.Sprintf("%s: %s (%s)", f.Rule, f.Detail, f.Element)
	}
	return fmt.Sprintf("%s: %s", f.Rule, f.Detail)
}

// CheckHTML audits a rendered page's markup for basic accessibility
// affordances: image alt text, link text, document language, a main
// landmark, and a sane heading hierarchy.
func CheckHTML(html string) ([]Finding, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse page HTML: %w", err)
	}

	var findings []Finding
	findings = append(findings, checkLang(doc)...)
	findings = append(findings, checkImages(doc)...)
	findings = append(findings, checkLinks(doc)...)
	findings = append(findings, checkLandmarks(doc)...)
	findings = append(findings, checkHeadings(doc)...)
	return findings, nil
}

func checkLang(doc *goquery.Document) []Finding {
	var findings []Finding
	doc.Find("html").Each(func(_ int, s *goquery.Selection) {
		if lang, _ := s.Attr("lang"); strings.TrimSpace(lang) == "" {
			findings = append(findings, Finding{
				Rule:   "html-lang",
				Detail: "document is missing a lang attribute",
			})
		}
	})
	return findings
}

func checkImages(doc *goquery.Document) []Finding {
	var findings []Finding
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		if _, ok := s.Attr("alt"); !ok {
			src, _ := s.Attr("src")
			findings = append(findings, Finding{
				Rule:    "img-alt",
				Detail:  "image has no alt attribute",
				Element: src,
			})
		}
	})
	return findings
}

func checkLinks(doc *goquery.Document) []Finding {
	var findings []Finding
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		label, _ := s.Attr("aria-label")
		if text == "" && strings.TrimSpace(label) == "" && s.Find("img[alt]").Length() == 0 {
			href, _ := s.Attr("href")
			findings = append(findings, Finding{
				Rule:    "link-text",
				Detail:  "link has no accessible text",
				Element: href,
			})
		}
	})
	return findings
}

func checkLandmarks(doc *goquery.Document) []Finding {
	var findings []Finding
	if doc.Find("main, [role=main]").Length() == 0 {
		findings = append(findings, Finding{
			Rule:   "main-landmark",
			Detail: "page has no main landmark",
		})
	}
	return findings
}

func checkHeadings(doc *goquery.Document) []Finding {
	var findings []Finding

	if doc.Find("h1").Length() == 0 {
		findings = append(findings, Finding{
			Rule:   "heading-h1",
			Detail: "page has no top-level heading",
		})
	}

	previous := 0
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		level, err := strconv.Atoi(strings.TrimPrefix(goquery.NodeName(s), "h"))
		if err != nil {
			return
		}
		if previous > 0 && level > previous+1 {
			findings = append(findings, Finding{
				Rule:    "heading-order",
				Detail:  fmt.Sprintf("heading level jumps from h%d to h%d", previous, level),
				Element: strings.TrimSpace(s.Text()),
			})
		}
		previous = level
	})

	return findings
}
