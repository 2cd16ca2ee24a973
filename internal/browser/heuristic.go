// internal/browser/heuristic.go
package browser

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Literal markers that identify a not-found page in its rendered text or
// title. Matching is done on lower-cased, NFKC-normalized text.
var notFoundTextMarkers = []string{
	"404",
	"not found",
	"page not found",
	"error 404",
	"404 error",
}

// URL fragments that identify a not-found page by its address.
var notFoundURLMarkers = []string{
	"404",
	"not-found",
}

// LooksLikeNotFound inspects the rendered document for not-found signals. It
// is used when the HTTP status is absent or inconclusive.
//
// The heuristic is fail-safe in the negative direction: any failure to read
// the body, title or URL (detached document, navigation mid-flight) counts
// as "not fired" and is never escalated.
//
// Known imprecision: a page whose legitimate content mentions "404" (say, an
// article about HTTP status codes) is misclassified as not-found. That is an
// accepted trade-off of content-based detection, not a defect to patch.
func (n *Navigator) LooksLikeNotFound(ctx context.Context) bool {
	body, err := n.engine.BodyText(ctx)
	if err != nil {
		body = ""
	}
	title, err := n.engine.Title(ctx)
	if err != nil {
		title = ""
	}
	location, err := n.engine.Location(ctx)
	if err != nil {
		location = ""
	}

	haystack := normalizeText(body + " " + title)
	for _, marker := range notFoundTextMarkers {
		if strings.Contains(haystack, marker) {
			return true
		}
	}

	location = strings.ToLower(location)
	for _, marker := range notFoundURLMarkers {
		if strings.Contains(location, marker) {
			return true
		}
	}

	return false
}

// normalizeText lower-cases and NFKC-normalizes text so that full-width or
// composed variants of the markers still match.
func normalizeText(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}
