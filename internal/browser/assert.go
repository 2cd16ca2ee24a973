// internal/browser/assert.go
package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrHeadingNotFound is returned when the page has no visible top-level
// heading within the assertion timeout.
var ErrHeadingNotFound = errors.New("heading not found")

// ExpectTitle polls the live document title until it contains expected
// (case-sensitive substring) or the timeout elapses. Titles routinely update
// after the navigation resolves, so a single read is not enough.
func (n *Navigator) ExpectTitle(ctx context.Context, expected string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = n.assertTimeout
	}
	deadline := time.Now().Add(timeout)

	var lastObserved string
	for {
		title, err := n.engine.Title(ctx)
		if err == nil {
			lastObserved = title
			if strings.Contains(title, expected) {
				return nil
			}
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("title did not contain %q within %v, last observed %q",
				expected, timeout, lastObserved)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(TitlePollInterval):
		}
	}
}

// AssertHeading requires a visible h1 on the page and returns its text. When
// pattern is non-nil the text must match it. The missing-heading and
// mismatch cases fail with distinct errors.
func (n *Navigator) AssertHeading(ctx context.Context, pattern *regexp.Regexp) (string, error) {
	if err := n.engine.WaitVisible(ctx, "h1", n.assertTimeout); err != nil {
		return "", fmt.Errorf("%w: no visible h1 within %v", ErrHeadingNotFound, n.assertTimeout)
	}

	text, err := n.engine.Text(ctx, "h1")
	if err != nil {
		return "", fmt.Errorf("%w: reading h1 text: %v", ErrHeadingNotFound, err)
	}

	text = strings.TrimSpace(text)
	if pattern != nil && !pattern.MatchString(text) {
		return "", fmt.Errorf("heading %q does not match %v", text, pattern)
	}
	return text, nil
}
