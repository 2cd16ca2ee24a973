// internal/browser/navigator_test.go
package browser

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

// mockEngine scripts navigation outcomes and records which signals the
// heuristic actually read.
type mockEngine struct {
	// One entry per expected Navigate call: err takes precedence over resp.
	attempts []mockAttempt
	calls    int

	title    string
	titleErr error
	titleFn  func(call int) (string, error)
	titleGet int

	body    string
	bodyErr error

	location    string
	locationErr error

	headingText    string
	headingTextErr error
	waitVisibleErr error

	bodyReads int
	urlReads  int
}

type mockAttempt struct {
	resp *Response
	err  error
}

func (m *mockEngine) Navigate(ctx context.Context, url string, opts NavigateOptions) (*Response, error) {
	if m.calls >= len(m.attempts) {
		return nil, errors.New("unexpected navigation attempt")
	}
	attempt := m.attempts[m.calls]
	m.calls++
	return attempt.resp, attempt.err
}

func (m *mockEngine) Title(ctx context.Context) (string, error) {
	m.titleGet++
	if m.titleFn != nil {
		return m.titleFn(m.titleGet)
	}
	return m.title, m.titleErr
}

func (m *mockEngine) Location(ctx context.Context) (string, error) {
	m.urlReads++
	return m.location, m.locationErr
}

func (m *mockEngine) BodyText(ctx context.Context) (string, error) {
	m.bodyReads++
	return m.body, m.bodyErr
}

func (m *mockEngine) HTML(ctx context.Context) (string, error) { return "", nil }

func (m *mockEngine) Text(ctx context.Context, selector string) (string, error) {
	return m.headingText, m.headingTextErr
}

func (m *mockEngine) Click(ctx context.Context, selector string) error       { return nil }
func (m *mockEngine) Fill(ctx context.Context, selector, value string) error { return nil }
func (m *mockEngine) Screenshot(ctx context.Context) ([]byte, error)         { return nil, nil }
func (m *mockEngine) Close() error                                           { return nil }

func (m *mockEngine) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	return m.waitVisibleErr
}

func newTestNavigator(engine Engine) *Navigator {
	cfg := DefaultConfig()
	cfg.RetryBackoff = time.Millisecond
	cfg.AssertTimeout = 200 * time.Millisecond
	return NewNavigator(engine, cfg, nil, nil)
}

func TestNavigateStatus404IsAuthoritative(t *testing.T) {
	engine := &mockEngine{
		attempts: []mockAttempt{{resp: &Response{Status: 404, URL: "https://binaytara.org/gone"}}},
		body:     "irrelevant",
	}
	nav := newTestNavigator(engine)

	result, err := nav.Navigate(context.Background(), "https://binaytara.org/gone", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate returned error for 404: %v", err)
	}
	if !result.Is404 {
		t.Error("expected Is404 = true for status 404")
	}
	if result.Status != 404 {
		t.Errorf("expected status 404, got %d", result.Status)
	}
	if engine.bodyReads != 0 || engine.urlReads != 0 {
		t.Errorf("content heuristic must be skipped when status is 404 (body reads %d, url reads %d)",
			engine.bodyReads, engine.urlReads)
	}
}

func TestNavigateContentBackfillsStatus(t *testing.T) {
	engine := &mockEngine{
		attempts: []mockAttempt{{resp: nil}}, // same-document navigation, no response
		body:     "Sorry, Page Not Found",
		title:    "Binaytara",
		location: "https://binaytara.org/missing",
	}
	nav := newTestNavigator(engine)

	result, err := nav.Navigate(context.Background(), "/missing", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if !result.Is404 {
		t.Error("expected Is404 = true from content heuristic")
	}
	if result.Status != 404 {
		t.Errorf("expected status backfilled to 404, got %d", result.Status)
	}
	if result.Response != nil {
		t.Error("expected nil response to be preserved")
	}
}

func TestNavigateNon404StatusSuppressesHeuristic(t *testing.T) {
	// An article that legitimately mentions "404" must not be misclassified
	// when the status is known and not 404.
	engine := &mockEngine{
		attempts: []mockAttempt{{resp: &Response{Status: 200, URL: "https://binaytara.org/news/http-404-explained"}}},
		body:     "Understanding the HTTP 404 status code",
		title:    "What is a 404 error?",
	}
	nav := newTestNavigator(engine)

	result, err := nav.Navigate(context.Background(), "/news/http-404-explained", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if result.Is404 {
		t.Error("known non-404 status must suppress the content heuristic")
	}
	if result.Status != 200 {
		t.Errorf("expected status 200, got %d", result.Status)
	}
	if engine.bodyReads != 0 {
		t.Errorf("heuristic read the body %d times despite conclusive status", engine.bodyReads)
	}
}

func TestNavigateStatusRetrievalFailureTreatedAsAbsent(t *testing.T) {
	// The engine reports a response but no status. Treated the same as an
	// absent response: the heuristic decides.
	engine := &mockEngine{
		attempts: []mockAttempt{{resp: &Response{Status: 0, URL: "https://binaytara.org/about"}}},
		body:     "Our mission is better cancer care",
		title:    "About Binaytara",
		location: "https://binaytara.org/about",
	}
	nav := newTestNavigator(engine)

	result, err := nav.Navigate(context.Background(), "/about", NavigateOptions{})
	if err != nil {
		t.Fatalf("Navigate returned error: %v", err)
	}
	if result.Is404 {
		t.Error("healthy content must not fire the heuristic")
	}
	if result.Status != 0 {
		t.Errorf("expected absent status to stay 0, got %d", result.Status)
	}
	if engine.bodyReads == 0 {
		t.Error("heuristic should have run for an absent status")
	}
}

func TestNavigateRetriesTransientFaultOnce(t *testing.T) {
	engine := &mockEngine{
		attempts: []mockAttempt{
			{err: errors.New("page load error net::ERR_CONNECTION_RESET")},
			{resp: &Response{Status: 200, URL: "https://binaytara.org/"}},
		},
	}
	nav := newTestNavigator(engine)

	result, err := nav.Navigate(context.Background(), "https://binaytara.org/", NavigateOptions{})
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if engine.calls != 2 {
		t.Errorf("expected 2 attempts, got %d", engine.calls)
	}
	if result.Status != 200 || result.Is404 {
		t.Errorf("unexpected result after retry: %+v", result)
	}
}

func TestNavigateSecondTransientFaultPropagatesUnmodified(t *testing.T) {
	second := errors.New("page load error net::ERR_NETWORK_CHANGED")
	engine := &mockEngine{
		attempts: []mockAttempt{
			{err: errors.New("page load error net::ERR_CONNECTION_RESET")},
			{err: second},
		},
	}
	nav := newTestNavigator(engine)

	_, err := nav.Navigate(context.Background(), "https://binaytara.org/", NavigateOptions{})
	if !errors.Is(err, second) {
		t.Errorf("expected second fault unmodified, got %v", err)
	}
	if engine.calls != 2 {
		t.Errorf("expected exactly 2 attempts, got %d", engine.calls)
	}
}

func TestNavigateDNSFaultPropagatesImmediately(t *testing.T) {
	dnsErr := &net.DNSError{Err: "no such host", Name: "binaytara.invalid"}
	engine := &mockEngine{
		attempts: []mockAttempt{{err: dnsErr}},
	}
	nav := newTestNavigator(engine)

	_, err := nav.Navigate(context.Background(), "https://binaytara.invalid/", NavigateOptions{})
	if !errors.Is(err, dnsErr) {
		t.Errorf("expected DNS fault unmodified, got %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("DNS failure must not be retried, got %d attempts", engine.calls)
	}
}

func TestNavigateTimeoutNotRetried(t *testing.T) {
	engine := &mockEngine{
		attempts: []mockAttempt{{err: context.DeadlineExceeded}},
	}
	nav := newTestNavigator(engine)

	_, err := nav.Navigate(context.Background(), "https://binaytara.org/slow", NavigateOptions{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected timeout propagated, got %v", err)
	}
	if engine.calls != 1 {
		t.Errorf("timeout must not be retried, got %d attempts", engine.calls)
	}
}

func TestNavigateRejectsEmptyTarget(t *testing.T) {
	nav := newTestNavigator(&mockEngine{})
	if _, err := nav.Navigate(context.Background(), "  ", NavigateOptions{}); err == nil {
		t.Error("expected error for empty target")
	}
}
