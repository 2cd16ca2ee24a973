// internal/browser/chromedp.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// Allocator owns the browser process, or the remote connection when a
// connect URL is configured. Tabs are created per scenario from it.
type Allocator struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
}

// NewAllocator launches a local browser or attaches to a remote one.
func NewAllocator(config *Config) (*Allocator, error) {
	if config == nil {
		config = DefaultConfig()
	}

	var ctx context.Context
	var cancel context.CancelFunc

	if config.RemoteURL != "" {
		ctx, cancel = chromedp.NewRemoteAllocator(context.Background(), config.RemoteURL)
	} else {
		opts := []chromedp.ExecAllocatorOption{
			chromedp.NoFirstRun,
			chromedp.NoDefaultBrowserCheck,
			chromedp.DisableGPU,
			chromedp.NoSandbox, // Required for Docker environments
		}
		if config.Headless {
			opts = append(opts, chromedp.Headless)
		}
		if config.UserAgent != "" {
			opts = append(opts, chromedp.UserAgent(config.UserAgent))
		}
		if config.DisableImages {
			opts = append(opts, chromedp.Flag("blink-settings", "imagesEnabled=false"))
		}
		ctx, cancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}

	return &Allocator{ctx: ctx, cancel: cancel, config: config}, nil
}

// NewTab opens a fresh tab and applies the configured viewport.
func (a *Allocator) NewTab() (*ChromeEngine, error) {
	ctx, cancel := chromedp.NewContext(a.ctx)

	engine := &ChromeEngine{ctx: ctx, cancel: cancel, config: a.config}
	if a.config.ViewportWidth > 0 && a.config.ViewportHeight > 0 {
		err := chromedp.Run(ctx, chromedp.EmulateViewport(
			int64(a.config.ViewportWidth), int64(a.config.ViewportHeight)))
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to set viewport: %w", err)
		}
	}

	return engine, nil
}

// Close tears down the browser process or remote connection.
func (a *Allocator) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	return nil
}

// ChromeEngine implements Engine over a single chromedp tab context.
type ChromeEngine struct {
	ctx    context.Context
	cancel context.CancelFunc
	config *Config
}

// Navigate drives the tab to a URL and waits for the requested readiness
// condition. The returned Response is nil when the load produced no network
// response (same-document navigation, intercepted request). Errors are
// returned as the engine produced them so that fault classification sees the
// raw net::ERR_* text.
func (e *ChromeEngine) Navigate(ctx context.Context, url string, opts NavigateOptions) (*Response, error) {
	opts = opts.withDefaults()
	navCtx, cancel := linkContext(e.ctx, ctx, opts.Timeout)
	defer cancel()

	resp, err := chromedp.RunResponse(navCtx, chromedp.Navigate(url))
	if err != nil {
		return nil, err
	}

	if err := chromedp.Run(navCtx, chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return nil, err
	}
	if opts.WaitUntil == WaitNetworkIdle && e.config.SettleDelay > 0 {
		if err := chromedp.Run(navCtx, chromedp.Sleep(e.config.SettleDelay)); err != nil {
			return nil, err
		}
	}

	return toResponse(resp), nil
}

// toResponse converts the devtools response. A zero status is preserved as
// "absent" rather than treated as a failure.
func toResponse(resp *network.Response) *Response {
	if resp == nil {
		return nil
	}
	return &Response{
		Status:   int(resp.Status),
		URL:      resp.URL,
		MimeType: resp.MimeType,
	}
}

// Title returns the current document title.
func (e *ChromeEngine) Title(ctx context.Context) (string, error) {
	var title string
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

// Location returns the current page URL.
func (e *ChromeEngine) Location(ctx context.Context) (string, error) {
	var loc string
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}

// BodyText returns the visible text of the document body.
func (e *ChromeEngine) BodyText(ctx context.Context) (string, error) {
	var text string
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.Text("body", &text, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return text, nil
}

// HTML returns the full document markup.
func (e *ChromeEngine) HTML(ctx context.Context) (string, error) {
	var html string
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Text returns the text content of the first element matching the selector.
func (e *ChromeEngine) Text(ctx context.Context, selector string) (string, error) {
	var text string
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.Text(selector, &text, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("text of selector %q: %w", selector, err)
	}
	return text, nil
}

// Click clicks the first element matching the selector.
func (e *ChromeEngine) Click(ctx context.Context, selector string) error {
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.Click(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("click selector %q: %w", selector, err)
	}
	return nil
}

// Fill clears the matched input and types the value into it.
func (e *ChromeEngine) Fill(ctx context.Context, selector, value string) error {
	tasks := chromedp.Tasks{
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	}
	if err := e.run(ctx, e.config.ActionTimeout, tasks); err != nil {
		return fmt.Errorf("fill selector %q: %w", selector, err)
	}
	return nil
}

// WaitVisible waits for the selector to become visible within the timeout.
func (e *ChromeEngine) WaitVisible(ctx context.Context, selector string, timeout time.Duration) error {
	if err := e.run(ctx, timeout, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return fmt.Errorf("wait for selector %q: %w", selector, err)
	}
	return nil
}

// Screenshot captures the full page as PNG.
func (e *ChromeEngine) Screenshot(ctx context.Context) ([]byte, error) {
	var buf []byte
	if err := e.run(ctx, e.config.ActionTimeout, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return buf, nil
}

// Close closes the tab.
func (e *ChromeEngine) Close() error {
	if e.cancel != nil {
		e.cancel()
	}
	return nil
}

func (e *ChromeEngine) run(ctx context.Context, timeout time.Duration, action chromedp.Action) error {
	if timeout <= 0 {
		timeout = DefaultActionTimeout
	}
	runCtx, cancel := linkContext(e.ctx, ctx, timeout)
	defer cancel()
	return chromedp.Run(runCtx, action)
}

// linkContext derives a timeout-bounded context from the tab context that is
// also cancelled when the caller's context ends, so an interrupted run does
// not wait out the full operation timeout.
func linkContext(tab, caller context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	linked, cancel := context.WithTimeout(tab, timeout)
	stop := context.AfterFunc(caller, cancel)
	return linked, func() {
		stop()
		cancel()
	}
}
