// internal/browser/types.go
package browser

import (
	"context"
	"time"
)

// Default timeouts for the three classes of browser operations.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultActionTimeout     = 15 * time.Second
	DefaultAssertTimeout     = 10 * time.Second

	// DefaultRetryBackoff is the fixed pause before the single retry of a
	// transiently failed navigation.
	DefaultRetryBackoff = 500 * time.Millisecond

	// TitlePollInterval is the cadence at which ExpectTitle re-reads the
	// live document title.
	TitlePollInterval = 100 * time.Millisecond
)

// WaitUntil selects the readiness condition a navigation waits for.
type WaitUntil string

const (
	// WaitDOMReady resolves once the document body is parsed.
	WaitDOMReady WaitUntil = "domready"
	// WaitNetworkIdle resolves once the body is parsed and the page has had
	// a settle period for late asset loads.
	WaitNetworkIdle WaitUntil = "networkidle"
)

// NavigateOptions tunes a single navigation.
type NavigateOptions struct {
	Timeout   time.Duration
	WaitUntil WaitUntil
}

func (o NavigateOptions) withDefaults() NavigateOptions {
	if o.Timeout <= 0 {
		o.Timeout = DefaultNavigationTimeout
	}
	if o.WaitUntil == "" {
		o.WaitUntil = WaitDOMReady
	}
	return o
}

// Response is the protocol-level outcome of a navigation. Status 0 means the
// engine could not determine a status code.
type Response struct {
	Status   int
	URL      string
	MimeType string
}

// Engine is the narrow surface sitecheck needs from a browser automation
// library. Navigate may return a nil Response for same-document navigations
// and intercepted requests.
type Engine interface {
	Navigate(ctx context.Context, url string, opts NavigateOptions) (*Response, error)
	Title(ctx context.Context) (string, error)
	Location(ctx context.Context) (string, error)
	BodyText(ctx context.Context) (string, error)
	HTML(ctx context.Context) (string, error)
	Text(ctx context.Context, selector string) (string, error)
	Click(ctx context.Context, selector string) error
	Fill(ctx context.Context, selector, value string) error
	WaitVisible(ctx context.Context, selector string, timeout time.Duration) error
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Config defines browser engine configuration.
type Config struct {
	Headless       bool          `yaml:"headless" json:"headless"`
	UserAgent      string        `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	ViewportWidth  int           `yaml:"viewport_width" json:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height" json:"viewport_height"`
	DisableImages  bool          `yaml:"disable_images" json:"disable_images"`
	SettleDelay    time.Duration `yaml:"settle_delay,omitempty" json:"settle_delay,omitempty"`

	NavigationTimeout time.Duration `yaml:"navigation_timeout" json:"navigation_timeout"`
	ActionTimeout     time.Duration `yaml:"action_timeout" json:"action_timeout"`
	AssertTimeout     time.Duration `yaml:"assert_timeout" json:"assert_timeout"`
	RetryBackoff      time.Duration `yaml:"retry_backoff" json:"retry_backoff"`

	// RemoteURL, when set, connects to an already-running browser over the
	// devtools protocol instead of launching one.
	RemoteURL string `yaml:"remote_url,omitempty" json:"remote_url,omitempty"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Headless:          true,
		ViewportWidth:     1920,
		ViewportHeight:    1080,
		DisableImages:     false,
		SettleDelay:       2 * time.Second,
		NavigationTimeout: DefaultNavigationTimeout,
		ActionTimeout:     DefaultActionTimeout,
		AssertTimeout:     DefaultAssertTimeout,
		RetryBackoff:      DefaultRetryBackoff,
	}
}
