// internal/browser/config_yaml.go
package browser

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// rawConfig mirrors Config with durations as strings so YAML values like
// "30s" parse with time.ParseDuration.
type rawConfig struct {
	Headless          *bool  `yaml:"headless"`
	UserAgent         string `yaml:"user_agent"`
	ViewportWidth     int    `yaml:"viewport_width"`
	ViewportHeight    int    `yaml:"viewport_height"`
	DisableImages     bool   `yaml:"disable_images"`
	SettleDelay       string `yaml:"settle_delay"`
	NavigationTimeout string `yaml:"navigation_timeout"`
	ActionTimeout     string `yaml:"action_timeout"`
	AssertTimeout     string `yaml:"assert_timeout"`
	RetryBackoff      string `yaml:"retry_backoff"`
	RemoteURL         string `yaml:"remote_url"`
}

// UnmarshalYAML decodes the browser section. Headless defaults to true when
// the key is absent.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.Headless = true
	if raw.Headless != nil {
		c.Headless = *raw.Headless
	}
	c.UserAgent = raw.UserAgent
	c.ViewportWidth = raw.ViewportWidth
	c.ViewportHeight = raw.ViewportHeight
	c.DisableImages = raw.DisableImages
	c.RemoteURL = raw.RemoteURL

	for _, field := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"settle_delay", raw.SettleDelay, &c.SettleDelay},
		{"navigation_timeout", raw.NavigationTimeout, &c.NavigationTimeout},
		{"action_timeout", raw.ActionTimeout, &c.ActionTimeout},
		{"assert_timeout", raw.AssertTimeout, &c.AssertTimeout},
		{"retry_backoff", raw.RetryBackoff, &c.RetryBackoff},
	} {
		d, err := ParseDurationField(field.name, field.value)
		if err != nil {
			return err
		}
		*field.dst = d
	}
	return nil
}

// MarshalYAML renders durations in their human form.
func (c Config) MarshalYAML() (interface{}, error) {
	headless := c.Headless
	return rawConfig{
		Headless:          &headless,
		UserAgent:         c.UserAgent,
		ViewportWidth:     c.ViewportWidth,
		ViewportHeight:    c.ViewportHeight,
		DisableImages:     c.DisableImages,
		SettleDelay:       formatDurationField(c.SettleDelay),
		NavigationTimeout: formatDurationField(c.NavigationTimeout),
		ActionTimeout:     formatDurationField(c.ActionTimeout),
		AssertTimeout:     formatDurationField(c.AssertTimeout),
		RetryBackoff:      formatDurationField(c.RetryBackoff),
		RemoteURL:         c.RemoteURL,
	}, nil
}

// ParseDurationField parses a duration string from a config field, with an
// empty value meaning unset.
func ParseDurationField(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q for %s", value, name)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration for %s cannot be negative", name)
	}
	return d, nil
}

func formatDurationField(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}
