// internal/config/duration.go
package config

import (
	"gopkg.in/yaml.v3"

	"github.com/binaytara/sitecheck/internal/browser"
)

type rawRemoteConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ProviderURL string `yaml:"provider_url"`
	ProjectID   string `yaml:"project_id"`
	APIKey      string `yaml:"api_key"`
	Timeout     string `yaml:"timeout"`
}

func (r *RemoteConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawRemoteConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	timeout, err := browser.ParseDurationField("remote.timeout", raw.Timeout)
	if err != nil {
		return err
	}
	r.Enabled = raw.Enabled
	r.ProviderURL = raw.ProviderURL
	r.ProjectID = raw.ProjectID
	r.APIKey = raw.APIKey
	r.Timeout = timeout
	return nil
}

func (r RemoteConfig) MarshalYAML() (interface{}, error) {
	raw := rawRemoteConfig{
		Enabled:     r.Enabled,
		ProviderURL: r.ProviderURL,
		ProjectID:   r.ProjectID,
		APIKey:      r.APIKey,
	}
	if r.Timeout > 0 {
		raw.Timeout = r.Timeout.String()
	}
	return raw, nil
}

type rawArtifactsConfig struct {
	Dir                 string `yaml:"dir"`
	ScreenshotOnFailure bool   `yaml:"screenshot_on_failure"`
	MaxAge              string `yaml:"max_age"`
}

func (a *ArtifactsConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw rawArtifactsConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}
	maxAge, err := browser.ParseDurationField("artifacts.max_age", raw.MaxAge)
	if err != nil {
		return err
	}
	a.Dir = raw.Dir
	a.ScreenshotOnFailure = raw.ScreenshotOnFailure
	a.MaxAge = maxAge
	return nil
}

func (a ArtifactsConfig) MarshalYAML() (interface{}, error) {
	raw := rawArtifactsConfig{
		Dir:                 a.Dir,
		ScreenshotOnFailure: a.ScreenshotOnFailure,
	}
	if a.MaxAge > 0 {
		raw.MaxAge = a.MaxAge.String()
	}
	return raw, nil
}
