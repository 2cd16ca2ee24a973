// internal/scenarios/scenarios_test.go
package scenarios

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/binaytara/sitecheck/internal/browser"
	"github.com/binaytara/sitecheck/internal/suite"
)

type probeEngine struct {
	html  string
	title string
}

func (p *probeEngine) Navigate(ctx context.Context, url string, opts browser.NavigateOptions) (*browser.Response, error) {
	return &browser.Response{Status: 200, URL: url}, nil
}
func (p *probeEngine) Title(ctx context.Context) (string, error)                 { return p.title, nil }
func (p *probeEngine) Location(ctx context.Context) (string, error)              { return "", nil }
func (p *probeEngine) BodyText(ctx context.Context) (string, error)              { return "", nil }
func (p *probeEngine) HTML(ctx context.Context) (string, error)                  { return p.html, nil }
func (p *probeEngine) Text(ctx context.Context, selector string) (string, error) { return "", nil }
func (p *probeEngine) Click(ctx context.Context, selector string) error          { return nil }
func (p *probeEngine) Fill(ctx context.Context, selector, value string) error    { return nil }
func (p *probeEngine) WaitVisible(ctx context.Context, sel string, d time.Duration) error {
	return nil
}
func (p *probeEngine) Screenshot(ctx context.Context) ([]byte, error) { return []byte{1}, nil }
func (p *probeEngine) Close() error                                   { return nil }

type verdictBrowse struct {
	result browser.NavigationResult
	engine browser.Engine
}

func (v *verdictBrowse) Navigate(ctx context.Context, target string, opts browser.NavigateOptions) (browser.NavigationResult, error) {
	return v.result, nil
}
func (v *verdictBrowse) ExpectTitle(ctx context.Context, expected string, timeout time.Duration) error {
	return nil
}
func (v *verdictBrowse) AssertHeading(ctx context.Context, pattern *regexp.Regexp) (string, error) {
	return "Our Mission", nil
}
func (v *verdictBrowse) Engine() browser.Engine { return v.engine }

func testEnv(result browser.NavigationResult, engine browser.Engine) *suite.Env {
	return &suite.Env{
		Browse:  &verdictBrowse{result: result, engine: engine},
		BaseURL: "https://binaytara.org",
		Log:     logrus.New(),
	}
}

func found() browser.NavigationResult {
	return browser.NavigationResult{Response: &browser.Response{Status: 200}, Status: 200}
}

func notFound() browser.NavigationResult {
	return browser.NavigationResult{Is404: true, Status: 404}
}

func TestAllScenarioNamesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range All() {
		if s.Name == "" || s.Page == "" || s.Run == nil {
			t.Errorf("incomplete scenario %+v", s)
		}
		if seen[s.Name] {
			t.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true
	}
}

func TestScenariosSkipOnMissingPage(t *testing.T) {
	env := testEnv(notFound(), &probeEngine{})

	for _, s := range All() {
		if s.Name == "missing page detection" {
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			err := s.Run(context.Background(), env)
			skip, ok := suite.AsSkip(err)
			if !ok {
				t.Fatalf("expected skip on missing page, got %v", err)
			}
			if skip.Status != 404 {
				t.Errorf("skip must carry the observed status, got %d", skip.Status)
			}
		})
	}
}

func TestMissingPageDetection(t *testing.T) {
	if err := missingPageDetection(context.Background(), testEnv(notFound(), &probeEngine{})); err != nil {
		t.Errorf("a 404 verdict on the probe path should pass, got %v", err)
	}

	err := missingPageDetection(context.Background(), testEnv(found(), &probeEngine{}))
	if err == nil {
		t.Error("a found verdict on the probe path must fail the scenario")
	}
}

func TestAboutMission(t *testing.T) {
	if err := aboutMission(context.Background(), testEnv(found(), &probeEngine{})); err != nil {
		t.Errorf("aboutMission failed: %v", err)
	}
}

func TestHomeNavigationRequiresSections(t *testing.T) {
	withNav := &probeEngine{html: `<html><body><header><nav>
		<a href="/about">About</a>
		<a href="/conferences">Conferences</a>
	</nav></header></body></html>`}
	if err := homeNavigation(context.Background(), testEnv(found(), withNav)); err != nil {
		t.Errorf("expected pass with required sections, got %v", err)
	}

	withoutConferences := &probeEngine{html: `<html><body><header><nav>
		<a href="/about">About</a>
	</nav></header></body></html>`}
	if err := homeNavigation(context.Background(), testEnv(found(), withoutConferences)); err == nil {
		t.Error("expected failure when Conferences link is missing")
	}
}

func TestHomeAccessibility(t *testing.T) {
	clean := &probeEngine{html: `<html lang="en"><body><main><h1>Binaytara</h1></main></body></html>`}
	if err := homeAccessibility(context.Background(), testEnv(found(), clean)); err != nil {
		t.Errorf("clean page should pass the audit, got %v", err)
	}

	dirty := &probeEngine{html: `<html><body><img src="/x.png"></body></html>`}
	if err := homeAccessibility(context.Background(), testEnv(found(), dirty)); err == nil {
		t.Error("audit findings must fail the scenario")
	}
}
