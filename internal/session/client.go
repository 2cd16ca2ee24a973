// internal/session/client.go
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Session is a remote browser instance hosted by the session provider. The
// connect URL is consumed by the engine's remote-attach capability.
type Session struct {
	ID         string `json:"id"`
	ProjectID  string `json:"project_id"`
	Status     string `json:"status"`
	ConnectURL string `json:"connect_url"`
}

// Running reports whether the session can accept a connection.
func (s *Session) Running() bool {
	return s.Status == "running" && s.ConnectURL != ""
}

// Client talks to the remote browser session provider. Provider failures are
// infrastructure faults in their own domain; they are never conflated with
// the website's 404 condition.
type Client struct {
	baseURL   string
	projectID string
	apiKey    string
	client    *http.Client
	log       logrus.FieldLogger
}

// NewClient creates a provider client for one project.
func NewClient(baseURL, projectID, apiKey string, timeout time.Duration, log logrus.FieldLogger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		projectID: projectID,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: timeout},
		log:       log,
	}
}

// EnsureSession returns a running session for the project, reusing an
// existing one when the provider already has it, creating one otherwise.
func (c *Client) EnsureSession(ctx context.Context) (*Session, error) {
	sessions, err := c.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].Running() {
			c.log.WithField("session_id", sessions[i].ID).Info("reusing running remote session")
			return &sessions[i], nil
		}
	}

	return c.Create(ctx)
}

// List returns the project's sessions.
func (c *Client) List(ctx context.Context) ([]Session, error) {
	var sessions []Session
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/projects/%s/sessions", c.projectID), nil, &sessions)
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

// Create provisions a new remote browser session.
func (c *Client) Create(ctx context.Context) (*Session, error) {
	body := map[string]string{"project_id": c.projectID}

	var created Session
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/projects/%s/sessions", c.projectID), body, &created)
	if err != nil {
		return nil, err
	}
	if !created.Running() {
		return nil, fmt.Errorf("session provider: created session %s is not connectable (status %q)",
			created.ID, created.Status)
	}

	c.log.WithField("session_id", created.ID).Info("created remote session")
	return &created, nil
}

// Stop asks the provider to stop a session.
func (c *Client) Stop(ctx context.Context, sessionID string) error {
	body := map[string]string{"status": "stopped"}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/sessions/%s", sessionID), body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("session provider: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("session provider: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("session provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("session provider: %s %s returned %d: %s",
			method, path, resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("session provider: decode response: %w", err)
	}
	return nil
}
