// internal/artifacts/artifacts.go
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const screenshotsDir = "screenshots"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store manages the test-results directory: screenshots, report files and
// rotation of stale artifacts from earlier runs.
type Store struct {
	root string
	log  logrus.FieldLogger
}

// NewStore creates the artifact directories under root.
func NewStore(root string, log logrus.FieldLogger) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("artifact root cannot be empty")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	for _, dir := range []string{root, filepath.Join(root, screenshotsDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create artifact directory %s: %w", dir, err)
		}
	}

	return &Store{root: root, log: log}, nil
}

// Root returns the artifact root directory.
func (s *Store) Root() string {
	return s.root
}

// SaveScreenshot writes a PNG under screenshots/<name>-<timestamp>.png and
// returns the written path.
func (s *Store) SaveScreenshot(name string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("screenshot data is empty")
	}

	filename := fmt.Sprintf("%s-%s.png", sanitizeName(name), time.Now().Format("20060102-150405"))
	path := filepath.Join(s.root, screenshotsDir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write screenshot: %w", err)
	}

	s.log.WithField("path", path).Debug("screenshot saved")
	return path, nil
}

// Rotate removes artifacts older than maxAge. A zero maxAge disables
// rotation.
func (s *Store) Rotate(maxAge time.Duration) error {
	if maxAge <= 0 {
		return nil
	}
	cutoff := time.Now().Add(-maxAge)

	var removed int
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to remove stale artifact %s: %w", path, err)
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if removed > 0 {
		s.log.WithField("removed", removed).Info("rotated stale artifacts")
	}
	return nil
}

// sanitizeName turns a scenario name into a safe filename component.
func sanitizeName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = unsafeNameChars.ReplaceAllString(name, "")
	if name == "" {
		name = "screenshot"
	}
	return name
}
