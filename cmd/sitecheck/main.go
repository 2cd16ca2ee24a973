// cmd/sitecheck/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/binaytara/sitecheck/internal/artifacts"
	"github.com/binaytara/sitecheck/internal/browser"
	"github.com/binaytara/sitecheck/internal/config"
	"github.com/binaytara/sitecheck/internal/faults"
	"github.com/binaytara/sitecheck/internal/monitoring"
	"github.com/binaytara/sitecheck/internal/report"
	"github.com/binaytara/sitecheck/internal/scenarios"
	"github.com/binaytara/sitecheck/internal/session"
	"github.com/binaytara/sitecheck/internal/suite"
)

// Version information (set by build flags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(faults.ExitGeneral)
	}

	switch command := os.Args[1]; command {
	case "run":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: config file required")
			fmt.Fprintln(os.Stderr, "Usage: sitecheck run <config.yaml>")
			os.Exit(faults.ExitConfig)
		}
		runChecks(os.Args[2])

	case "validate":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Error: config file required")
			fmt.Fprintln(os.Stderr, "Usage: sitecheck validate <config.yaml>")
			os.Exit(faults.ExitConfig)
		}
		validateConfig(os.Args[2])

	case "template":
		template, err := yaml.Marshal(config.GenerateTemplate())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(faults.ExitGeneral)
		}
		fmt.Print(string(template))

	case "version", "--version":
		fmt.Printf("sitecheck %s (built %s, commit %s)\n", version, buildTime, gitCommit)

	case "help", "--help", "-h":
		printUsage()

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(faults.ExitGeneral)
	}
}

// errChecksFailed distinguishes scenario failures from run-level errors so
// cleanup still runs before the process exits non-zero.
var errChecksFailed = errors.New("one or more checks failed")

func runChecks(configFile string) {
	verbose := hasFlag("-v") || hasFlag("--verbose")

	if err := executeRun(configFile, verbose); err != nil {
		if errors.Is(err, errChecksFailed) {
			os.Exit(faults.ExitFailures)
		}
		fmt.Fprint(os.Stderr, faults.FormatForCLI(err, verbose))
		os.Exit(faults.ExitCode(err))
	}
}

func validateConfig(configFile string) {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		fmt.Fprint(os.Stderr, faults.FormatForCLI(err, hasFlag("-v") || hasFlag("--verbose")))
		os.Exit(faults.ExitCode(err))
	}
	fmt.Printf("Configuration file '%s' is valid (suite %q, %d workers)\n",
		configFile, cfg.Name, cfg.Workers)
}

func executeRun(configFile string, verbose bool) error {
	cfg, err := config.LoadFromFile(configFile)
	if err != nil {
		return err
	}

	log := newLogger(cfg.LogLevel, verbose)
	log.WithFields(logrus.Fields{
		"suite":    cfg.Name,
		"base_url": cfg.BaseURL,
		"workers":  cfg.Workers,
	}).Info("starting sitecheck run")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := artifacts.NewStore(cfg.Artifacts.Dir, log)
	if err != nil {
		return err
	}
	if err := store.Rotate(cfg.Artifacts.MaxAge); err != nil {
		log.WithError(err).Warn("artifact rotation failed")
	}

	browserCfg := cfg.Browser
	if browserCfg == nil {
		browserCfg = browser.DefaultConfig()
	}

	// A remote session replaces the local browser process.
	var sessionClient *session.Client
	var remoteSession *session.Session
	if cfg.Remote != nil && cfg.Remote.Enabled {
		sessionClient = session.NewClient(cfg.Remote.ProviderURL, cfg.Remote.ProjectID,
			cfg.Remote.APIKey, cfg.Remote.Timeout, log)
		remoteSession, err = sessionClient.EnsureSession(ctx)
		if err != nil {
			return err
		}
		browserCfg.RemoteURL = remoteSession.ConnectURL
		defer func() {
			if err := sessionClient.Stop(context.Background(), remoteSession.ID); err != nil {
				log.WithError(err).Warn("failed to stop remote session")
			}
		}()
	}

	allocator, err := browser.NewAllocator(browserCfg)
	if err != nil {
		return err
	}
	defer allocator.Close()

	metrics := monitoring.NewMetrics()
	health := monitoring.NewHealth()

	feed := &summaryFeed{}
	if cfg.Monitoring.Enabled {
		dashboard := monitoring.NewDashboard(cfg.Monitoring.ListenAddress, metrics, health,
			feed.snapshot, log)
		dashboard.Start(ctx)
	}
	health.SetReady(true)

	runner, err := suite.NewRunner(cfg,
		func() (browser.Engine, error) { return allocator.NewTab() },
		store, metrics, log)
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, scenarios.All())
	if err != nil {
		return err
	}
	feed.publish(summary)

	writer, err := report.NewWriter(&cfg.Report)
	if err != nil {
		return err
	}
	defer writer.Close()

	writeErr := writer.Write(ctx, summary)
	metrics.RecordReportWrite(cfg.Report.Format, writeErr)
	if writeErr != nil {
		return fmt.Errorf("report: %w", writeErr)
	}

	log.WithFields(logrus.Fields{
		"passed":  summary.Passed,
		"failed":  summary.Failed,
		"skipped": summary.Skipped,
	}).Info("run finished")
	printSummary(summary)

	if summary.Failed > 0 {
		return errChecksFailed
	}
	return nil
}

// summaryFeed hands the run summary to the dashboard. The dashboard serves
// requests from its own goroutines while the run is still in progress, so the
// pointer is published atomically.
type summaryFeed struct {
	current atomic.Pointer[report.Summary]
}

func (f *summaryFeed) publish(s *report.Summary) {
	f.current.Store(s)
}

func (f *summaryFeed) snapshot() interface{} {
	if s := f.current.Load(); s != nil {
		return s
	}
	return nil
}

func printSummary(summary *report.Summary) {
	fmt.Printf("\n%s against %s\n", summary.Suite, summary.BaseURL)
	fmt.Printf("  passed: %d  failed: %d  skipped: %d\n\n",
		summary.Passed, summary.Failed, summary.Skipped)

	for _, r := range summary.Records {
		marker := "ok  "
		switch r.Status {
		case report.StatusFailed:
			marker = "FAIL"
		case report.StatusSkipped:
			marker = "skip"
		}
		fmt.Printf("  %s %-28s %s", marker, r.Scenario, r.Duration.Round(time.Millisecond))
		if r.Error != "" {
			fmt.Printf("  (%s)", r.Error)
		}
		fmt.Println()
	}
}

func newLogger(level string, verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	if verbose && parsed < logrus.DebugLevel {
		parsed = logrus.DebugLevel
	}
	log.SetLevel(parsed)
	return log
}

func hasFlag(flag string) bool {
	for _, arg := range os.Args {
		if arg == flag {
			return true
		}
	}
	return false
}

func printUsage() {
	fmt.Println(`sitecheck - end-to-end checks for the Binaytara Foundation website

Usage:
  sitecheck run <config.yaml>       Run the check suite
  sitecheck validate <config.yaml>  Validate a configuration file
  sitecheck template                Print a configuration template
  sitecheck version                 Print version information
  sitecheck help                    Show this help

Flags:
  -v, --verbose   Verbose output with fault details

Exit codes:
  0  all checks passed
  2  configuration error
  3  network fault
  4  session provider error
  5  report sink error
  7  one or more checks failed`)
}
