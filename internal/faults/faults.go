// internal/faults/faults.go
package faults

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Kind classifies a navigation fault. The 404 outcome is never a fault; it is
// reported through the navigation result instead.
type Kind int

const (
	// KindTransient covers network hiccups that are worth one more attempt.
	KindTransient Kind = iota
	// KindDNS means the hostname did not resolve.
	KindDNS
	// KindTLS means the TLS handshake or certificate validation failed.
	KindTLS
	// KindTimeout means the operation ran out of time.
	KindTimeout
	// KindClosed means the page or browser was already gone.
	KindClosed
)

// String returns the kind name used in logs and metric labels.
func (k Kind) String() string {
	switch k {
	case KindDNS:
		return "dns"
	case KindTLS:
		return "tls"
	case KindTimeout:
		return "timeout"
	case KindClosed:
		return "closed"
	default:
		return "transient"
	}
}

// Substring patterns for faults that must not be retried. Chrome surfaces
// network failures as net::ERR_* strings through the devtools protocol, so
// string matching is the only portable signal for some of them.
var (
	dnsPatterns = []string{
		"no such host",
		"net::err_name_not_resolved",
		"net::err_name_resolution_failed",
		"dns",
	}
	tlsPatterns = []string{
		"net::err_cert",
		"net::err_ssl",
		"tls:",
		"x509:",
		"certificate",
	}
	timeoutPatterns = []string{
		"net::err_timed_out",
		"net::err_connection_timed_out",
		"timeout",
		"timed out",
		"deadline exceeded",
	}
	closedPatterns = []string{
		"target closed",
		"page closed",
		"browser closed",
		"session closed",
		"context canceled",
		"websocket: close",
	}
)

// Classify maps an error from the browser engine to a fault kind.
func Classify(err error) Kind {
	if err == nil {
		return KindTransient
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	if errors.Is(err, context.Canceled) {
		return KindClosed
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindDNS
	}
	var certErr x509.UnknownAuthorityError
	if errors.As(err, &certErr) {
		return KindTLS
	}
	var hostErr x509.HostnameError
	if errors.As(err, &hostErr) {
		return KindTLS
	}

	msg := strings.ToLower(err.Error())
	for _, p := range dnsPatterns {
		if strings.Contains(msg, p) {
			return KindDNS
		}
	}
	for _, p := range tlsPatterns {
		if strings.Contains(msg, p) {
			return KindTLS
		}
	}
	for _, p := range timeoutPatterns {
		if strings.Contains(msg, p) {
			return KindTimeout
		}
	}
	for _, p := range closedPatterns {
		if strings.Contains(msg, p) {
			return KindClosed
		}
	}

	return KindTransient
}

// Retryable reports whether a navigation attempt may be repeated once.
// DNS, TLS, timeout and closed-page faults always propagate immediately.
func Retryable(err error) bool {
	return Classify(err) == KindTransient
}

// Exit codes for the sitecheck binary.
const (
	ExitOK         = 0
	ExitGeneral    = 1
	ExitConfig     = 2
	ExitNetwork    = 3
	ExitSession    = 4
	ExitReport     = 5
	ExitValidation = 6
	ExitFailures   = 7
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "config") || strings.Contains(msg, "yaml"):
		return ExitConfig
	case strings.Contains(msg, "session") || strings.Contains(msg, "provider"):
		return ExitSession
	case strings.Contains(msg, "report") || strings.Contains(msg, "write"):
		return ExitReport
	case strings.Contains(msg, "validation"):
		return ExitValidation
	}

	switch Classify(err) {
	case KindDNS, KindTLS, KindTimeout:
		return ExitNetwork
	default:
		return ExitGeneral
	}
}

// FormatForCLI renders an error for terminal output. With verbose set the
// underlying error text is included as well.
func FormatForCLI(err error, verbose bool) string {
	if err == nil {
		return ""
	}

	title, hint := describe(err)
	out := fmt.Sprintf("error: %s\n  %s\n", title, hint)
	if verbose {
		out += fmt.Sprintf("  detail: %v\n", err)
	}
	return out
}

func describe(err error) (title, hint string) {
	switch Classify(err) {
	case KindDNS:
		return "domain not found", "check the base_url host in the configuration"
	case KindTLS:
		return "TLS failure", "the site certificate could not be validated"
	case KindTimeout:
		return "operation timed out", "the site may be slow; raise the navigation timeout"
	case KindClosed:
		return "browser closed", "the tab or browser went away mid-operation"
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "yaml"):
		return "configuration error", "the configuration file has invalid YAML syntax"
	case strings.Contains(msg, "selector"):
		return "element not found", "the page structure may have changed"
	}
	return "unexpected error", "re-run with --verbose for details"
}
