// Package netcheck implements the website reachability checker: a DNS
// resolution followed by a bounded HTTP probe. Every failure mode degrades
// to a ProbeResult; nothing in this package returns an error to the engine.
package netcheck

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mikey/job-scam-detector/internal/core"
	"github.com/mikey/job-scam-detector/internal/metrics"
	"go.uber.org/zap"
)

// Resolver is the DNS capability the checker depends on. net.Resolver
// satisfies it; tests substitute a fake.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Doer is the HTTP capability the checker depends on.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Checker probes claimed company websites.
type Checker struct {
	resolver Resolver
	client   Doer
	timeout  time.Duration
	logger   *zap.Logger
}

// NewChecker creates a checker backed by the default resolver and a real
// HTTP client bounded by the given timeout.
func NewChecker(timeout time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		resolver: net.DefaultResolver,
		client:   &http.Client{Timeout: timeout},
		timeout:  timeout,
		logger:   logger,
	}
}

// NewCheckerWith creates a checker with explicit capabilities, used in tests
// to simulate reachable, unreachable and timed-out hosts deterministically.
func NewCheckerWith(resolver Resolver, client Doer, timeout time.Duration, logger *zap.Logger) *Checker {
	return &Checker{
		resolver: resolver,
		client:   client,
		timeout:  timeout,
		logger:   logger,
	}
}

// Check normalizes the claimed website into a URL, resolves its host and
// performs a single HTTP probe. DNS failure is the only outcome reported as
// unreachable; a resolved host whose probe fails is indeterminate, which the
// engine treats as existing. No retries are performed.
func (c *Checker) Check(ctx context.Context, website string) core.ProbeResult {
	raw := strings.TrimSpace(website)
	if raw == "" {
		return core.ProbeResult{State: core.ProbeUnreachable, Detail: "no website supplied"}
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return core.ProbeResult{State: core.ProbeUnreachable, Detail: "invalid website URL"}
	}
	host := u.Hostname()
	isHTTPS := u.Scheme == "https"

	metrics.WebsiteChecks.Inc()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if _, err := c.resolver.LookupHost(ctx, host); err != nil {
		c.logger.Debug("Website host did not resolve",
			zap.String("host", host),
			zap.Error(err))
		metrics.WebsiteCheckFailures.Inc()
		return core.ProbeResult{State: core.ProbeUnreachable, Detail: "Domain does not resolve"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return core.ProbeResult{
			State:  core.ProbeIndeterminate,
			Detail: fmt.Sprintf("Domain exists but connection failed (HTTPS: %t)", isHTTPS),
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("Website probe failed after successful resolution",
			zap.String("host", host),
			zap.Error(err))
		return core.ProbeResult{
			State:  core.ProbeIndeterminate,
			Detail: fmt.Sprintf("Domain exists but connection failed (HTTPS: %t)", isHTTPS),
		}
	}
	defer resp.Body.Close()

	return core.ProbeResult{
		State:  core.ProbeReachable,
		Detail: fmt.Sprintf("Website accessible (Status: %d, HTTPS: %t)", resp.StatusCode, isHTTPS),
	}
}

// HostOf extracts the host a website string refers to, applying the same
// scheme normalization as Check. Empty when the string is unusable.
func HostOf(website string) string {
	raw := strings.TrimSpace(website)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}
