package core

import (
	"context"
	"time"
)

// ProbeState is the internal tri-state outcome of a website check. It is
// collapsed to the boolean contract (Exists) at the engine boundary.
type ProbeState int

const (
	// ProbeReachable means DNS resolved and the HTTP probe got a response.
	ProbeReachable ProbeState = iota
	// ProbeUnreachable means the host does not resolve (or the URL is unusable).
	ProbeUnreachable
	// ProbeIndeterminate means DNS resolved but the HTTP probe failed.
	// The domain exists, so this does not count against the offer.
	ProbeIndeterminate
)

// ProbeResult is the outcome of resolving and probing a claimed website.
type ProbeResult struct {
	State  ProbeState
	Detail string
}

// Exists reports the boolean reachability contract: only a failed DNS
// resolution counts as non-existent.
func (r ProbeResult) Exists() bool {
	return r.State != ProbeUnreachable
}

// ReachabilityChecker resolves and probes a claimed company website.
// Implementations must never return an error; every failure mode degrades
// to a ProbeResult.
type ReachabilityChecker interface {
	Check(ctx context.Context, website string) ProbeResult
}

// NarrativeClient generates a prose explanation of the rule-based findings.
type NarrativeClient interface {
	Explain(ctx context.Context, text string, result *AnalysisResult) (string, error)
}

// ReachabilityEntry is a cached website check keyed by host.
type ReachabilityEntry struct {
	Host      string
	Result    ProbeResult
	CheckedAt time.Time
	ExpiresAt time.Time
}

// ReachabilityCache caches website checks for a short TTL so repeated
// submissions against the same employer don't re-probe every time.
type ReachabilityCache interface {
	// Get retrieves a cached entry for a host
	Get(ctx context.Context, host string) (*ReachabilityEntry, error)

	// Set stores a cache entry
	Set(ctx context.Context, entry *ReachabilityEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, host string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// AnalysisStore persists analysis records.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error
	GetAnalysis(ctx context.Context, id, userID string) (*AnalysisRecord, error)
	ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]*AnalysisRecord, int, error)
	DeleteAnalysis(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*DashboardStats, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}
