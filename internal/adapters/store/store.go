// Package store implements persistence for analysis records and user
// accounts over SQLite, MySQL and PostgreSQL, plus an in-memory variant
// used by tests and the CLI.
package store

import (
	"errors"

	"github.com/mikey/job-scam-detector/internal/core"
)

// AnalysisUserStore combines analysis and user persistence. Every backend in
// this package implements both over the same database.
type AnalysisUserStore interface {
	core.AnalysisStore
	core.UserStore
}

var (
	// ErrAnalysisNotFound is returned when no analysis matches id and owner.
	ErrAnalysisNotFound = errors.New("analysis not found")
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when registering an already-used email.
	ErrEmailTaken = errors.New("email already registered")
)
