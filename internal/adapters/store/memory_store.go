package store

import (
	"context"
	"sort"
	"sync"

	"github.com/mikey/job-scam-detector/internal/core"
)

// MemoryStore is an in-memory implementation of AnalysisStore and UserStore.
// Used by the CLI and by tests; nothing survives a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	analyses map[string]*core.AnalysisRecord
	users    map[string]*core.User
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		analyses: make(map[string]*core.AnalysisRecord),
		users:    make(map[string]*core.User),
	}
}

// SaveAnalysis stores one analysis record.
func (s *MemoryStore) SaveAnalysis(ctx context.Context, rec *core.AnalysisRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analyses[rec.ID] = rec
	return nil
}

// GetAnalysis retrieves an analysis by id, scoped to its owner.
func (s *MemoryStore) GetAnalysis(ctx context.Context, id, userID string) (*core.AnalysisRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.analyses[id]
	if !ok || rec.UserID != userID {
		return nil, ErrAnalysisNotFound
	}
	return rec, nil
}

// ListAnalyses returns a page of the user's analyses, newest first.
func (s *MemoryStore) ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]*core.AnalysisRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*core.AnalysisRecord
	for _, rec := range s.analyses {
		if rec.UserID == userID {
			all = append(all, rec)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

// DeleteAnalysis removes an analysis owned by the user.
func (s *MemoryStore) DeleteAnalysis(ctx context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.analyses[id]
	if !ok || rec.UserID != userID {
		return ErrAnalysisNotFound
	}
	delete(s.analyses, id)
	return nil
}

// Stats summarizes the user's analysis history.
func (s *MemoryStore) Stats(ctx context.Context, userID string) (*core.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &core.DashboardStats{}
	sum := 0.0
	for _, rec := range s.analyses {
		if rec.UserID != userID {
			continue
		}
		stats.TotalAnalyses++
		sum += rec.Result.TrustScore
		switch rec.Result.RiskLevel {
		case core.RiskSafe:
			stats.SafeCount++
		case core.RiskSuspicious:
			stats.SuspiciousCount++
		case core.RiskHigh:
			stats.HighRiskCount++
		}
	}
	if stats.TotalAnalyses > 0 {
		stats.AverageTrustScore = sum / float64(stats.TotalAnalyses)
	}
	return stats, nil
}

// CreateUser registers a new account.
func (s *MemoryStore) CreateUser(ctx context.Context, user *core.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	s.users[user.ID] = user
	return nil
}

// GetUserByEmail looks an account up by email.
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetUserByID looks an account up by id.
func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}
