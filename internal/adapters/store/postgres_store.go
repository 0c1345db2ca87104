package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

// PostgresStore is a PostgreSQL implementation of AnalysisStore and
// UserStore backed by a pgx connection pool.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists.
func NewPostgresStore(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := createPostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{
		pool:   pool,
		logger: logger,
	}, nil
}

func createPostgresSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			text TEXT NOT NULL,
			company_email TEXT,
			company_website TEXT,
			trust_score DOUBLE PRECISION NOT NULL,
			risk_level TEXT NOT NULL,
			result_json JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS idx_analyses_user ON analyses(user_id, created_at)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analyses index: %w", err)
	}

	_, err = pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// SaveAnalysis stores one analysis record.
func (s *PostgresStore) SaveAnalysis(ctx context.Context, rec *core.AnalysisRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO analyses (id, user_id, text, company_email, company_website, trust_score, risk_level, result_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, rec.ID, rec.UserID, rec.Text, rec.CompanyEmail, rec.CompanyWebsite,
		rec.Result.TrustScore, string(rec.Result.RiskLevel), resultJSON, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetAnalysis retrieves an analysis by id, scoped to its owner.
func (s *PostgresStore) GetAnalysis(ctx context.Context, id, userID string) (*core.AnalysisRecord, error) {
	rec, err := s.scanAnalysis(s.pool.QueryRow(ctx, `
		SELECT id, user_id, text, COALESCE(company_email, ''), COALESCE(company_website, ''), result_json, created_at
		FROM analyses
		WHERE id = $1 AND user_id = $2
	`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns a page of the user's analyses, newest first, plus the
// total count.
func (s *PostgresStore) ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]*core.AnalysisRecord, int, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, text, COALESCE(company_email, ''), COALESCE(company_website, ''), result_json, created_at
		FROM analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var records []*core.AnalysisRecord
	for rows.Next() {
		rec, err := s.scanAnalysis(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	var total int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM analyses WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	return records, total, nil
}

// DeleteAnalysis removes an analysis owned by the user.
func (s *PostgresStore) DeleteAnalysis(ctx context.Context, id, userID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}

// Stats summarizes the user's analysis history.
func (s *PostgresStore) Stats(ctx context.Context, userID string) (*core.DashboardStats, error) {
	stats := &core.DashboardStats{}
	var avg *float64

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN risk_level = $1 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN risk_level = $2 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN risk_level = $3 THEN 1 ELSE 0 END), 0),
		       AVG(trust_score)
		FROM analyses
		WHERE user_id = $4
	`, string(core.RiskSafe), string(core.RiskSuspicious), string(core.RiskHigh), userID).
		Scan(&stats.TotalAnalyses, &stats.SafeCount, &stats.SuspiciousCount, &stats.HighRiskCount, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if avg != nil {
		stats.AverageTrustScore = *avg
	}
	return stats, nil
}

// CreateUser registers a new account.
func (s *PostgresStore) CreateUser(ctx context.Context, user *core.User) error {
	var existing string
	err := s.pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, user.Email).Scan(&existing)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail looks an account up by email.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email = $1`, email)
}

// GetUserByID looks an account up by id.
func (s *PostgresStore) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = $1`, id)
}

func (s *PostgresStore) getUser(ctx context.Context, query, arg string) (*core.User, error) {
	var user core.User
	err := s.pool.QueryRow(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// pgxRow covers pgx.Row and pgx.Rows for shared scanning.
type pgxRow interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanAnalysis(row pgxRow) (*core.AnalysisRecord, error) {
	var rec core.AnalysisRecord
	var resultJSON []byte

	if err := row.Scan(&rec.ID, &rec.UserID, &rec.Text, &rec.CompanyEmail, &rec.CompanyWebsite, &resultJSON, &rec.CreatedAt); err != nil {
		return nil, err
	}

	var result core.AnalysisResult
	if err := json.Unmarshal(resultJSON, &result); err != nil {
		return nil, fmt.Errorf("failed to decode stored result: %w", err)
	}
	rec.Result = &result
	return &rec, nil
}
