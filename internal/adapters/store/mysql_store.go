package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/mikey/job-scam-detector/internal/core"
	"go.uber.org/zap"
)

// MySQLStore is a MySQL implementation of AnalysisStore and UserStore.
// Timestamps are stored as RFC 3339 strings so records stay portable across
// the SQL backends.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore connects to MySQL using the given DSN and ensures the schema
// exists.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	if err := createMySQLSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &MySQLStore{
		db:     db,
		logger: logger,
	}, nil
}

func createMySQLSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS analyses (
			id VARCHAR(36) PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			text TEXT NOT NULL,
			company_email VARCHAR(255),
			company_website VARCHAR(255),
			trust_score DOUBLE NOT NULL,
			risk_level VARCHAR(16) NOT NULL,
			result_json MEDIUMTEXT NOT NULL,
			created_at VARCHAR(64) NOT NULL,
			INDEX idx_analyses_user (user_id, created_at)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create analyses table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(36) PRIMARY KEY,
			username VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(255) NOT NULL,
			created_at VARCHAR(64) NOT NULL,
			updated_at VARCHAR(64) NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}

	return nil
}

// SaveAnalysis stores one analysis record.
func (s *MySQLStore) SaveAnalysis(ctx context.Context, rec *core.AnalysisRecord) error {
	resultJSON, err := json.Marshal(rec.Result)
	if err != nil {
		return fmt.Errorf("failed to encode analysis result: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO analyses (id, user_id, text, company_email, company_website, trust_score, risk_level, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Text, rec.CompanyEmail, rec.CompanyWebsite,
		rec.Result.TrustScore, string(rec.Result.RiskLevel), string(resultJSON),
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	return nil
}

// GetAnalysis retrieves an analysis by id, scoped to its owner.
func (s *MySQLStore) GetAnalysis(ctx context.Context, id, userID string) (*core.AnalysisRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, text, company_email, company_website, result_json, created_at
		FROM analyses
		WHERE id = ? AND user_id = ?
	`, id, userID)

	rec, err := scanAnalysisRow(row)
	if err == sql.ErrNoRows {
		return nil, ErrAnalysisNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}
	return rec, nil
}

// ListAnalyses returns a page of the user's analyses, newest first, plus the
// total count.
func (s *MySQLStore) ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]*core.AnalysisRecord, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, text, company_email, company_website, result_json, created_at
		FROM analyses
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?
	`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var records []*core.AnalysisRecord
	for rows.Next() {
		rec, err := scanAnalysisRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan analysis: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate analyses: %w", err)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count analyses: %w", err)
	}

	return records, total, nil
}

// DeleteAnalysis removes an analysis owned by the user.
func (s *MySQLStore) DeleteAnalysis(ctx context.Context, id, userID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM analyses WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return ErrAnalysisNotFound
	}
	return nil
}

// Stats summarizes the user's analysis history.
func (s *MySQLStore) Stats(ctx context.Context, userID string) (*core.DashboardStats, error) {
	stats := &core.DashboardStats{}
	var avg sql.NullFloat64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN risk_level = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN risk_level = ? THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN risk_level = ? THEN 1 ELSE 0 END), 0),
		       AVG(trust_score)
		FROM analyses
		WHERE user_id = ?
	`, string(core.RiskSafe), string(core.RiskSuspicious), string(core.RiskHigh), userID).
		Scan(&stats.TotalAnalyses, &stats.SafeCount, &stats.SuspiciousCount, &stats.HighRiskCount, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	if avg.Valid {
		stats.AverageTrustScore = avg.Float64
	}
	return stats, nil
}

// CreateUser registers a new account.
func (s *MySQLStore) CreateUser(ctx context.Context, user *core.User) error {
	var existing string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, user.Email).Scan(&existing)
	if err == nil {
		return ErrEmailTaken
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("failed to check existing user: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, user.ID, user.Username, user.Email, user.PasswordHash,
		user.CreatedAt.Format(time.RFC3339Nano), user.UpdatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByEmail looks an account up by email.
func (s *MySQLStore) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email = ?`, email)
}

// GetUserByID looks an account up by id.
func (s *MySQLStore) GetUserByID(ctx context.Context, id string) (*core.User, error) {
	return s.getUser(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id = ?`, id)
}

func (s *MySQLStore) getUser(ctx context.Context, query, arg string) (*core.User, error) {
	var user core.User
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	user.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	user.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return &user, nil
}

// Close closes the database connection.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
