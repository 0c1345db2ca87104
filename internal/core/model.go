package core

import (
	"time"
)

// AnalysisInput is a single job or internship offer submitted for analysis.
// The engine treats it as read-only; email and website are optional hints.
type AnalysisInput struct {
	Text           string
	CompanyEmail   string
	CompanyWebsite string
}

// RiskLevel is the discrete classification derived from a trust score.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "Safe"
	RiskSuspicious RiskLevel = "Suspicious"
	RiskHigh       RiskLevel = "High Risk"
)

// RiskColor is the display tag paired 1:1 with a risk level.
type RiskColor string

const (
	ColorSuccess RiskColor = "success"
	ColorWarning RiskColor = "warning"
	ColorDanger  RiskColor = "danger"
)

// DetectionReport holds the raw output of every detector for one submission.
// Evidence lists (UrgencyMatches, FinancialFlags) are capped for display;
// the corresponding counts are not.
type DetectionReport struct {
	KeywordDetections     map[string][]string `json:"keyword_detections"`
	KeywordScore          int                 `json:"keyword_score"`
	UrgencyScore          int                 `json:"urgency_score"`
	UrgencyMatches        []string            `json:"urgency_matches"`
	GrammarIssues         int                 `json:"grammar_issues"`
	FinancialFlags        []string            `json:"financial_flags"`
	FinancialFlagsCount   int                 `json:"financial_flags_count"`
	EmailDomainSuspicious bool                `json:"email_domain_suspicious"`
	EmailDomain           string              `json:"email_domain,omitempty"`
	WebsiteExists         bool                `json:"website_exists"`
	WebsiteStatus         string              `json:"website_status,omitempty"`
	CompanyMatch          bool                `json:"company_match"`
}

// AnalysisResult is the full outcome returned to callers. Field names are
// part of the wire contract.
type AnalysisResult struct {
	DetectionReport

	TrustScore      float64   `json:"trust_score"`
	RiskLevel       RiskLevel `json:"risk_level"`
	RiskColor       RiskColor `json:"risk_color"`
	Explanations    []string  `json:"explanations"`
	RedFlags        []string  `json:"red_flags"`
	Recommendations []string  `json:"recommendations"`
	TextLength      int       `json:"text_length"`
	WordCount       int       `json:"word_count"`

	// Narrative is the optional generative explanation. When the narrative
	// provider is unavailable it carries the deterministic fallback instead.
	Narrative string `json:"ai_analysis,omitempty"`
}

// AnalysisRecord is a stored analysis with identity metadata attached by the
// service layer. The engine itself never persists anything.
type AnalysisRecord struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Text           string          `json:"text"`
	CompanyEmail   string          `json:"company_email,omitempty"`
	CompanyWebsite string          `json:"company_website,omitempty"`
	Result         *AnalysisResult `json:"result"`
	CreatedAt      time.Time       `json:"created_at"`
}

// User is a registered account.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DashboardStats summarizes a user's analysis history.
type DashboardStats struct {
	TotalAnalyses     int     `json:"total_analyses"`
	SafeCount         int     `json:"safe_count"`
	SuspiciousCount   int     `json:"suspicious_count"`
	HighRiskCount     int     `json:"high_risk_count"`
	AverageTrustScore float64 `json:"average_trust_score"`
}
