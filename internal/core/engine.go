package core

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// Engine is the rule-based detection and scoring pipeline. It is stateless
// apart from the immutable lexicon and weights, so one Engine serves
// concurrent submissions without locking.
type Engine struct {
	lexicon *Lexicon
	checker ReachabilityChecker
	weights ScoreWeights
	logger  *zap.Logger
}

// NewEngine creates a new analysis engine.
func NewEngine(lexicon *Lexicon, checker ReachabilityChecker, weights ScoreWeights, logger *zap.Logger) *Engine {
	return &Engine{
		lexicon: lexicon,
		checker: checker,
		weights: weights,
		logger:  logger,
	}
}

// Analyze runs every detector over the input, aggregates the trust score,
// classifies the risk and generates the user-facing explanations. It always
// produces a result; weak or unreachable signals degrade to their defaults
// instead of failing the analysis. The website check is the only operation
// that touches the network and it is bounded by the checker's timeout.
func (e *Engine) Analyze(ctx context.Context, input AnalysisInput) *AnalysisResult {
	lower := strings.ToLower(input.Text)

	var report DetectionReport

	report.KeywordDetections, report.KeywordScore = e.lexicon.DetectKeywords(lower)

	urgencyScore, urgencyMatches := e.lexicon.AnalyzeUrgency(lower)
	report.UrgencyScore = urgencyScore
	report.UrgencyMatches = capEvidence(urgencyMatches)

	report.GrammarIssues = e.lexicon.CountGrammarIssues(lower)

	financialCount, financialFlags := e.lexicon.DetectFinancialFlags(lower)
	report.FinancialFlagsCount = financialCount
	report.FinancialFlags = capEvidence(financialFlags)

	if input.CompanyEmail != "" {
		report.EmailDomainSuspicious, report.EmailDomain = e.lexicon.ClassifyEmailDomain(input.CompanyEmail)
	}

	// A submission without a website keeps WebsiteExists false and takes the
	// same deduction as an unreachable one. An unverifiable employer and an
	// unnamed one read the same to the scorer.
	if input.CompanyWebsite != "" {
		probe := e.checker.Check(ctx, input.CompanyWebsite)
		report.WebsiteExists = probe.Exists()
		report.WebsiteStatus = probe.Detail
	}

	report.CompanyMatch = matchCompanyDomains(input.CompanyEmail, input.CompanyWebsite)

	score := e.weights.TrustScore(&report)
	level, color := ClassifyRisk(score)

	result := &AnalysisResult{
		DetectionReport: report,
		TrustScore:      score,
		RiskLevel:       level,
		RiskColor:       color,
		TextLength:      len(input.Text),
		WordCount:       len(strings.Fields(input.Text)),
	}
	result.Explanations = buildExplanations(&report)
	result.RedFlags, result.Recommendations = buildRedFlags(&report)

	e.logger.Debug("Analysis complete",
		zap.Float64("trust_score", score),
		zap.String("risk_level", string(level)),
		zap.Int("keyword_score", report.KeywordScore),
		zap.Int("urgency_score", report.UrgencyScore),
		zap.Int("financial_flags", report.FinancialFlagsCount),
		zap.Bool("website_exists", report.WebsiteExists))

	return result
}
