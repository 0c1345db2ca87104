package core

import (
	"math"
)

// ScoreWeights is the versioned deduction table behind the trust score.
// The aggregation starts at 100 and subtracts capped, additive deductions;
// the caps stop any single evidence category from dominating the score.
type ScoreWeights struct {
	Version string

	KeywordWeight int
	KeywordCap    int

	UrgencyWeight int
	UrgencyCap    int

	GrammarWeight int
	GrammarCap    int

	FinancialWeight int
	FinancialCap    int

	FreeEmailPenalty      int
	WebsitePenalty        int
	DomainMismatchPenalty int
}

// DefaultScoreWeights returns the canonical deduction table. Changing any
// value here is a contract change and needs a new version string.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		Version:               "v2",
		KeywordWeight:         5,
		KeywordCap:            30,
		UrgencyWeight:         5,
		UrgencyCap:            20,
		GrammarWeight:         5,
		GrammarCap:            15,
		FinancialWeight:       6,
		FinancialCap:          25,
		FreeEmailPenalty:      10,
		WebsitePenalty:        15,
		DomainMismatchPenalty: 10,
	}
}

// TrustScore aggregates a detection report into a score clamped to [0,100],
// rounded to two decimals.
func (w ScoreWeights) TrustScore(r *DetectionReport) float64 {
	score := 100.0

	score -= float64(min(r.KeywordScore*w.KeywordWeight, w.KeywordCap))
	score -= float64(min(r.UrgencyScore*w.UrgencyWeight, w.UrgencyCap))
	score -= float64(min(r.GrammarIssues*w.GrammarWeight, w.GrammarCap))
	score -= float64(min(r.FinancialFlagsCount*w.FinancialWeight, w.FinancialCap))

	if r.EmailDomainSuspicious {
		score -= float64(w.FreeEmailPenalty)
	}
	if !r.WebsiteExists {
		score -= float64(w.WebsitePenalty)
	}
	if !r.CompanyMatch {
		score -= float64(w.DomainMismatchPenalty)
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return math.Round(score*100) / 100
}

// ClassifyRisk maps a trust score to its risk level and display color.
// Thresholds are fixed: >=80 Safe, >=50 Suspicious, otherwise High Risk.
func ClassifyRisk(score float64) (RiskLevel, RiskColor) {
	switch {
	case score >= 80:
		return RiskSafe, ColorSuccess
	case score >= 50:
		return RiskSuspicious, ColorWarning
	default:
		return RiskHigh, ColorDanger
	}
}
