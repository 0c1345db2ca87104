package core

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/job-scam-detector/internal/metrics"
	"go.uber.org/zap"
)

const (
	// storedTextLimit bounds how much submission text is persisted.
	storedTextLimit = 1000

	// minNarrativeLength guards against implausibly short provider output;
	// anything under it falls back to the deterministic narrative.
	minNarrativeLength = 40
)

// AnalyzerService orchestrates one submission end to end: the rule engine,
// the optional narrative provider and persistence. Both narrative and store
// may be nil (the CLI runs without either).
type AnalyzerService struct {
	engine           *Engine
	narrative        NarrativeClient
	store            AnalysisStore
	logger           *zap.Logger
	narrativeTimeout time.Duration
}

// NewAnalyzerService creates a new analyzer service.
func NewAnalyzerService(
	engine *Engine,
	narrative NarrativeClient,
	store AnalysisStore,
	logger *zap.Logger,
	narrativeTimeout time.Duration,
) *AnalyzerService {
	return &AnalyzerService{
		engine:           engine,
		narrative:        narrative,
		store:            store,
		logger:           logger,
		narrativeTimeout: narrativeTimeout,
	}
}

// Analyze runs the full pipeline for one submission and persists the record
// when a store is configured. A result is always produced; a failed save is
// logged and does not void the analysis.
func (s *AnalyzerService) Analyze(ctx context.Context, userID string, input AnalysisInput) *AnalysisRecord {
	result := s.engine.Analyze(ctx, input)
	result.Narrative = s.narrativeFor(ctx, input.Text, result)

	rec := &AnalysisRecord{
		ID:             uuid.NewString(),
		UserID:         userID,
		Text:           truncateStored(input.Text),
		CompanyEmail:   input.CompanyEmail,
		CompanyWebsite: input.CompanyWebsite,
		Result:         result,
		CreatedAt:      time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.SaveAnalysis(ctx, rec); err != nil {
			s.logger.Error("Failed to persist analysis",
				zap.Error(err),
				zap.String("analysis_id", rec.ID),
				zap.String("user_id", userID))
		}
	}

	return rec
}

// narrativeFor asks the configured provider for a prose explanation and
// degrades to the deterministic fallback on any failure, timeout or
// implausibly short response.
func (s *AnalyzerService) narrativeFor(ctx context.Context, text string, result *AnalysisResult) string {
	fallback := FallbackNarrative(result)
	if s.narrative == nil {
		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.narrativeTimeout)
	defer cancel()

	metrics.NarrativeRequests.Inc()
	out, err := s.narrative.Explain(ctx, text, result)
	if err != nil {
		s.logger.Warn("Narrative provider unavailable, using fallback", zap.Error(err))
		metrics.NarrativeFallbacks.Inc()
		return fallback
	}

	out = strings.TrimSpace(out)
	if len(out) < minNarrativeLength {
		s.logger.Warn("Narrative provider returned implausibly short response, using fallback",
			zap.Int("length", len(out)))
		metrics.NarrativeFallbacks.Inc()
		return fallback
	}

	return out
}

// FallbackNarrative builds the deterministic explanation used whenever the
// narrative provider is absent or fails. It is a pure function of the
// rule-based result, so identical inputs always produce identical prose.
func FallbackNarrative(r *AnalysisResult) string {
	var parts []string

	switch r.RiskLevel {
	case RiskHigh:
		parts = append(parts, "This offer shows several strong signs of a recruitment scam.")
	case RiskSuspicious:
		parts = append(parts, "This offer shows some characteristics that warrant caution.")
	default:
		parts = append(parts, "This offer does not show the usual signs of a recruitment scam.")
	}

	if r.UrgencyScore > urgencyExplainThreshold {
		parts = append(parts, "Scammers often manufacture urgency so that victims act before checking the details.")
	}
	if r.FinancialFlagsCount > 0 {
		parts = append(parts, "Be especially careful with any request for money or financial information; legitimate employers do not charge candidates.")
	}
	if !r.WebsiteExists {
		parts = append(parts, "The company's web presence could not be verified, which makes independent confirmation harder.")
	}

	parts = append(parts, "Verify the employer through official channels before responding.")
	return strings.Join(parts, " ")
}

func truncateStored(text string) string {
	if len(text) <= storedTextLimit {
		return text
	}
	return text[:storedTextLimit]
}
