package core

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubChecker struct {
	result  ProbeResult
	called  bool
	website string
}

func (s *stubChecker) Check(ctx context.Context, website string) ProbeResult {
	s.called = true
	s.website = website
	return s.result
}

func newTestEngine(checker ReachabilityChecker) *Engine {
	return NewEngine(DefaultLexicon(), checker, DefaultScoreWeights(), zap.NewNop())
}

const neutralText = "We enjoyed speaking with you about the engineering role at our studio."

func TestAnalyze_NeutralOffer(t *testing.T) {
	checker := &stubChecker{result: ProbeResult{State: ProbeReachable, Detail: "Website accessible (Status: 200, HTTPS: true)"}}
	engine := newTestEngine(checker)

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:           neutralText,
		CompanyEmail:   "recruiting@acme.com",
		CompanyWebsite: "https://acme.com",
	})

	if result.TrustScore != 100 {
		t.Errorf("TrustScore = %v, want 100", result.TrustScore)
	}
	if result.RiskLevel != RiskSafe || result.RiskColor != ColorSuccess {
		t.Errorf("risk = (%s, %s), want (Safe, success)", result.RiskLevel, result.RiskColor)
	}
	if !checker.called {
		t.Error("website checker was not invoked")
	}
	if !result.WebsiteExists {
		t.Error("WebsiteExists = false for a reachable website")
	}
	if !result.CompanyMatch {
		t.Error("CompanyMatch = false for matching domains")
	}
	if len(result.Explanations) != 1 || !strings.Contains(result.Explanations[0], "No major red flags") {
		t.Errorf("Explanations = %v, want the single default sentence", result.Explanations)
	}
	if len(result.RedFlags) != 0 {
		t.Errorf("RedFlags = %v, want empty", result.RedFlags)
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("Recommendations = %v, want the single default entry", result.Recommendations)
	}
	if result.TextLength != len(neutralText) {
		t.Errorf("TextLength = %d, want %d", result.TextLength, len(neutralText))
	}
	if result.WordCount != 12 {
		t.Errorf("WordCount = %d, want 12", result.WordCount)
	}
}

func TestAnalyze_StackedSignals(t *testing.T) {
	checker := &stubChecker{}
	engine := newTestEngine(checker)

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:         "URGENT!! Act now and pay a $500 fee via western union. Guaranteed easy money, no experience needed, work from home!",
		CompanyEmail: "hiring.manager@gmail.com",
	})

	if result.RiskLevel != RiskHigh || result.RiskColor != ColorDanger {
		t.Errorf("risk = (%s, %s), want (High Risk, danger)", result.RiskLevel, result.RiskColor)
	}
	if result.TrustScore >= 50 {
		t.Errorf("TrustScore = %v, want < 50", result.TrustScore)
	}
	if checker.called {
		t.Error("checker invoked although no website was supplied")
	}
	if result.WebsiteExists {
		t.Error("WebsiteExists = true with no website supplied")
	}
	if !result.EmailDomainSuspicious {
		t.Error("EmailDomainSuspicious = false for a gmail.com contact")
	}
	if result.KeywordScore == 0 || len(result.KeywordDetections) == 0 {
		t.Error("no keywords detected in an obviously scammy offer")
	}
	if result.FinancialFlagsCount == 0 {
		t.Error("no financial flags detected despite fee and wire transfer mentions")
	}
	if len(result.RedFlags) == 0 || len(result.Recommendations) != len(result.RedFlags) {
		t.Errorf("red flags and recommendations out of step: %d vs %d",
			len(result.RedFlags), len(result.Recommendations))
	}
}

func TestAnalyze_FreeEmailOnly(t *testing.T) {
	engine := newTestEngine(&stubChecker{})

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:         neutralText,
		CompanyEmail: "someone@yahoo.com",
	})

	// 10 for the free provider plus 15 for the unverifiable website.
	if result.TrustScore != 75 {
		t.Errorf("TrustScore = %v, want 75", result.TrustScore)
	}
	if result.RiskLevel != RiskSuspicious {
		t.Errorf("RiskLevel = %s, want Suspicious", result.RiskLevel)
	}
}

func TestAnalyze_UnreachableWebsite(t *testing.T) {
	checker := &stubChecker{result: ProbeResult{State: ProbeUnreachable, Detail: "Domain does not resolve"}}
	engine := newTestEngine(checker)

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:           neutralText,
		CompanyWebsite: "https://no-such-employer.example",
	})

	if result.WebsiteExists {
		t.Error("WebsiteExists = true for an unreachable website")
	}
	if result.WebsiteStatus != "Domain does not resolve" {
		t.Errorf("WebsiteStatus = %q", result.WebsiteStatus)
	}
	found := false
	for _, e := range result.Explanations {
		if strings.Contains(e, "website could not be verified") {
			found = true
		}
	}
	if !found {
		t.Errorf("Explanations %v missing website verification sentence", result.Explanations)
	}
}

func TestAnalyze_IndeterminateProbeCountsAsExisting(t *testing.T) {
	checker := &stubChecker{result: ProbeResult{State: ProbeIndeterminate, Detail: "Domain exists but connection failed (HTTPS: true)"}}
	engine := newTestEngine(checker)

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:           neutralText,
		CompanyWebsite: "https://acme.com",
	})

	if !result.WebsiteExists {
		t.Error("WebsiteExists = false for a resolved host whose probe failed")
	}
}

func TestAnalyze_DomainMismatch(t *testing.T) {
	checker := &stubChecker{result: ProbeResult{State: ProbeReachable, Detail: "Website accessible (Status: 200, HTTPS: true)"}}
	engine := newTestEngine(checker)

	result := engine.Analyze(context.Background(), AnalysisInput{
		Text:           neutralText,
		CompanyEmail:   "recruiting@acme.com",
		CompanyWebsite: "https://unrelated.biz",
	})

	if result.CompanyMatch {
		t.Error("CompanyMatch = true for unrelated domains")
	}
	if result.TrustScore != 90 {
		t.Errorf("TrustScore = %v, want 90", result.TrustScore)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	engine := newTestEngine(&stubChecker{result: ProbeResult{State: ProbeReachable, Detail: "Website accessible (Status: 200, HTTPS: true)"}})
	input := AnalysisInput{
		Text:           "URGENT!! Pay the $50 registration fee immediately to secure this guaranteed work from home position.",
		CompanyEmail:   "jobs@gmail.com",
		CompanyWebsite: "https://acme.com",
	}

	first := engine.Analyze(context.Background(), input)
	second := engine.Analyze(context.Background(), input)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different results:\n%+v\n%+v", first, second)
	}
}
