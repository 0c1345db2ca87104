package core

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

type stubNarrative struct {
	out   string
	err   error
	calls int
}

func (s *stubNarrative) Explain(ctx context.Context, text string, result *AnalysisResult) (string, error) {
	s.calls++
	return s.out, s.err
}

type stubStore struct {
	saved   []*AnalysisRecord
	saveErr error
}

func (s *stubStore) SaveAnalysis(ctx context.Context, rec *AnalysisRecord) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, rec)
	return nil
}

func (s *stubStore) GetAnalysis(ctx context.Context, id, userID string) (*AnalysisRecord, error) {
	return nil, errors.New("not implemented")
}

func (s *stubStore) ListAnalyses(ctx context.Context, userID string, limit, offset int) ([]*AnalysisRecord, int, error) {
	return nil, 0, errors.New("not implemented")
}

func (s *stubStore) DeleteAnalysis(ctx context.Context, id, userID string) error {
	return errors.New("not implemented")
}

func (s *stubStore) Stats(ctx context.Context, userID string) (*DashboardStats, error) {
	return nil, errors.New("not implemented")
}

func newTestService(narrative NarrativeClient, store AnalysisStore) *AnalyzerService {
	engine := newTestEngine(&stubChecker{})
	return NewAnalyzerService(engine, narrative, store, zap.NewNop(), time.Second)
}

func TestServiceAnalyze_FallbackWithoutProvider(t *testing.T) {
	svc := newTestService(nil, nil)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText})

	if rec.Result.Narrative == "" {
		t.Fatal("Narrative empty, want deterministic fallback")
	}
	if want := FallbackNarrative(rec.Result); rec.Result.Narrative != want {
		t.Errorf("Narrative = %q, want fallback %q", rec.Result.Narrative, want)
	}
}

func TestServiceAnalyze_FallbackOnProviderError(t *testing.T) {
	narrative := &stubNarrative{err: errors.New("provider down")}
	svc := newTestService(narrative, nil)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText})

	if narrative.calls != 1 {
		t.Errorf("provider called %d times, want 1", narrative.calls)
	}
	if want := FallbackNarrative(rec.Result); rec.Result.Narrative != want {
		t.Errorf("Narrative = %q, want fallback", rec.Result.Narrative)
	}
}

func TestServiceAnalyze_FallbackOnShortResponse(t *testing.T) {
	narrative := &stubNarrative{out: "fine"}
	svc := newTestService(narrative, nil)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText})

	if want := FallbackNarrative(rec.Result); rec.Result.Narrative != want {
		t.Errorf("short provider response was not replaced by the fallback: %q", rec.Result.Narrative)
	}
}

func TestServiceAnalyze_ProviderResponseUsed(t *testing.T) {
	out := "This offer reads like a legitimate engineering role; the employer's contact details check out."
	narrative := &stubNarrative{out: "  " + out + "  "}
	svc := newTestService(narrative, nil)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText})

	if rec.Result.Narrative != out {
		t.Errorf("Narrative = %q, want trimmed provider output", rec.Result.Narrative)
	}
}

func TestServiceAnalyze_PersistsRecord(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(nil, store)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText, CompanyEmail: "hr@acme.com"})

	if rec.ID == "" {
		t.Error("record has no id")
	}
	if rec.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", rec.UserID)
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if len(store.saved) != 1 || store.saved[0] != rec {
		t.Errorf("store received %d records, want the returned one", len(store.saved))
	}
}

func TestServiceAnalyze_TruncatesStoredText(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(nil, store)

	long := neutralText + " " + strings.Repeat("details ", 200)
	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: long})

	if len(rec.Text) != storedTextLimit {
		t.Errorf("stored text length = %d, want %d", len(rec.Text), storedTextLimit)
	}
	// The analysis itself still sees the full text.
	if rec.Result.TextLength != len(long) {
		t.Errorf("TextLength = %d, want %d", rec.Result.TextLength, len(long))
	}
}

func TestServiceAnalyze_SaveFailureIsNotFatal(t *testing.T) {
	store := &stubStore{saveErr: errors.New("disk full")}
	svc := newTestService(nil, store)

	rec := svc.Analyze(context.Background(), "user-1", AnalysisInput{Text: neutralText})

	if rec == nil || rec.Result == nil {
		t.Fatal("analysis result lost on save failure")
	}
}

func TestFallbackNarrative(t *testing.T) {
	cases := []struct {
		name   string
		result AnalysisResult
		want   []string
	}{
		{
			name:   "safe offer",
			result: AnalysisResult{RiskLevel: RiskSafe, DetectionReport: DetectionReport{WebsiteExists: true}},
			want:   []string{"does not show the usual signs"},
		},
		{
			name: "high risk with financial flags",
			result: AnalysisResult{
				RiskLevel:       RiskHigh,
				DetectionReport: DetectionReport{FinancialFlagsCount: 2, WebsiteExists: true},
			},
			want: []string{"strong signs of a recruitment scam", "request for money"},
		},
		{
			name: "urgent with unverified website",
			result: AnalysisResult{
				RiskLevel:       RiskSuspicious,
				DetectionReport: DetectionReport{UrgencyScore: 5},
			},
			want: []string{"warrant caution", "manufacture urgency", "web presence could not be verified"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FallbackNarrative(&tc.result)
			for _, fragment := range tc.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("FallbackNarrative missing %q in %q", fragment, got)
				}
			}
		})
	}
}

func TestFallbackNarrative_Deterministic(t *testing.T) {
	result := &AnalysisResult{RiskLevel: RiskHigh, DetectionReport: DetectionReport{UrgencyScore: 4}}
	if FallbackNarrative(result) != FallbackNarrative(result) {
		t.Error("fallback narrative is not deterministic")
	}
}
