package core

import (
	"testing"
)

// baseline is a report with no negative signals at all.
func cleanReport() DetectionReport {
	return DetectionReport{
		WebsiteExists: true,
		CompanyMatch:  true,
	}
}

func TestTrustScore_NoSignals(t *testing.T) {
	w := DefaultScoreWeights()
	r := cleanReport()
	if got := w.TrustScore(&r); got != 100 {
		t.Errorf("TrustScore = %v, want 100", got)
	}
}

func TestTrustScore_Deductions(t *testing.T) {
	w := DefaultScoreWeights()

	cases := []struct {
		name   string
		mutate func(*DetectionReport)
		want   float64
	}{
		{
			name:   "two keywords",
			mutate: func(r *DetectionReport) { r.KeywordScore = 2 },
			want:   90,
		},
		{
			name:   "keyword deduction capped at 30",
			mutate: func(r *DetectionReport) { r.KeywordScore = 50 },
			want:   70,
		},
		{
			name:   "urgency deduction capped at 20",
			mutate: func(r *DetectionReport) { r.UrgencyScore = 10 },
			want:   80,
		},
		{
			name:   "grammar deduction capped at 15",
			mutate: func(r *DetectionReport) { r.GrammarIssues = 9 },
			want:   85,
		},
		{
			name:   "financial deduction capped at 25",
			mutate: func(r *DetectionReport) { r.FinancialFlagsCount = 7 },
			want:   75,
		},
		{
			name:   "free email domain",
			mutate: func(r *DetectionReport) { r.EmailDomainSuspicious = true },
			want:   90,
		},
		{
			name:   "unverified website",
			mutate: func(r *DetectionReport) { r.WebsiteExists = false },
			want:   85,
		},
		{
			name:   "domain mismatch",
			mutate: func(r *DetectionReport) { r.CompanyMatch = false },
			want:   90,
		},
		{
			name: "free email with no website",
			mutate: func(r *DetectionReport) {
				r.EmailDomainSuspicious = true
				r.WebsiteExists = false
			},
			want: 75,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := cleanReport()
			tc.mutate(&r)
			if got := w.TrustScore(&r); got != tc.want {
				t.Errorf("TrustScore = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrustScore_ClampedToZero(t *testing.T) {
	w := DefaultScoreWeights()
	r := DetectionReport{
		KeywordScore:          100,
		UrgencyScore:          100,
		GrammarIssues:         100,
		FinancialFlagsCount:   100,
		EmailDomainSuspicious: true,
		WebsiteExists:         false,
		CompanyMatch:          false,
	}
	if got := w.TrustScore(&r); got != 0 {
		t.Errorf("TrustScore = %v, want 0", got)
	}
}

func TestTrustScore_Monotonic(t *testing.T) {
	w := DefaultScoreWeights()

	prev := 100.0
	for kw := 0; kw <= 10; kw++ {
		r := cleanReport()
		r.KeywordScore = kw
		got := w.TrustScore(&r)
		if got > prev {
			t.Errorf("score increased from %v to %v at keyword count %d", prev, got, kw)
		}
		prev = got
	}
}

func TestClassifyRisk(t *testing.T) {
	cases := []struct {
		score     float64
		wantLevel RiskLevel
		wantColor RiskColor
	}{
		{100, RiskSafe, ColorSuccess},
		{80, RiskSafe, ColorSuccess},
		{79.99, RiskSuspicious, ColorWarning},
		{50, RiskSuspicious, ColorWarning},
		{49.99, RiskHigh, ColorDanger},
		{0, RiskHigh, ColorDanger},
	}

	for _, tc := range cases {
		level, color := ClassifyRisk(tc.score)
		if level != tc.wantLevel || color != tc.wantColor {
			t.Errorf("ClassifyRisk(%v) = (%s, %s), want (%s, %s)",
				tc.score, level, color, tc.wantLevel, tc.wantColor)
		}
	}
}

// The risk level reported for any score must agree with the classification
// of that same score, whatever the deduction mix that produced it.
func TestClassifyRisk_ConsistentWithScore(t *testing.T) {
	w := DefaultScoreWeights()
	for kw := 0; kw <= 8; kw++ {
		for urg := 0; urg <= 6; urg += 2 {
			r := cleanReport()
			r.KeywordScore = kw
			r.UrgencyScore = urg
			score := w.TrustScore(&r)
			level, _ := ClassifyRisk(score)
			switch {
			case score >= 80 && level != RiskSafe:
				t.Errorf("score %v classified %s", score, level)
			case score >= 50 && score < 80 && level != RiskSuspicious:
				t.Errorf("score %v classified %s", score, level)
			case score < 50 && level != RiskHigh:
				t.Errorf("score %v classified %s", score, level)
			}
		}
	}
}
