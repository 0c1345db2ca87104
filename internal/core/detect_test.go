package core

import (
	"testing"
)

func TestDetectKeywords_CleanText(t *testing.T) {
	l := DefaultLexicon()

	detections, score := l.DetectKeywords("we would like to invite you to a second interview at our office")
	if score != 0 {
		t.Errorf("score = %d, want 0", score)
	}
	if len(detections) != 0 {
		t.Errorf("detections = %v, want empty", detections)
	}
}

func TestDetectKeywords_CountsOncePerCategory(t *testing.T) {
	l := DefaultLexicon()

	// "work from home" belongs to two categories and occurs twice in the
	// text; it must count exactly once in each category.
	detections, score := l.DetectKeywords("work from home today, work from home forever")
	if score != 2 {
		t.Errorf("score = %d, want 2", score)
	}
	if got := detections["too_good"]; len(got) != 1 || got[0] != "work from home" {
		t.Errorf("too_good = %v, want [work from home]", got)
	}
	if got := detections["remote_work_scam"]; len(got) != 1 || got[0] != "work from home" {
		t.Errorf("remote_work_scam = %v, want [work from home]", got)
	}
}

func TestDetectKeywords_MultipleCategories(t *testing.T) {
	l := DefaultLexicon()

	detections, score := l.DetectKeywords("urgent: wire transfer asap")
	if len(detections["urgent"]) != 2 {
		t.Errorf("urgent detections = %v, want urgent and asap", detections["urgent"])
	}
	if len(detections["payment"]) != 1 {
		t.Errorf("payment detections = %v, want wire transfer", detections["payment"])
	}
	if score != 3 {
		t.Errorf("score = %d, want 3", score)
	}
}

func TestAnalyzeUrgency_FrequencySensitive(t *testing.T) {
	l := DefaultLexicon()

	score, matches := l.AnalyzeUrgency("urgent urgent urgent")
	if score != 3 {
		t.Errorf("score = %d, want 3", score)
	}
	if len(matches) != 3 {
		t.Errorf("matches = %v, want 3 entries", matches)
	}
}

func TestAnalyzeUrgency_MixedPatterns(t *testing.T) {
	l := DefaultLexicon()

	// "act now" twice, "!!!" once.
	score, _ := l.AnalyzeUrgency("act now!!! yes, act now")
	if score != 3 {
		t.Errorf("score = %d, want 3", score)
	}
}

func TestAnalyzeUrgency_NoSignals(t *testing.T) {
	l := DefaultLexicon()

	score, matches := l.AnalyzeUrgency("the position remains open until filled")
	if score != 0 || len(matches) != 0 {
		t.Errorf("got score %d matches %v, want none", score, matches)
	}
}

func TestCountGrammarIssues(t *testing.T) {
	l := DefaultLexicon()

	cases := []struct {
		name string
		text string
		want int
	}{
		{
			name: "three scam tells, normal sentence length",
			text: "kindly revert back and do the needful",
			want: 3,
		},
		{
			name: "am-ing construction only",
			text: "i am writing to you regarding employment.",
			want: 1,
		},
		{
			name: "short choppy text",
			text: "hello there",
			want: 1,
		},
		{
			name: "clean professional sentence",
			text: "we reviewed your application and would like to schedule a call next week.",
			want: 0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.CountGrammarIssues(tc.text); got != tc.want {
				t.Errorf("CountGrammarIssues(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestDetectFinancialFlags(t *testing.T) {
	l := DefaultLexicon()

	count, flags := l.DetectFinancialFlags("pay a fee of $500 via western union")
	if count != 4 {
		t.Errorf("count = %d, want 4 (pay, fee, $500, western union), flags %v", count, flags)
	}
	if len(flags) != count {
		t.Errorf("flags length %d does not match count %d", len(flags), count)
	}
}

func TestDetectFinancialFlags_FrequencySensitive(t *testing.T) {
	l := DefaultLexicon()

	count, _ := l.DetectFinancialFlags("fee fee fee")
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}

func TestClassifyEmailDomain(t *testing.T) {
	l := DefaultLexicon()

	cases := []struct {
		email      string
		wantFree   bool
		wantDomain string
	}{
		{"hr@gmail.com", true, "gmail.com"},
		{"HR@GMAIL.COM", true, "gmail.com"},
		{"recruiting@acme.com", false, "acme.com"},
		{"not-an-email", false, ""},
		{"trailing@", false, ""},
		{"", false, ""},
	}

	for _, tc := range cases {
		free, domain := l.ClassifyEmailDomain(tc.email)
		if free != tc.wantFree || domain != tc.wantDomain {
			t.Errorf("ClassifyEmailDomain(%q) = (%t, %q), want (%t, %q)",
				tc.email, free, domain, tc.wantFree, tc.wantDomain)
		}
	}
}

func TestMatchCompanyDomains(t *testing.T) {
	cases := []struct {
		name    string
		email   string
		website string
		want    bool
	}{
		{"exact match", "hr@acme.com", "https://acme.com", true},
		{"subdomain email", "hr@careers.acme.com", "https://acme.com", true},
		{"mismatch", "hr@acme.com", "https://unrelated.biz", false},
		{"no email", "", "https://acme.com", true},
		{"no website", "hr@acme.com", "", true},
		{"schemeless website has no host", "hr@acme.com", "acme.com/careers", true},
		{"case insensitive", "hr@ACME.com", "https://acme.COM", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := matchCompanyDomains(tc.email, tc.website); got != tc.want {
				t.Errorf("matchCompanyDomains(%q, %q) = %t, want %t",
					tc.email, tc.website, got, tc.want)
			}
		})
	}
}

func TestCapEvidence(t *testing.T) {
	items := make([]string, 25)
	for i := range items {
		items[i] = "x"
	}
	if got := capEvidence(items); len(got) != evidenceCap {
		t.Errorf("capEvidence returned %d items, want %d", len(got), evidenceCap)
	}
	short := []string{"a", "b"}
	if got := capEvidence(short); len(got) != 2 {
		t.Errorf("capEvidence shortened a list below the cap: %v", got)
	}
}
