package core

import (
	"fmt"
)

const (
	urgencyExplainThreshold = 3
	grammarExplainThreshold = 2
)

// signal is one user-facing condition over a detection report. The table in
// signals below is evaluated in declared order so the generated sentences
// are stable across calls.
type signal struct {
	hit     func(*DetectionReport) bool
	explain func(*DetectionReport) string
	flag    string
	advice  string
}

var signals = []signal{
	{
		hit: func(r *DetectionReport) bool { return r.KeywordScore > 0 },
		explain: func(r *DetectionReport) string {
			return fmt.Sprintf("Found %d suspicious keyword(s) related to scams", r.KeywordScore)
		},
		flag:   "Scam-related keywords appear in the offer text",
		advice: "Compare the wording against postings on the company's official careers page",
	},
	{
		hit: func(r *DetectionReport) bool { return r.UrgencyScore > urgencyExplainThreshold },
		explain: func(r *DetectionReport) string {
			return "High urgency language detected - legitimate companies rarely use pressure tactics"
		},
		flag:   "Heavy pressure and urgency tactics",
		advice: "Take your time; a legitimate employer will not rush your decision",
	},
	{
		hit: func(r *DetectionReport) bool { return r.GrammarIssues > grammarExplainThreshold },
		explain: func(r *DetectionReport) string {
			return "Multiple grammar issues found - professional companies typically have better communication"
		},
		flag:   "Unprofessional language and grammar",
		advice: "Be wary of offers that do not read like professional business communication",
	},
	{
		hit: func(r *DetectionReport) bool { return r.FinancialFlagsCount > 0 },
		explain: func(r *DetectionReport) string {
			return "Financial red flags detected: requests for payment or personal financial information"
		},
		flag:   "Requests involving payments or financial details",
		advice: "Never pay fees or share bank details to secure a job",
	},
	{
		hit: func(r *DetectionReport) bool { return r.EmailDomainSuspicious },
		explain: func(r *DetectionReport) string {
			return "Company email uses free email domain - legitimate companies typically use their own domain"
		},
		flag:   "Contact email uses a free provider",
		advice: "Verify the recruiter through an address on the company's own domain",
	},
	{
		hit: func(r *DetectionReport) bool { return !r.WebsiteExists },
		explain: func(r *DetectionReport) string {
			return "Company website could not be verified or does not exist"
		},
		flag:   "Company website could not be verified",
		advice: "Search for the company's official website and contact them directly",
	},
	{
		hit: func(r *DetectionReport) bool { return !r.CompanyMatch },
		explain: func(r *DetectionReport) string {
			return "Email domain does not match company website domain"
		},
		flag:   "Email domain does not match the company website",
		advice: "Ask why the recruiter is not writing from the company's own domain",
	},
}

const defaultExplanation = "No major red flags detected. However, always verify independently."

const defaultRecommendation = "No specific red flags found. Still verify the employer independently before sharing personal information."

// buildExplanations derives the ordered explanation sentences from a report.
// When nothing fired it returns exactly one default sentence.
func buildExplanations(r *DetectionReport) []string {
	var explanations []string
	for _, s := range signals {
		if s.hit(r) {
			explanations = append(explanations, s.explain(r))
		}
	}
	if len(explanations) == 0 {
		explanations = append(explanations, defaultExplanation)
	}
	return explanations
}

// buildRedFlags derives the parallel red-flag and recommendation lists from
// the same condition table. An empty red-flag list still yields one default
// recommendation, so the two lists are not guaranteed the same length.
func buildRedFlags(r *DetectionReport) ([]string, []string) {
	var flags, recommendations []string
	for _, s := range signals {
		if s.hit(r) {
			flags = append(flags, s.flag)
			recommendations = append(recommendations, s.advice)
		}
	}
	if len(flags) == 0 {
		recommendations = append(recommendations, defaultRecommendation)
	}
	return flags, recommendations
}
