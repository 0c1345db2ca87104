package core

import (
	"net/url"
	"regexp"
	"strings"
)

// evidenceCap bounds the urgency/financial evidence lists returned for
// display. It never affects the scores.
const evidenceCap = 10

var sentenceSplitRe = regexp.MustCompile(`[.!?]+`)

// DetectKeywords scans lowercased text for lexicon keywords. Detection is
// presence-based: a keyword counts once per category it belongs to, no
// matter how often it occurs.
func (l *Lexicon) DetectKeywords(text string) (map[string][]string, int) {
	hits := l.matcher.Match([]byte(text))
	matched := make(map[string]bool, len(hits))
	for _, hit := range hits {
		matched[l.terms[hit]] = true
	}

	detections := make(map[string][]string)
	score := 0
	for category, keywords := range l.Keywords {
		var found []string
		for _, kw := range keywords {
			if matched[strings.ToLower(kw)] {
				found = append(found, kw)
				score++
			}
		}
		if len(found) > 0 {
			detections[category] = found
		}
	}

	return detections, score
}

// AnalyzeUrgency counts urgency-pattern matches in lowercased text. The
// score is frequency-sensitive: every occurrence counts.
func (l *Lexicon) AnalyzeUrgency(text string) (int, []string) {
	score := 0
	var matches []string
	for _, re := range l.urgencyPatterns {
		found := re.FindAllString(text, -1)
		score += len(found)
		matches = append(matches, found...)
	}
	return score, matches
}

// CountGrammarIssues counts distinct scam-tell phrase patterns present in
// lowercased text (presence-based), plus one issue when the average sentence
// length falls outside the 20-200 character range.
func (l *Lexicon) CountGrammarIssues(text string) int {
	issues := 0
	for _, re := range l.grammarPatterns {
		if re.MatchString(text) {
			issues++
		}
	}

	sentences := sentenceSplitRe.Split(text, -1)
	count := len(sentences)
	if count < 1 {
		count = 1
	}
	avg := float64(len(text)) / float64(count)
	if avg < 20 || avg > 200 {
		issues++
	}

	return issues
}

// DetectFinancialFlags counts payment/money pattern matches in lowercased
// text. Frequency-sensitive, like AnalyzeUrgency.
func (l *Lexicon) DetectFinancialFlags(text string) (int, []string) {
	var flags []string
	for _, re := range l.financialPatterns {
		flags = append(flags, re.FindAllString(text, -1)...)
	}
	return len(flags), flags
}

// ClassifyEmailDomain extracts the domain of a claimed contact email and
// tests it against the free provider list. Malformed input degrades to
// (false, "") rather than erroring.
func (l *Lexicon) ClassifyEmailDomain(email string) (bool, string) {
	if email == "" || !strings.Contains(email, "@") {
		return false, ""
	}
	parts := strings.Split(email, "@")
	if len(parts) < 2 || parts[1] == "" {
		return false, ""
	}
	domain := strings.ToLower(parts[1])
	return l.IsFreeEmailDomain(domain), domain
}

// matchCompanyDomains checks that the claimed email domain and website host
// are consistent (either a substring of the other, case-insensitive). With
// insufficient data no contradiction can be asserted, so it defaults true.
func matchCompanyDomains(email, website string) bool {
	if email == "" || website == "" {
		return true
	}

	var emailDomain string
	if parts := strings.Split(email, "@"); len(parts) > 1 {
		emailDomain = parts[1]
	}

	var host string
	if u, err := url.Parse(website); err == nil {
		host = u.Host
	}

	if emailDomain == "" || host == "" {
		return true
	}

	e := strings.ToLower(emailDomain)
	h := strings.ToLower(host)
	return strings.Contains(h, e) || strings.Contains(e, h)
}

func capEvidence(items []string) []string {
	if len(items) > evidenceCap {
		return items[:evidenceCap]
	}
	return items
}
