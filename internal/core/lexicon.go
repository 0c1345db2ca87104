package core

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Lexicon is the process-wide, immutable detection configuration: the
// category→keyword tables, the per-detector regex sets and the free email
// provider list. It is built once and is safe for concurrent use.
type Lexicon struct {
	Keywords map[string][]string

	freeEmailDomains map[string]bool

	urgencyPatterns   []*regexp.Regexp
	grammarPatterns   []*regexp.Regexp
	financialPatterns []*regexp.Regexp

	// Aho-Corasick matcher over the union of all keywords, plus the
	// reverse index from matched term back to its categories.
	matcher *ahocorasick.Matcher
	terms   []string
}

var defaultKeywords = map[string][]string{
	"urgent":           {"urgent", "immediately", "asap", "right away", "hurry", "limited time", "act now"},
	"payment":          {"pay", "fee", "deposit", "payment", "money", "wire transfer", "western union", "moneygram", "bitcoin", "cryptocurrency"},
	"suspicious_email": {"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com", "protonmail.com"},
	"too_good":         {"guaranteed", "no experience needed", "work from home", "easy money", "get rich quick", "high salary", "no interview"},
	"grammar_issues":   {"congratulation", "congratulation you", "kindly", "revert back", "do the needful"},
	"personal_info":    {"ssn", "social security", "bank account", "credit card", "passport number"},
	"remote_work_scam": {"work from home", "online job", "data entry", "typing job", "no experience"},
}

var defaultFreeEmailDomains = []string{
	"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "aol.com",
	"protonmail.com", "icloud.com", "mail.com", "yandex.com", "zoho.com",
}

var defaultUrgencyPatterns = []string{
	`\b(urgent|immediately|asap|right away|hurry|limited time|act now)\b`,
	`\b(must|need to|required to|you must)\b`,
	`\b(deadline|expires|expiring|last chance)\b`,
	`!{2,}`,
	`\b(guaranteed|promise|assure)\b`,
}

var defaultGrammarPatterns = []string{
	`\b(congratulation[^s])\b`,
	`\b(kindly)\b`,
	`\b(revert back)\b`,
	`\b(do the needful)\b`,
	`\b(am [a-z]+ing)\b`,
}

var defaultFinancialPatterns = []string{
	`\b(pay|payment|fee|deposit|money|cost|charge)\b`,
	`\b(wire transfer|western union|moneygram|bitcoin|cryptocurrency|paypal)\b`,
	`\b(bank account|credit card|debit card)\b`,
	`\$\d+`,
	`\b(refund|reimbursement|advance payment)\b`,
}

// DefaultLexicon returns the built-in detection configuration.
func DefaultLexicon() *Lexicon {
	return NewLexicon(defaultKeywords, defaultFreeEmailDomains,
		defaultUrgencyPatterns, defaultGrammarPatterns, defaultFinancialPatterns)
}

// NewLexicon compiles a lexicon from raw tables. Patterns must be valid
// regular expressions; keywords are matched as case-insensitive substrings.
func NewLexicon(keywords map[string][]string, freeDomains, urgency, grammar, financial []string) *Lexicon {
	l := &Lexicon{
		Keywords:         keywords,
		freeEmailDomains: make(map[string]bool, len(freeDomains)),
	}

	for _, d := range freeDomains {
		l.freeEmailDomains[strings.ToLower(strings.TrimSpace(d))] = true
	}

	for _, p := range urgency {
		l.urgencyPatterns = append(l.urgencyPatterns, regexp.MustCompile(p))
	}
	for _, p := range grammar {
		l.grammarPatterns = append(l.grammarPatterns, regexp.MustCompile(p))
	}
	for _, p := range financial {
		l.financialPatterns = append(l.financialPatterns, regexp.MustCompile(p))
	}

	// Build the keyword matcher over the deduplicated, lowercased term set.
	seen := make(map[string]bool)
	var patterns [][]byte
	for _, kws := range keywords {
		for _, kw := range kws {
			term := strings.ToLower(kw)
			if seen[term] {
				continue
			}
			seen[term] = true
			l.terms = append(l.terms, term)
			patterns = append(patterns, []byte(term))
		}
	}
	l.matcher = ahocorasick.NewMatcher(patterns)

	return l
}

// IsFreeEmailDomain reports whether the given (lowercased) domain belongs to
// a free/public email provider.
func (l *Lexicon) IsFreeEmailDomain(domain string) bool {
	return l.freeEmailDomains[domain]
}
