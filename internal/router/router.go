// Package router implements the C10 Router: a first-match-wins query
// classifier (spec §4.10) that picks which of the Agent's six dispatch
// paths (spec §4.6 step 2) handles a given user query.
package router

import (
	"regexp"
	"strings"
)

// Label is one of the six dispatch paths the Agent understands.
type Label string

const (
	LabelGovAPI         Label = "GOV_API"
	LabelTransaction    Label = "TRANSACTION"
	LabelStaticKB       Label = "STATIC_KB"
	LabelWebSearch      Label = "WEB_SEARCH"
	LabelHeavyReasoning Label = "HEAVY_REASONING"
	LabelSimple         Label = "SIMPLE"
)

// Config is the small per-classification object the Agent uses to tune
// the downstream LLM call (spec §4.10: "a small config object e.g.
// max_tokens").
type Config struct {
	MaxTokens int `json:"max_tokens"`
}

// Classification is the Router's output.
type Classification struct {
	Label  Label  `json:"label"`
	Config Config `json:"config"`
}

const (
	defaultMaxTokens    = 1024
	heavyReasoningTokens = 2048
	transactionTokens    = 512
	longQueryTokenCount  = 40
)

var (
	panToken   = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
	gstinToken = regexp.MustCompile(`\b[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]\b`)

	actionVerb     = regexp.MustCompile(`(?i)\b(create|add|set|schedule|record|log)\b`)
	actionNoun     = regexp.MustCompile(`(?i)\b(budget|goal|payment|transaction|expense)\b`)
	monetaryAmount = regexp.MustCompile(`(?i)(₹|rs\.?|inr)\s?[0-9][0-9,]*|\b[0-9][0-9,]*\s?(rupees|rs)\b`)

	webSearchKeywords = []string{"buy", "price", "shop", "news", "latest", "scheme", "hotels near", "hotel near"}
	reasoningMarkers  = []string{"why", "compare", "analyze", "should i"}
)

// Router holds the Static KB keyword set it was configured with so rule 3
// can match without depending on the knowledge package directly.
type Router struct {
	staticKBKeywords []string
}

// New builds a Router. staticKBKeywords should be the tax/regulation
// terms the Static KB corpus is indexed under (spec §4.10 rule 3).
func New(staticKBKeywords []string) *Router {
	return &Router{staticKBKeywords: staticKBKeywords}
}

// defaultStaticKBKeywords covers the Indian personal-finance regulation
// vocabulary the knowledge corpus is expected to carry (tax/GST/Mudra
// documents per spec §4.8's sample corpus shape).
var defaultStaticKBKeywords = []string{
	"tax", "income tax", "gst", "gstin", "itr", "tds", "slab", "deduction",
	"regulation", "compliance", "epf", "ppf", "nps", "mudra", "msme", "udyam",
}

// DefaultStaticKBKeywords returns the builtin keyword set, for callers
// wiring a Router over the builtin knowledge seed corpus without their own
// keyword list.
func DefaultStaticKBKeywords() []string {
	out := make([]string, len(defaultStaticKBKeywords))
	copy(out, defaultStaticKBKeywords)
	return out
}

// ExtractGovID returns the government-ID token found in a GOV_API query
// (spec §4.6 step 2: "extract a PAN/GSTIN/etc. token by regex; if present,
// call the matching verify tool"), plus which verify tool it maps to.
func ExtractGovID(query string) (tool, token string, found bool) {
	if m := panToken.FindString(query); m != "" {
		return "gov_verify_pan", m, true
	}
	if m := gstinToken.FindString(query); m != "" {
		return "gov_verify_gstin", m, true
	}
	return "", "", false
}

// Classify labels a query per spec §4.10's first-match-wins rule sketch.
func (r *Router) Classify(query string) Classification {
	q := strings.TrimSpace(query)
	lower := strings.ToLower(q)

	if panToken.MatchString(q) || gstinToken.MatchString(q) {
		return Classification{Label: LabelGovAPI, Config: Config{MaxTokens: defaultMaxTokens}}
	}

	if (actionVerb.MatchString(q) && actionNoun.MatchString(q)) ||
		(monetaryAmount.MatchString(q) && actionVerb.MatchString(q)) {
		return Classification{Label: LabelTransaction, Config: Config{MaxTokens: transactionTokens}}
	}

	keywords := r.staticKBKeywords
	if len(keywords) == 0 {
		keywords = defaultStaticKBKeywords
	}
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return Classification{Label: LabelStaticKB, Config: Config{MaxTokens: defaultMaxTokens}}
		}
	}

	for _, kw := range webSearchKeywords {
		if strings.Contains(lower, kw) {
			return Classification{Label: LabelWebSearch, Config: Config{MaxTokens: defaultMaxTokens}}
		}
	}

	if len(strings.Fields(q)) > longQueryTokenCount {
		return Classification{Label: LabelHeavyReasoning, Config: Config{MaxTokens: heavyReasoningTokens}}
	}
	for _, marker := range reasoningMarkers {
		if strings.Contains(lower, marker) {
			return Classification{Label: LabelHeavyReasoning, Config: Config{MaxTokens: heavyReasoningTokens}}
		}
	}

	return Classification{Label: LabelSimple, Config: Config{MaxTokens: defaultMaxTokens}}
}
