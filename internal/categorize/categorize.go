// Package categorize implements the C3 Categorizer + MerchantRules
// component from spec §4.4: merchant-string normalization, the
// rules-then-keywords-then-LLM priority chain, and batch categorization.
package categorize

import (
	"context"
	"regexp"
	"sort"
	"strings"
)

// Rule is the narrow shape categorize needs from a user's merchant rules;
// the Planning store's MerchantRule satisfies this via an adapter at the
// composition root, mirroring the ledger/planning narrow-interface pattern.
type Rule struct {
	Keyword  string
	Category string
}

// RuleSource supplies a user's merchant rules. Declared by this consumer,
// implemented by planning.Store, per the teacher's own narrow-interface
// convention.
type RuleSource interface {
	ListMerchantRules(userID string) ([]Rule, error)
}

// LLMCategorizer is the optional one-shot LLM fallback from spec §4.4
// step 3. A NotConfigured implementation should return ok=false, nil.
type LLMCategorizer interface {
	Categorize(ctx context.Context, description string) (category string, ok bool, err error)
	CategorizeBatch(ctx context.Context, descriptions []string) ([]string, error)
}

// CategoryOther is the fallback category when nothing matches.
const CategoryOther = "Other"

// builtinTable is the keyword table from spec §4.4 step 2, checked in the
// fixed order the spec lists the categories in.
var builtinTable = []struct {
	category string
	keywords []string
}{
	{"Food & Dining", []string{"ZOMATO", "SWIGGY", "RESTAURANT", "CAFE", "DOMINOS", "PIZZA", "FOOD", "DINING", "EATERY", "KITCHEN"}},
	{"Groceries", []string{"BIGBASKET", "GROCERY", "SUPERMARKET", "DMART", "BLINKIT", "ZEPTO", "GROFERS", "RELIANCE FRESH", "KIRANA"}},
	{"Transport", []string{"UBER", "OLA", "RAPIDO", "METRO", "FUEL", "PETROL", "DIESEL", "FASTAG", "TRANSPORT", "IRCTC", "PARKING"}},
	{"Shopping", []string{"AMAZON", "FLIPKART", "MYNTRA", "AJIO", "SHOPPING", "MALL", "STORE", "RETAIL"}},
	{"Utilities", []string{"ELECTRICITY", "WATER BOARD", "GAS BILL", "BROADBAND", "WIFI", "RECHARGE", "BSNL", "AIRTEL", "JIO", "VODAFONE", "UTILITY"}},
	{"Entertainment", []string{"NETFLIX", "PRIME VIDEO", "HOTSTAR", "SPOTIFY", "BOOKMYSHOW", "CINEMA", "MOVIE", "GAMING", "ENTERTAINMENT"}},
	{"Healthcare", []string{"HOSPITAL", "PHARMACY", "CLINIC", "APOLLO", "MEDPLUS", "DIAGNOSTIC", "MEDICAL", "HEALTHCARE", "DOCTOR"}},
	{"Education", []string{"SCHOOL", "COLLEGE", "TUITION", "COURSE", "UDEMY", "COURSERA", "EDUCATION", "UNIVERSITY"}},
	{"Investment", []string{"ZERODHA", "GROWW", "MUTUAL FUND", "SIP", "UPSTOX", "NSE", "BSE", "INVESTMENT", "STOCKS"}},
	{"Insurance", []string{"LIC", "INSURANCE", "POLICYBAZAAR", "PREMIUM"}},
	{"EMI & Loans", []string{"EMI", "LOAN", "NBFC", "HDFC LOAN", "BAJAJ FINANCE", "MUDRA"}},
	{"Salary & Income", []string{"SALARY", "PAYROLL", "WAGES", "INCOME"}},
	{"Transfer", []string{"TRANSFER", "NEFT", "IMPS", "RTGS", "UPI TRANSFER"}},
	{"Rent & Housing", []string{"RENT", "HOUSING", "MAINTENANCE", "SOCIETY"}},
	{"Personal Care", []string{"SALON", "SPA", "GYM", "FITNESS", "PERSONAL CARE", "COSMETICS"}},
}

var leadingTokenRe = regexp.MustCompile(`^(UPI|POS|NEFT|IMPS|ATM|VISA|MSTR)[\s:*\-/]+`)
var trailingRefRe = regexp.MustCompile(`[*\-][A-Za-z0-9]{5,}$`)
var suffixRe = regexp.MustCompile(`\s+(PRIVATE LIMITED|PVT LTD|LTD|INDIA)$`)
var separatorRe = regexp.MustCompile(`[-_/*]`)

// Normalize implements spec §4.4's 5-step merchant-string normalization.
func Normalize(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = leadingTokenRe.ReplaceAllString(s, "")
	s = trailingRefRe.ReplaceAllString(s, "")
	s = suffixRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, " ")
	s = strings.Join(strings.Fields(s), " ")

	tokens := strings.Fields(s)
	if len(tokens) > 3 {
		tokens = tokens[:3]
	}
	return strings.Join(tokens, " ")
}

// Result is the outcome of categorizing one description.
type Result struct {
	Category string
	Source   string // "rule" | "builtin" | "llm" | "other"
}

// Categorize runs the priority chain from spec §4.4: user rules ordered
// by keyword length descending, then the built-in keyword table, then an
// optional LLM one-shot fallback, else CategoryOther.
func Categorize(ctx context.Context, description string, rules RuleSource, userID string, llm LLMCategorizer) (Result, error) {
	normalized := Normalize(description)

	if rules != nil {
		userRules, err := rules.ListMerchantRules(userID)
		if err != nil {
			return Result{}, err
		}
		sort.SliceStable(userRules, func(i, j int) bool {
			return len(userRules[i].Keyword) > len(userRules[j].Keyword)
		})
		for _, r := range userRules {
			if strings.Contains(normalized, strings.ToUpper(r.Keyword)) {
				return Result{Category: r.Category, Source: "rule"}, nil
			}
		}
	}

	for _, entry := range builtinTable {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return Result{Category: entry.category, Source: "builtin"}, nil
			}
		}
	}

	if llm != nil {
		category, ok, err := llm.Categorize(ctx, description)
		if err == nil && ok && category != "" {
			return Result{Category: category, Source: "llm"}, nil
		}
	}

	return Result{Category: CategoryOther, Source: "other"}, nil
}

// BatchItem pairs an input description with its resolved category.
type BatchItem struct {
	Description string
	Category    string
	Source      string
}

// CategorizeBatch applies the rule/keyword chain to every item, then sends
// every unresolved ("Other") item in one LLM batch prompt, preserving
// input order (spec §4.4 "Batch mode").
func CategorizeBatch(ctx context.Context, descriptions []string, rules RuleSource, userID string, llm LLMCategorizer) ([]BatchItem, error) {
	out := make([]BatchItem, len(descriptions))
	var otherIdx []int

	for i, desc := range descriptions {
		res, err := Categorize(ctx, desc, rules, userID, nil)
		if err != nil {
			return nil, err
		}
		out[i] = BatchItem{Description: desc, Category: res.Category, Source: res.Source}
		if res.Source == "other" {
			otherIdx = append(otherIdx, i)
		}
	}

	if llm == nil || len(otherIdx) == 0 {
		return out, nil
	}

	pending := make([]string, len(otherIdx))
	for i, idx := range otherIdx {
		pending[i] = descriptions[idx]
	}
	categories, err := llm.CategorizeBatch(ctx, pending)
	if err != nil || len(categories) != len(pending) {
		return out, nil // LLM batch failure: keep the Other fallback, never error the whole batch
	}
	for i, idx := range otherIdx {
		if categories[i] != "" {
			out[idx].Category = categories[i]
			out[idx].Source = "llm"
		}
	}
	return out, nil
}
