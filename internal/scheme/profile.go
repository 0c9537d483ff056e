package scheme

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)

	boolTrueWords  = map[string]bool{"true": true, "yes": true, "y": true, "1": true, "available": true, "done": true, "completed": true, "valid": true}
	boolFalseWords = map[string]bool{"false": true, "no": true, "n": true, "0": true, "missing": true, "not_available": true, "not done": true, "pending": true}

	keywordsStartup   = []string{"start", "startup", "new venture", "greenfield", "launch", "set up"}
	keywordsExpansion = []string{"expand", "expansion", "scale", "existing business", "working capital", "grow"}

	amountRe = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s*(crore|cr|lakh|lac|lk|thousand|k)?`)
	amountWithCtxRe = regexp.MustCompile(`(?:₹|rs\.?|inr)?\s*([0-9]+(?:,[0-9]{3})*(?:\.[0-9]+)?)\s*(crore|cr|lakh|lac|lk|thousand|k)?`)
	amountCtxKeywords = []string{"loan", "fund", "capital", "project", "investment", "budget"}
)

// aliasKeys mirrors the original service's `_pick` lookup order: the first
// present, non-empty key in raw wins.
var aliasKeys = map[string][]string{
	"loan_amount":               {"loan_amount", "capital_required", "funding_needed", "project_cost", "budget"},
	"business_stage":            {"business_stage", "stage", "venture_stage"},
	"business_sector":           {"business_sector", "sector", "industry", "activity"},
	"location_type":             {"location_type", "area_type", "location"},
	"is_woman_entrepreneur":     {"is_woman_entrepreneur", "woman_entrepreneur", "is_woman"},
	"is_dpiit_recognized":       {"is_dpiit_recognized", "dpiit_recognized", "has_dpiit"},
	"is_traditional_artisan":    {"is_traditional_artisan", "traditional_artisan", "is_artisan"},
	"is_shg_member":             {"is_shg_member", "shg_member"},
	"is_women_led_shg":          {"is_women_led_shg", "women_led_shg"},
	"has_udyam":                 {"has_udyam", "udyam_registered", "udyam"},
	"has_gst":                   {"has_gst", "gst_registered", "gstin"},
	"has_pan":                   {"has_pan", "pan"},
	"has_aadhaar":               {"has_aadhaar", "aadhaar", "aadhar"},
	"has_bank_statements":       {"has_bank_statements", "bank_statements"},
	"has_business_address_proof": {"has_business_address_proof", "business_address_proof"},
	"has_financial_statements":  {"has_financial_statements", "financial_statements"},
	"has_project_report":        {"has_project_report", "dpr_ready"},
	"has_audited_financials":    {"has_audited_financials", "audited_financials"},
	"has_previous_tarun_repayment": {"has_previous_tarun_repayment", "tarun_repaid"},
	"wants_green_upgrade":          {"wants_green_upgrade", "green_upgrade"},
	"wants_circular_economy_project": {"wants_circular_economy_project", "circular_economy_project"},
	"itr_years_filed": {"itr_years_filed", "itr_years"},
	"cibil_score":     {"cibil_score", "credit_score"},
	"days_past_due":   {"days_past_due", "dpd"},
}

func pick(raw RawProfile, key string) any {
	for _, k := range aliasKeys[key] {
		if v, ok := raw[k]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

func toBool(v any) *bool {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case bool:
		return &t
	case int:
		b := t != 0
		return &b
	case float64:
		b := t != 0
		return &b
	case string:
		text := strings.TrimSpace(t)
		low := strings.ToLower(text)
		if boolTrueWords[low] {
			b := true
			return &b
		}
		if boolFalseWords[low] {
			b := false
			return &b
		}
		if panPattern.MatchString(strings.ToUpper(text)) || isDigits(text) {
			b := true
			return &b
		}
		if gstPattern.MatchString(strings.ToUpper(text)) {
			b := true
			return &b
		}
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func toInt(v any) *int {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case int:
		return &t
	case float64:
		n := int(t)
		return &n
	case string:
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, t)
		if digits == "" {
			return nil
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return nil
		}
		return &n
	}
	return nil
}

func toAmount(v any) *float64 {
	if v == nil {
		return nil
	}
	switch t := v.(type) {
	case int:
		f := float64(t)
		return &f
	case float64:
		return &t
	case string:
		return parseAmountText(t)
	}
	return nil
}

func parseAmountText(text string) *float64 {
	raw := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(text), ",", ""))
	if raw == "" {
		return nil
	}
	m := amountRe.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	value = applyUnit(value, m[2])
	return &value
}

func applyUnit(value float64, unit string) float64 {
	switch unit {
	case "crore", "cr":
		return value * 10_000_000
	case "lakh", "lac", "lk":
		return value * 100_000
	case "thousand", "k":
		return value * 1_000
	default:
		return value
	}
}

func extractAmountFromText(text string) *float64 {
	lower := strings.ToLower(text)
	matches := amountWithCtxRe.FindAllStringSubmatchIndex(text, -1)
	var best *float64
	var bestVal float64
	for _, idx := range matches {
		valueText := text[idx[2]:idx[3]]
		unit := ""
		if idx[4] >= 0 {
			unit = text[idx[4]:idx[5]]
		}
		start := idx[0] - 24
		if start < 0 {
			start = 0
		}
		end := idx[1] + 24
		if end > len(lower) {
			end = len(lower)
		}
		context := lower[start:end]
		hasCtx := false
		for _, k := range amountCtxKeywords {
			if strings.Contains(context, k) {
				hasCtx = true
				break
			}
		}
		if !hasCtx {
			continue
		}
		base, err := strconv.ParseFloat(strings.ReplaceAll(valueText, ",", ""), 64)
		if err != nil {
			continue
		}
		val := applyUnit(base, unit)
		if best == nil || val > bestVal {
			v := val
			best = &v
			bestVal = val
		}
	}
	return best
}

func normalizeStage(v any) Stage {
	if v == nil {
		return StageUnknown
	}
	low := strings.ToLower(strings.TrimSpace(fmt.Sprint(v)))
	if containsAny(low, "expand", "expansion", "existing", "scale") {
		return StageExpansion
	}
	if containsAny(low, "startup", "start", "new", "greenfield", "launch") {
		return StageStartup
	}
	return StageUnknown
}

func inferStageFromText(text string) Stage {
	low := strings.ToLower(text)
	if containsAny(low, keywordsExpansion...) {
		return StageExpansion
	}
	if containsAny(low, keywordsStartup...) {
		return StageStartup
	}
	return StageStartup
}

func normalizeSector(v any) Sector {
	if v == nil {
		return SectorUnknown
	}
	return inferSectorFromText(fmt.Sprint(v))
}

func inferSectorFromText(text string) Sector {
	low := strings.ToLower(text)
	switch {
	case containsAny(low, "circular", "e-waste", "recycl", "waste management", "plastic", "rubber"):
		return SectorCircularEconomy
	case containsAny(low, "green", "clean energy", "solar", "energy efficiency"):
		return SectorGreenProject
	case containsAny(low, "artisan", "craft", "vishwakarma", "weaver", "carpenter"):
		return SectorTraditionalArtisan
	case containsAny(low, "manufactur", "factory", "plant", "production", "machinery"):
		return SectorManufacturing
	case containsAny(low, "trade", "trading", "retail", "wholesale", "store", "shop"):
		return SectorTrading
	case containsAny(low, "service", "consult", "agency", "clinic", "salon", "restaurant", "food"):
		return SectorServices
	default:
		return SectorUnknown
	}
}

func normalizeLocationType(v any) LocationType {
	if v == nil {
		return LocationUnknown
	}
	return inferLocationTypeFromText(fmt.Sprint(v))
}

func inferLocationTypeFromText(text string) LocationType {
	low := strings.ToLower(text)
	switch {
	case containsAny(low, "rural", "village", "gram", "panchayat"):
		return LocationRural
	case containsAny(low, "urban", "city", "municipal", "metro"):
		return LocationUrban
	default:
		return LocationUnknown
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// displayAmount renders a rupee amount the way the handbook citations do
// (crore/lakh bands) for profile summaries and blocker messages.
func displayAmount(amount *float64) string {
	if amount == nil {
		return "Not provided"
	}
	v := *amount
	switch {
	case v >= 10_000_000:
		return fmt.Sprintf("Rs %.2f crore", v/10_000_000)
	case v >= 100_000:
		return fmt.Sprintf("Rs %.2f lakh", v/100_000)
	default:
		return fmt.Sprintf("Rs %s", formatThousands(v))
	}
}

func formatThousands(v float64) string {
	n := int64(v)
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}

// Message is one turn of conversation history normalizeProfile folds into
// its free-text inference (spec §4.11's "conversation_history[-6:]").
type Message struct {
	Content string
}

// NormalizeProfile builds a Profile from free text plus an optional raw
// profile map, inferring any facet the raw map doesn't answer directly from
// text (spec §4.11, grounded on `_normalize_profile`).
func NormalizeProfile(message string, raw RawProfile, history []Message) Profile {
	if raw == nil {
		raw = RawProfile{}
	}
	combined := strings.TrimSpace(message)
	if len(history) > 0 {
		start := 0
		if len(history) > 6 {
			start = len(history) - 6
		}
		var parts []string
		for _, m := range history[start:] {
			if c := strings.TrimSpace(m.Content); c != "" {
				parts = append(parts, c)
			}
		}
		if len(parts) > 0 {
			combined = strings.TrimSpace(strings.Join(parts, " ") + "\n" + combined)
		}
	}

	loanAmount := toAmount(pick(raw, "loan_amount"))
	if loanAmount == nil {
		loanAmount = extractAmountFromText(combined)
	}

	stage := normalizeStage(pick(raw, "business_stage"))
	if stage == StageUnknown {
		stage = inferStageFromText(combined)
	}

	sector := normalizeSector(pick(raw, "business_sector"))
	if sector == SectorUnknown {
		sector = inferSectorFromText(combined)
	}

	location := normalizeLocationType(pick(raw, "location_type"))
	if location == LocationUnknown {
		location = inferLocationTypeFromText(combined)
	}

	p := Profile{
		BusinessStage:     stage,
		LoanAmount:        loanAmount,
		LoanAmountDisplay: displayAmount(loanAmount),
		BusinessSector:    sector,
		LocationType:      location,
		IsRural:           location == LocationRural,
		IsUrban:           location == LocationUrban,

		IsWomanEntrepreneur:         toBool(pick(raw, "is_woman_entrepreneur")),
		IsDPIITRecognized:           toBool(pick(raw, "is_dpiit_recognized")),
		IsTraditionalArtisan:        toBool(pick(raw, "is_traditional_artisan")),
		IsSHGMember:                 toBool(pick(raw, "is_shg_member")),
		IsWomenLedSHG:               toBool(pick(raw, "is_women_led_shg")),
		HasUdyam:                    toBool(pick(raw, "has_udyam")),
		HasGST:                      toBool(pick(raw, "has_gst")),
		HasPAN:                      toBool(pick(raw, "has_pan")),
		HasAadhaar:                  toBool(pick(raw, "has_aadhaar")),
		HasBankStatements:           toBool(pick(raw, "has_bank_statements")),
		HasBusinessAddressProof:     toBool(pick(raw, "has_business_address_proof")),
		HasFinancialStatements:      toBool(pick(raw, "has_financial_statements")),
		HasProjectReport:            toBool(pick(raw, "has_project_report")),
		HasAuditedFinancials:        toBool(pick(raw, "has_audited_financials")),
		HasPreviousTarunRepayment:   toBool(pick(raw, "has_previous_tarun_repayment")),
		WantsGreenUpgrade:           toBool(pick(raw, "wants_green_upgrade")),
		WantsCircularEconomyProject: toBool(pick(raw, "wants_circular_economy_project")),

		ITRYearsFiled: toInt(pick(raw, "itr_years_filed")),
		CIBILScore:    toInt(pick(raw, "cibil_score")),
		DaysPastDue:   toInt(pick(raw, "days_past_due")),
	}

	low := strings.ToLower(combined)
	if p.IsTraditionalArtisan == nil && strings.Contains(low, "vishwakarma") {
		p.IsTraditionalArtisan = boolPtr(true)
	}
	if p.IsSHGMember == nil && strings.Contains(low, "shg") {
		p.IsSHGMember = boolPtr(true)
	}
	if p.WantsGreenUpgrade == nil && containsAny(low, "green", "solar", "clean energy", "energy efficiency") {
		p.WantsGreenUpgrade = boolPtr(true)
	}
	if p.WantsCircularEconomyProject == nil && containsAny(low, "circular", "recycle", "e-waste", "waste management", "plastic") {
		p.WantsCircularEconomyProject = boolPtr(true)
	}

	return p
}

func boolPtr(b bool) *bool { return &b }

// flag resolves a RequiredFlag's generic field name against the concrete
// Profile fields, returning (value, known).
func (p Profile) flag(field string) (bool, bool) {
	switch field {
	case "is_rural":
		return p.IsRural, true
	case "is_urban":
		return p.IsUrban, true
	case "is_woman_entrepreneur":
		return deref(p.IsWomanEntrepreneur)
	case "is_dpiit_recognized":
		return deref(p.IsDPIITRecognized)
	case "is_traditional_artisan":
		return deref(p.IsTraditionalArtisan)
	case "is_shg_member":
		return deref(p.IsSHGMember)
	case "is_women_led_shg":
		return deref(p.IsWomenLedSHG)
	case "has_udyam":
		return deref(p.HasUdyam)
	case "has_gst":
		return deref(p.HasGST)
	case "has_pan":
		return deref(p.HasPAN)
	case "has_aadhaar":
		return deref(p.HasAadhaar)
	case "has_bank_statements":
		return deref(p.HasBankStatements)
	case "has_business_address_proof":
		return deref(p.HasBusinessAddressProof)
	case "has_financial_statements":
		return deref(p.HasFinancialStatements)
	case "has_project_report":
		return deref(p.HasProjectReport)
	case "has_audited_financials":
		return deref(p.HasAuditedFinancials)
	case "has_previous_tarun_repayment":
		return deref(p.HasPreviousTarunRepayment)
	case "wants_green_upgrade":
		return deref(p.WantsGreenUpgrade)
	case "wants_circular_economy_project":
		return deref(p.WantsCircularEconomyProject)
	default:
		return false, false
	}
}

func deref(b *bool) (bool, bool) {
	if b == nil {
		return false, false
	}
	return *b, true
}
