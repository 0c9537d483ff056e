package scheme

import (
	"fmt"
	"sort"
)

// stageSet / sectorSet membership helpers for the rule table's allow-lists.
func stageAllowed(stages []Stage, s Stage) bool {
	for _, v := range stages {
		if v == s {
			return true
		}
	}
	return false
}

func sectorAllowed(sectors []Sector, s Sector) bool {
	for _, v := range sectors {
		if v == s {
			return true
		}
	}
	return false
}

func joinStages(stages []Stage) string {
	out := make([]string, len(stages))
	for i, s := range stages {
		out[i] = string(s)
	}
	return joinComma(out)
}

func joinSectors(sectors []Sector) string {
	out := make([]string, len(sectors))
	for i, s := range sectors {
		out[i] = string(s)
	}
	return joinComma(out)
}

func joinComma(items []string) string {
	out := ""
	for i, s := range items {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// Assess evaluates every rule in the table against a normalized Profile
// and produces the full compatibility Report (spec §4.11, grounded on
// `SchemeCompatibilityService.assess`).
func Assess(message string, raw RawProfile, history []Message) Report {
	profile := NormalizeProfile(message, raw, history)

	matches := make([]Assessment, len(schemeRules))
	for i, rule := range schemeRules {
		matches[i] = evaluateRule(rule, profile)
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })

	var compatible, notCompatible []Assessment
	for _, m := range matches {
		switch m.Status {
		case StatusEligible, StatusConditional:
			compatible = append(compatible, m)
		case StatusNotEligible:
			notCompatible = append(notCompatible, m)
		}
	}
	if len(compatible) > 7 {
		compatible = compatible[:7]
	}
	if len(notCompatible) > 7 {
		notCompatible = notCompatible[:7]
	}

	return Report{
		Source:               sourceMeta,
		Profile:              profile,
		CompatibleSchemes:    compatible,
		NotCompatibleSchemes: notCompatible,
		AllSchemeAssessments: matches,
		LegalReadiness:       evaluateLegalReadiness(profile),
	}
}

func evaluateRule(rule Rule, profile Profile) Assessment {
	var blockers, conditions, strengths []string

	amount := profile.LoanAmount
	stage := profile.BusinessStage
	sector := profile.BusinessSector

	if len(rule.AllowedStages) > 0 {
		if stage != StageUnknown && !stageAllowed(rule.AllowedStages, stage) {
			blockers = append(blockers, fmt.Sprintf("Designed for %s cases.", joinStages(rule.AllowedStages)))
		} else if stageAllowed(rule.AllowedStages, stage) {
			strengths = append(strengths, fmt.Sprintf("Stage fit (%s).", stage))
		}
	}

	if amount == nil {
		conditions = append(conditions, "Loan amount not provided.")
	} else {
		before := len(blockers)
		if rule.LoanMin != nil && *amount < *rule.LoanMin {
			blockers = append(blockers, fmt.Sprintf("Minimum supported amount is %s.", displayAmount(rule.LoanMin)))
		}
		if rule.LoanMax != nil && *amount > *rule.LoanMax {
			blockers = append(blockers, fmt.Sprintf("Exceeds limit of %s.", displayAmount(rule.LoanMax)))
		}
		if len(blockers) == before {
			strengths = append(strengths, "Loan range appears compatible.")
		}
	}

	if len(rule.AllowedSectors) > 0 && sector != SectorUnknown {
		if !sectorAllowed(rule.AllowedSectors, sector) {
			blockers = append(blockers, fmt.Sprintf("Sector '%s' is outside scope (%s).", sector, joinSectors(rule.AllowedSectors)))
		} else {
			strengths = append(strengths, fmt.Sprintf("Sector fit (%s).", sector))
		}
	} else if len(rule.AllowedSectors) > 0 && sector == SectorUnknown {
		conditions = append(conditions, "Business sector not confirmed.")
	}

	for _, req := range rule.RequiredFlags {
		value, known := profile.flag(req.Field)
		switch {
		case !known:
			msg := req.UnknownMessage
			if msg == "" {
				msg = fmt.Sprintf("Confirm %s.", req.Label)
			}
			conditions = append(conditions, msg)
		case value != req.RequiredValue:
			msg := req.BlockerMessage
			if msg == "" {
				msg = fmt.Sprintf("%s is required.", req.Label)
			}
			blockers = append(blockers, msg)
		default:
			strengths = append(strengths, fmt.Sprintf("%s confirmed.", req.Label))
		}
	}

	applySpecialChecks(rule.ID, profile, &blockers, &conditions, &strengths)

	score := 100 - 26*len(blockers) - 7*len(conditions)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	status := StatusEligible
	switch {
	case len(blockers) > 0:
		status = StatusNotEligible
		if score > 45 {
			score = 45
		}
	case len(conditions) > 0:
		status = StatusConditional
	}

	return Assessment{
		SchemeID:   rule.ID,
		SchemeName: rule.Name,
		Category:   rule.Category,
		Status:     status,
		Score:      score,
		Strengths:  strengths,
		Conditions: conditions,
		Blockers:   blockers,
		Source:     rule.Source,
		Notes:      rule.Notes,
	}
}

// applySpecialChecks implements the scheme-specific rules the generic
// allow-list/required-flag evaluation can't express (spec §4.11's
// per-scheme edge cases, grounded on `_apply_special_checks`).
func applySpecialChecks(schemeID string, profile Profile, blockers, conditions, strengths *[]string) {
	amount := profile.LoanAmount
	sector := profile.BusinessSector
	stage := profile.BusinessStage

	switch schemeID {
	case "pmmy":
		if amount != nil && *amount > 1_000_000 {
			repaid := profile.HasPreviousTarunRepayment
			switch {
			case repaid != nil && !*repaid:
				*blockers = append(*blockers, "Tarun Plus needs successful repayment history under Tarun.")
			case repaid == nil:
				*conditions = append(*conditions, "For Tarun Plus, confirm prior successful Tarun repayment.")
			}
		}
	case "pmegp":
		if amount != nil {
			switch {
			case sector == SectorManufacturing && *amount > 5_000_000:
				*blockers = append(*blockers, "PMEGP manufacturing cap is Rs 50 lakh.")
			case sector == SectorServices && *amount > 2_000_000:
				*blockers = append(*blockers, "PMEGP services cap is Rs 20 lakh.")
			case sector == SectorUnknown:
				*conditions = append(*conditions, "Confirm sector to apply PMEGP project-cost caps.")
			}
			if stage == StageExpansion {
				*blockers = append(*blockers, "PMEGP is meant for new micro-enterprise setup.")
			}
		}
	case "nulm":
		if amount != nil {
			isSHG := profile.IsSHGMember != nil && *profile.IsSHGMember
			limit := 200_000.0
			label := "individual"
			if isSHG {
				limit = 1_000_000
				label = "SHG"
			}
			if *amount > limit {
				*blockers = append(*blockers, fmt.Sprintf("NULM amount exceeds %s cap (%s).", label, displayAmount(&limit)))
			}
		}
	case "gst_sahay":
		if stage == StageStartup {
			*conditions = append(*conditions, "GST Sahay is strongest where GST invoice trail and operating history exist.")
		}
	case "psb_59_minutes":
		if amount != nil && *amount < 100_000 {
			*blockers = append(*blockers, "PSB 59 Minutes starts from Rs 1 lakh.")
		}
	case "cgtmse_cgs":
		if amount != nil && *amount <= 1_000_000 {
			*strengths = append(*strengths, "Loan size aligns with collateral-free norm up to Rs 10 lakh for MSE.")
		}
	}
}

// evaluateLegalReadiness scores the applicant's documentation/compliance
// gaps independent of any single scheme (spec §4.11, grounded on
// `_evaluate_legal_readiness`).
func evaluateLegalReadiness(profile Profile) LegalReadiness {
	var missing, pending, criticalRisks, nextActions []string

	check := func(value *bool, label string) {
		switch {
		case value != nil && !*value:
			missing = append(missing, label)
		case value == nil:
			pending = append(pending, label)
		}
	}

	check(profile.HasPAN, "PAN")
	check(profile.HasAadhaar, "Aadhaar")
	check(profile.HasBusinessAddressProof, "Business address proof")
	check(profile.HasBankStatements, "Bank statements (6-12 months)")

	amount := profile.LoanAmount
	stage := profile.BusinessStage

	if stage == StageExpansion {
		check(profile.HasGST, "GST registration and returns")
		check(profile.HasFinancialStatements, "Financial statements (Balance Sheet/P&L/Cash Flow)")
		switch {
		case profile.ITRYearsFiled == nil:
			pending = append(pending, "Income Tax Returns filing history")
		case *profile.ITRYearsFiled < 1:
			missing = append(missing, "Latest Income Tax Returns")
		}
	}

	check(profile.HasUdyam, "Udyam registration")

	if amount != nil && *amount >= 200_000 {
		check(profile.HasProjectReport, "Project report/DPR")
	}
	if amount != nil && *amount >= 2_500_000 {
		check(profile.HasAuditedFinancials, "Audited financial statements (for higher exposure)")
		switch {
		case profile.ITRYearsFiled != nil && *profile.ITRYearsFiled < 3:
			missing = append(missing, "3-year ITR/balance-sheet history for higher exposure")
		case profile.ITRYearsFiled == nil:
			pending = append(pending, "3-year ITR/balance-sheet history for higher exposure")
		}
	}

	if profile.CIBILScore != nil && *profile.CIBILScore < 650 {
		criticalRisks = append(criticalRisks, "Low credit score (<650) may increase cost of credit.")
	}
	if profile.DaysPastDue != nil && *profile.DaysPastDue > 90 {
		criticalRisks = append(criticalRisks, "Repayment overdue >90 days can trigger NPA classification.")
	}

	if len(missing) > 0 {
		nextActions = append(nextActions, "Close mandatory document gaps before applying.")
	}
	if len(pending) > 0 {
		nextActions = append(nextActions, "Collect missing profile/legal data for accurate eligibility matching.")
	}
	nextActions = append(nextActions,
		"Request Key Fact Statement (KFS) with APR and full charge breakup before loan acceptance.",
		"For digital loans, verify RBI-regulated lender app and cooling-off exit terms.",
		"Use lender acknowledgement/CPTS tracking to monitor decision timelines.",
	)

	score := 100 - 18*len(missing) - 6*len(pending) - 18*len(criticalRisks)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	status := LegalReady
	switch {
	case len(missing) > 0 || len(criticalRisks) > 0:
		status = LegalNotReady
	case len(pending) > 0:
		status = LegalPartiallyReady
	}

	return LegalReadiness{
		Status:             status,
		Score:              score,
		MissingDocuments:   missing,
		PendingInformation: pending,
		CriticalRisks:      criticalRisks,
		NextActions:        nextActions,
		BorrowerRightsChecks: []string{
			"Ask for KFS in a language you understand; verify APR includes all charges.",
			"Ensure all fees/penal charges are explicitly disclosed in loan agreement/KFS.",
			"For MSE loans up to Rs 10 lakh, collateral should generally not be demanded as per RBI guidance.",
		},
	}
}

// mandatoryDocuments lists the baseline + stage/amount-driven document set
// (spec §4.11, grounded on `_mandatory_documents_for_profile`).
func mandatoryDocuments(profile Profile) []string {
	docs := append([]string{}, coreDocuments...)
	amount := 0.0
	if profile.LoanAmount != nil {
		amount = *profile.LoanAmount
	}

	if profile.BusinessStage == StageStartup {
		docs = append(docs, "Project report/DPR")
	} else {
		docs = append(docs,
			"GST registration and returns",
			"Income Tax Returns (past 1-3 years)",
			"Financial statements (Balance Sheet/P&L/Cash Flow)",
		)
	}

	if amount >= 2_500_000 {
		docs = append(docs, "Audited financial statements (higher exposure cases)")
	}

	seen := make(map[string]bool, len(docs))
	ordered := make([]string, 0, len(docs))
	for _, d := range docs {
		if seen[d] {
			continue
		}
		seen[d] = true
		ordered = append(ordered, d)
	}
	return ordered
}

// factSnippetForScheme returns the one-line handbook fact a scheme's
// authoritative response cites alongside its eligibility verdict (spec
// §4.11, grounded on `_fact_snippet_for_scheme`).
func factSnippetForScheme(schemeID string) string {
	switch schemeID {
	case "pmegp":
		return "For new micro-enterprises; project cap is Rs 50 lakh (manufacturing) and Rs 20 lakh (services); collateral-free support up to Rs 10 lakh with subsidy-linked structure."
	case "pmmy":
		return "Supports micro enterprises up to Rs 20 lakh (Shishu/Kishor/Tarun/Tarun Plus slabs); loan amount tier should align with category conditions."
	case "psb_59_minutes":
		return "Digital lender-matching portal for MSME credit from Rs 1 lakh to Rs 5 crore."
	case "cgtmse_cgs":
		return "Credit guarantee support for collateral-free MSE lending; handbook indicates coverage bands (typically around 75%-85%, not universal 100%)."
	case "gst_sahay":
		return "Invoice-based financing for GST-registered + Udyam-registered MSEs."
	case "nrlm":
		return "Rural women-led SHG model with collateral-free credit up to Rs 10 lakh."
	case "nulm":
		return "Urban livelihood model: individuals up to Rs 2 lakh, SHGs up to Rs 10 lakh."
	case "mse_gift":
		return "Green technology transition support with 2% interest subvention on eligible term loans up to Rs 2 crore."
	case "mse_spice":
		return "Circular-economy projects up to Rs 50 lakh with capped capital subsidy support."
	case "cgss_startup":
		return "Credit guarantee route for DPIIT-recognized startups through eligible member institutions."
	case "pm_vishwakarma":
		return "Targeted support for traditional artisans/craftspeople with training, toolkit and credit support."
	default:
		return "See handbook-linked scheme notes for eligibility and limits."
	}
}
