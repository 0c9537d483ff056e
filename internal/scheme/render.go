package scheme

import (
	"fmt"
	"strings"
)

// HandbookMatch is one retrieved handbook passage the authoritative
// response cites alongside the deterministic rule-table verdicts, matching
// the knowledge package's search-result shape at this package's boundary
// so scheme stays independent of internal/knowledge.
type HandbookMatch struct {
	Section string
	Title   string
}

func capAssessments(items []Assessment, n int) []Assessment {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func capStrings(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

// BuildPromptContext renders the hard-constraint block an LLM call is
// grounded on before answering a scheme/compliance question (spec §4.11,
// grounded on `build_prompt_context`).
func BuildPromptContext(report Report) string {
	top := capAssessments(report.CompatibleSchemes, 3)
	legal := report.LegalReadiness
	missingDocs := capStrings(legal.MissingDocuments, 4)

	var sb strings.Builder
	sb.WriteString("PDF-GROUNDED MSME COMPATIBILITY CONTEXT (use as hard constraints):\n")
	fmt.Fprintf(&sb, "- Source: %s (%s).\n", sourceMeta.Title, sourceMeta.Publisher)
	fmt.Fprintf(&sb, "- Inferred stage: %s.\n", report.Profile.BusinessStage)
	fmt.Fprintf(&sb, "- Inferred loan amount: %s.\n", report.Profile.LoanAmountDisplay)
	fmt.Fprintf(&sb, "- Inferred sector: %s.\n", report.Profile.BusinessSector)
	sb.WriteString("Top scheme compatibility signals:\n")

	if len(top) > 0 {
		for _, s := range top {
			fmt.Fprintf(&sb, "- %s: %s (score %d/100).\n", s.SchemeName, strings.ToUpper(string(s.Status)), s.Score)
			switch {
			case len(s.Blockers) > 0:
				fmt.Fprintf(&sb, "  Blockers: %s.\n", strings.Join(capStrings(s.Blockers, 2), ", "))
			case len(s.Conditions) > 0:
				fmt.Fprintf(&sb, "  Conditions: %s.\n", strings.Join(capStrings(s.Conditions, 2), ", "))
			}
		}
	} else {
		sb.WriteString("- No clear scheme fit yet; collect missing profile details first.\n")
	}

	fmt.Fprintf(&sb, "Legal readiness status: %s (score %d/100).\n", legal.Status, legal.Score)
	if len(missingDocs) > 0 {
		fmt.Fprintf(&sb, "Critical document gaps: %s.\n", strings.Join(missingDocs, ", "))
	}
	sb.WriteString("Do not claim legal eligibility if blockers exist; present conditional steps and document gaps explicitly.")
	return sb.String()
}

// RenderMarkdownSummary renders a compact markdown scheme-check panel for
// chat-surface display (spec §4.11, grounded on `render_markdown_summary`).
func RenderMarkdownSummary(report Report) string {
	profile := report.Profile
	compatible := capAssessments(report.CompatibleSchemes, 4)
	notCompatible := capAssessments(report.NotCompatibleSchemes, 3)
	legal := report.LegalReadiness

	var lines []string
	lines = append(lines,
		"### PDF-grounded Scheme Compatibility Check",
		fmt.Sprintf("- **Business stage:** %s", profile.BusinessStage),
		fmt.Sprintf("- **Loan ask:** %s", profile.LoanAmountDisplay),
		fmt.Sprintf("- **Sector:** %s", profile.BusinessSector),
		"",
		"**Most compatible schemes/loans:**",
	)

	if len(compatible) > 0 {
		for _, item := range compatible {
			line := fmt.Sprintf("- **%s** — %s (%d/100)", item.SchemeName, titleCase(strings.ReplaceAll(string(item.Status), "_", " ")), item.Score)
			if len(item.Conditions) > 0 {
				line += fmt.Sprintf(" | Conditions: %s", strings.Join(capStrings(item.Conditions, 2), ", "))
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "- No strong match yet. Provide profile details for accurate eligibility checks.")
	}

	if len(notCompatible) > 0 {
		lines = append(lines, "", "**Currently blocked schemes:**")
		for _, item := range notCompatible {
			reason := "Eligibility mismatch"
			if len(item.Blockers) > 0 {
				reason = strings.Join(capStrings(item.Blockers, 2), ", ")
			}
			lines = append(lines, fmt.Sprintf("- **%s** — %s", item.SchemeName, reason))
		}
	}

	lines = append(lines, "", fmt.Sprintf("**Legal readiness:** %s (%d/100)", legal.Status, legal.Score))

	if len(legal.MissingDocuments) > 0 {
		lines = append(lines, fmt.Sprintf("- Missing documents: %s", strings.Join(capStrings(legal.MissingDocuments, 6), ", ")))
	}
	if len(legal.CriticalRisks) > 0 {
		lines = append(lines, fmt.Sprintf("- Critical risks: %s", strings.Join(capStrings(legal.CriticalRisks, 4), ", ")))
	}
	if len(legal.NextActions) > 0 {
		lines = append(lines, fmt.Sprintf("- Next actions: %s", strings.Join(capStrings(legal.NextActions, 4), " | ")))
	}

	lines = append(lines,
		"- Borrower-right check: ask lender for **KFS + APR + all charges disclosure** before sanction.",
		"- Compliance note: NPA risk begins if dues remain unpaid for **more than 90 days**.",
	)
	return strings.Join(lines, "\n")
}

// titleCase upper-cases only the first letter of each word, matching
// Python's str.title() closely enough for these short status labels.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// RenderAuthoritativeResponse renders the deterministic, handbook-grounded
// answer spec §4.11 requires for scheme/compliance queries so the response
// "avoids model hallucination by using only local rules + local RAG
// snippets" (grounded on `render_authoritative_response`).
func RenderAuthoritativeResponse(report Report, ragMatches []HandbookMatch) string {
	profile := report.Profile
	compatible := capAssessments(report.CompatibleSchemes, 4)
	blocked := capAssessments(report.NotCompatibleSchemes, 3)
	legal := report.LegalReadiness
	if len(ragMatches) > 4 {
		ragMatches = ragMatches[:4]
	}

	var lines []string
	lines = append(lines,
		"## Authoritative MSME Scheme & Legal Check (Handbook-grounded)",
		fmt.Sprintf("- Business stage: **%s**", profile.BusinessStage),
		fmt.Sprintf("- Loan ask: **%s**", profile.LoanAmountDisplay),
		fmt.Sprintf("- Sector: **%s**", profile.BusinessSector),
		"",
		"### Best-fit options (deterministic)",
	)

	if len(compatible) > 0 {
		for _, item := range compatible {
			facts := factSnippetForScheme(item.SchemeID)
			conditionText := ""
			if len(item.Conditions) > 0 {
				conditionText = fmt.Sprintf(" | Conditions: %s", strings.Join(capStrings(item.Conditions, 2), ", "))
			}
			lines = append(lines, fmt.Sprintf("- **%s** (%s, %d/100): %s%s",
				item.SchemeName, titleCase(strings.ReplaceAll(string(item.Status), "_", " ")), item.Score, facts, conditionText))
		}
	} else {
		lines = append(lines, "- No clear eligible scheme with current profile details.")
	}

	if len(blocked) > 0 {
		lines = append(lines, "", "### Not currently eligible")
		for _, item := range blocked {
			reason := "Eligibility mismatch"
			if len(item.Blockers) > 0 {
				reason = strings.Join(capStrings(item.Blockers, 2), ", ")
			}
			lines = append(lines, fmt.Sprintf("- **%s**: %s", item.SchemeName, reason))
		}
	}

	lines = append(lines, "", fmt.Sprintf("### Legal readiness: **%s** (%d/100)", legal.Status, legal.Score))

	mandatoryDocs := mandatoryDocuments(profile)
	lines = append(lines, fmt.Sprintf("- Mandatory documents: %s", strings.Join(mandatoryDocs, ", ")))

	if len(legal.MissingDocuments) > 0 {
		lines = append(lines, fmt.Sprintf("- Missing right now: %s", strings.Join(capStrings(legal.MissingDocuments, 8), ", ")))
	}
	if len(legal.PendingInformation) > 0 {
		lines = append(lines, fmt.Sprintf("- Still to confirm: %s", strings.Join(capStrings(legal.PendingInformation, 6), ", ")))
	}

	lines = append(lines,
		"- Borrower rights: Ask for **KFS + APR + all charge disclosures** before signing.",
		"- Collateral norm: For MSE loans up to **Rs 10 lakh**, collateral should generally not be demanded as per RBI guidance.",
		"- Default risk: Delays beyond **90 days** can trigger NPA classification.",
	)

	if len(ragMatches) > 0 {
		lines = append(lines, "", "### Handbook references used")
		for _, m := range ragMatches {
			section := m.Section
			if section == "" {
				section = "Section"
			}
			title := m.Title
			if title == "" {
				title = "Reference"
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", section, title))
		}
	}

	lines = append(lines,
		"",
		"### Next actions",
		"- Complete missing registrations/documents before applying.",
		"- Submit DPR/project report with realistic financial assumptions.",
		"- Apply via scheme portal/bank and request application acknowledgement/CPTS tracking.",
	)
	return strings.Join(lines, "\n")
}
