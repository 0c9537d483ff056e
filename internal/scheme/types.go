// Package scheme implements the C12 SchemeAssessor: a deterministic,
// handbook-grounded MSME loan-scheme eligibility engine. It never calls an
// LLM — every score and blocker message comes from the rule table in
// rules.go, matching spec §9's "avoid hallucination on regulated facts"
// design note for scheme/compliance queries.
package scheme

// Stage is the normalized business-stage facet of a Profile.
type Stage string

const (
	StageUnknown   Stage = "unknown"
	StageStartup   Stage = "startup"
	StageExpansion Stage = "expansion"
)

// Sector is the normalized business-sector facet of a Profile.
type Sector string

const (
	SectorUnknown           Sector = "unknown"
	SectorManufacturing     Sector = "manufacturing"
	SectorTrading           Sector = "trading"
	SectorServices          Sector = "services"
	SectorTraditionalArtisan Sector = "traditional_artisan"
	SectorGreenProject      Sector = "green_project"
	SectorCircularEconomy   Sector = "circular_economy"
)

// LocationType is the normalized urban/rural facet of a Profile.
type LocationType string

const (
	LocationUnknown LocationType = "unknown"
	LocationRural   LocationType = "rural"
	LocationUrban   LocationType = "urban"
)

// Profile is the normalized applicant profile every rule is evaluated
// against. Bool pointers distinguish "confirmed false" from "not yet known"
// (spec §4.11 "unknown is a distinct state from false" edge case) — a nil
// field becomes a "conditions" entry rather than a "blockers" entry.
type Profile struct {
	BusinessStage      Stage
	LoanAmount         *float64
	LoanAmountDisplay  string
	BusinessSector     Sector
	LocationType       LocationType

	IsRural              bool
	IsUrban              bool
	IsWomanEntrepreneur  *bool
	IsDPIITRecognized    *bool
	IsTraditionalArtisan *bool
	IsSHGMember          *bool
	IsWomenLedSHG        *bool
	HasUdyam             *bool
	HasGST               *bool
	HasPAN               *bool
	HasAadhaar           *bool
	HasBankStatements    *bool
	HasBusinessAddressProof *bool
	HasFinancialStatements  *bool
	HasProjectReport        *bool
	HasAuditedFinancials    *bool
	HasPreviousTarunRepayment *bool
	WantsGreenUpgrade            *bool
	WantsCircularEconomyProject  *bool

	ITRYearsFiled *int
	CIBILScore    *int
	DaysPastDue   *int
}

// RawProfile is the caller-supplied, loosely-typed profile input (spec
// §4.11's "profile may be partial or absent") — mirroring the original
// service's `Dict[str, Any]` shape so every known alias key still resolves.
type RawProfile map[string]any

// RequiredFlag is a profile boolean field a scheme rule gates on.
type RequiredFlag struct {
	Field            string
	Label            string
	RequiredValue    bool
	BlockerMessage   string
	UnknownMessage   string
}

// Rule is one entry of the scheme compatibility rule table.
type Rule struct {
	ID             string
	Name           string
	Category       string
	LoanMin        *float64
	LoanMax        *float64
	AllowedStages  []Stage
	AllowedSectors []Sector
	RequiredFlags  []RequiredFlag
	Source         string
	Notes          []string
}

// Status is a scheme assessment's eligibility verdict.
type Status string

const (
	StatusEligible    Status = "eligible"
	StatusConditional Status = "conditional"
	StatusNotEligible Status = "not_eligible"
)

// Assessment is one scheme's evaluated result against a Profile.
type Assessment struct {
	SchemeID   string   `json:"scheme_id"`
	SchemeName string   `json:"scheme_name"`
	Category   string   `json:"category"`
	Status     Status   `json:"status"`
	Score      int      `json:"score"`
	Strengths  []string `json:"strengths"`
	Conditions []string `json:"conditions"`
	Blockers   []string `json:"blockers"`
	Source     string   `json:"source"`
	Notes      []string `json:"notes"`
}

// LegalReadinessStatus is the applicant's documentation-completeness verdict.
type LegalReadinessStatus string

const (
	LegalReady           LegalReadinessStatus = "ready"
	LegalPartiallyReady  LegalReadinessStatus = "partially_ready"
	LegalNotReady        LegalReadinessStatus = "not_ready"
)

// LegalReadiness is the document/compliance-gap assessment (spec §4.11).
type LegalReadiness struct {
	Status               LegalReadinessStatus `json:"status"`
	Score                int                  `json:"score"`
	MissingDocuments      []string            `json:"missing_documents"`
	PendingInformation    []string            `json:"pending_information"`
	CriticalRisks         []string            `json:"critical_risks"`
	NextActions           []string            `json:"next_actions"`
	BorrowerRightsChecks  []string            `json:"borrower_rights_checks"`
}

// SourceMeta identifies the handbook every rule is grounded on.
type SourceMeta struct {
	Title         string `json:"title"`
	Publisher     string `json:"publisher"`
	DocumentPath  string `json:"document_path"`
}

// Report is Assess's full output (spec §4.11's "(profile, compatible[],
// not_compatible[], all[], legal_readiness)").
type Report struct {
	Source               SourceMeta    `json:"source"`
	Profile              Profile       `json:"profile"`
	CompatibleSchemes     []Assessment `json:"compatible_schemes"`
	NotCompatibleSchemes  []Assessment `json:"not_compatible_schemes"`
	AllSchemeAssessments  []Assessment `json:"all_scheme_assessments"`
	LegalReadiness        LegalReadiness `json:"legal_readiness"`
}
