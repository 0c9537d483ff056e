package scheme

func amt(v float64) *float64 { return &v }

// sourceMeta names the handbook every Rule in schemeRules cites (spec
// §4.11, grounded on the original service's SOURCE_META).
var sourceMeta = SourceMeta{
	Title:        "Know Your Lender, Grow Your Business",
	Publisher:    "Ministry of MSME, Government of India",
	DocumentPath: "handbook://msme/know-your-lender-grow-your-business",
}

// coreDocuments is the baseline document set every scheme application needs
// regardless of stage or sector.
var coreDocuments = []string{
	"PAN",
	"Aadhaar",
	"Business address proof",
	"Bank statements (6-12 months)",
	"Udyam registration",
}

// schemeRules is the handbook-grounded eligibility table. Criteria are
// extracted from Sections 1, 9 and 10 and Annexure-B of the source handbook.
var schemeRules = []Rule{
	{
		ID:            "pmmy",
		Name:          "Pradhan Mantri MUDRA Yojana (PMMY)",
		Category:      "scheme",
		LoanMin:       amt(0),
		LoanMax:       amt(2_000_000),
		AllowedStages: []Stage{StageStartup, StageExpansion},
		AllowedSectors: []Sector{SectorManufacturing, SectorTrading, SectorServices},
		Source:        "Section 10.1 (Page 35)",
		Notes: []string{
			"Shishu up to Rs 50,000; Kishor above Rs 50,000 up to Rs 5 lakh; Tarun above Rs 5 lakh up to Rs 10 lakh; Tarun Plus above Rs 10 lakh up to Rs 20 lakh.",
			"PMMY guarantees up to Rs 20 lakh under CGFMU.",
		},
	},
	{
		ID:             "pmegp",
		Name:           "Prime Minister Employment Generation Programme (PMEGP)",
		Category:       "scheme",
		AllowedStages:  []Stage{StageStartup},
		AllowedSectors: []Sector{SectorManufacturing, SectorServices},
		Source:         "Section 10.2 (Page 35)",
		Notes: []string{
			"Credit-linked subsidy for new micro-enterprises.",
			"Project cap: Rs 50 lakh (manufacturing), Rs 20 lakh (services).",
			"No collateral required for loans up to Rs 10 lakh.",
			"10-day EDP training is mandatory.",
		},
	},
	{
		ID:            "pm_vishwakarma",
		Name:          "PM Vishwakarma Scheme",
		Category:      "scheme",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		RequiredFlags: []RequiredFlag{{
			Field:          "is_traditional_artisan",
			Label:          "Traditional artisan/craftsperson status",
			RequiredValue:  true,
			BlockerMessage: "Scheme is for traditional artisans/craftspeople.",
			UnknownMessage: "Confirm whether the applicant is a traditional artisan/craftsperson.",
		}},
		Source: "Section 10.3 (Pages 35-36)",
		Notes: []string{
			"Includes skill training, toolkit incentive and collateral-free credit support in two tranches.",
			"Provides PM Vishwakarma certificate/ID and Udyam formalization support.",
		},
	},
	{
		ID:            "nulm",
		Name:          "National Urban Livelihoods Mission (NULM)",
		Category:      "scheme",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		RequiredFlags: []RequiredFlag{{
			Field:          "is_urban",
			Label:          "Urban location profile",
			RequiredValue:  true,
			BlockerMessage: "NULM is targeted at urban beneficiaries.",
			UnknownMessage: "Confirm if the enterprise and beneficiary are in an urban area.",
		}},
		Source: "Section 10.4 (Page 36)",
		Notes: []string{
			"Individuals up to Rs 2 lakh; SHGs up to Rs 10 lakh.",
			"No collateral required for loans up to Rs 10 lakh.",
		},
	},
	{
		ID:            "nrlm",
		Name:          "National Rural Livelihoods Mission (NRLM)",
		Category:      "scheme",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		RequiredFlags: []RequiredFlag{
			{
				Field:          "is_rural",
				Label:          "Rural location profile",
				RequiredValue:  true,
				BlockerMessage: "NRLM is a rural livelihood program.",
				UnknownMessage: "Confirm if the enterprise and beneficiary are in a rural area.",
			},
			{
				Field:          "is_shg_member",
				Label:          "SHG membership",
				RequiredValue:  true,
				BlockerMessage: "NRLM support is routed through SHGs.",
				UnknownMessage: "Confirm SHG membership for NRLM eligibility.",
			},
			{
				Field:          "is_women_led_shg",
				Label:          "Women-led SHG status",
				RequiredValue:  true,
				BlockerMessage: "NRLM prioritizes women-led SHG structures.",
				UnknownMessage: "Confirm whether the SHG is women-led.",
			},
		},
		LoanMin: amt(0),
		LoanMax: amt(1_000_000),
		Source:  "Section 10.5 (Page 36)",
		Notes: []string{
			"Collateral-free loans up to Rs 10 lakh through women-led SHGs.",
			"Supports rural livelihood diversification and financial inclusion.",
		},
	},
	{
		ID:            "mse_gift",
		Name:          "MSE-GIFT (Green Investment and Financing for Transformation)",
		Category:      "scheme",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		LoanMin:       amt(0),
		LoanMax:       amt(20_000_000),
		RequiredFlags: []RequiredFlag{{
			Field:          "wants_green_upgrade",
			Label:          "Green technology adoption objective",
			RequiredValue:  true,
			BlockerMessage: "MSE-GIFT applies to green technology/clean energy adoption.",
			UnknownMessage: "Confirm whether this is a green-tech or clean-energy upgrade project.",
		}},
		Source: "Section 10.6 (Page 36)",
		Notes: []string{
			"2% interest subvention on eligible term loans up to Rs 2 crore.",
			"Credit guarantee support up to 75% of eligible loans.",
		},
	},
	{
		ID:            "mse_spice",
		Name:          "MSE-SPICE (Scheme for Promotion and Investment in Circular Economy)",
		Category:      "scheme",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		LoanMin:       amt(0),
		LoanMax:       amt(5_000_000),
		RequiredFlags: []RequiredFlag{{
			Field:          "wants_circular_economy_project",
			Label:          "Circular economy / waste management project focus",
			RequiredValue:  true,
			BlockerMessage: "MSE-SPICE applies to circular economy and waste-management projects.",
			UnknownMessage: "Confirm whether project is in plastic/rubber/e-waste/circular economy.",
		}},
		Source: "Section 10.7 (Page 36)",
		Notes: []string{
			"Capital subsidy: 25% of plant & machinery, capped at Rs 12.5 lakh.",
			"Promotes EPR and circular-economy compliance.",
		},
	},
	{
		ID:            "gst_sahay",
		Name:          "GST Sahay (Invoice Based Financing)",
		Category:      "credit_product",
		AllowedStages: []Stage{StageStartup, StageExpansion},
		RequiredFlags: []RequiredFlag{
			{
				Field:          "has_gst",
				Label:          "GST registration",
				RequiredValue:  true,
				BlockerMessage: "GST Sahay requires GST registration.",
				UnknownMessage: "Confirm GST registration status.",
			},
			{
				Field:          "has_udyam",
				Label:          "Udyam registration",
				RequiredValue:  true,
				BlockerMessage: "GST Sahay requires Udyam-registered MSE profile.",
				UnknownMessage: "Confirm Udyam registration status.",
			},
		},
		Source: "Section 9.3 (Page 34)",
		Notes: []string{
			"Invoice-based working capital for purchases/sales; typically disbursal in 24 hours.",
			"Collateral-free and based on GST cash-flow data.",
		},
	},
	{
		ID:            "psb_59_minutes",
		Name:          "PSB Loans in 59 Minutes",
		Category:      "credit_portal",
		LoanMin:       amt(100_000),
		LoanMax:       amt(50_000_000),
		AllowedStages: []Stage{StageStartup, StageExpansion},
		Source:        "Section 9.2 (Page 33)",
		Notes: []string{
			"Digital multi-lender credit access with automated eligibility analysis.",
			"Can route collateral-free loans where covered under CGTMSE.",
		},
	},
	{
		ID:            "cgtmse_cgs",
		Name:          "CGTMSE Credit Guarantee Scheme (CGS)",
		Category:      "credit_guarantee",
		LoanMin:       amt(0),
		LoanMax:       amt(100_000_000),
		AllowedStages: []Stage{StageStartup, StageExpansion},
		Source:        "Section 1.3 (Page 16)",
		Notes: []string{
			"Guarantee cover for collateral-free credit to underserved MSE segments.",
			"Supports MSE-GIFT and ADEETIE-linked green financing.",
		},
	},
	{
		ID:            "cgss_startup",
		Name:          "Credit Guarantee Scheme for Startups (CGSS)",
		Category:      "credit_guarantee",
		LoanMin:       amt(0),
		LoanMax:       amt(200_000_000),
		AllowedStages: []Stage{StageStartup},
		RequiredFlags: []RequiredFlag{{
			Field:          "is_dpiit_recognized",
			Label:          "DPIIT startup recognition",
			RequiredValue:  true,
			BlockerMessage: "CGSS applies to DPIIT-recognized startups.",
			UnknownMessage: "Confirm DPIIT recognition for startup guarantee eligibility.",
		}},
		Source: "Section 1.3 (Page 16)",
		Notes: []string{
			"Guarantee cover for eligible startup funding through member institutions.",
			"Preferential guarantee fee for women founders and North-East units.",
		},
	},
}
