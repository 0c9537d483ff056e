package knowledge

// Seed is the builtin Static KB corpus (spec §4.8/§6.2's "directory of
// structured documents"). No corpus was retrieved with this deployment —
// these are the handful of tax/regulation entries the Router's static
// keyword set (see internal/router) expects to be able to find.
func Seed() []Document {
	return []Document{
		{
			DocID: "tax-slabs-new-regime", Title: "Income tax slabs, new regime",
			Category: "tax",
			Content:  "Under the new income tax regime, income up to Rs 3,00,000 is tax-free, with slabs rising in steps to 30% above Rs 15,00,000. Section 87A rebate can bring tax to nil up to Rs 7,00,000 total income.",
			Source:   "builtin",
		},
		{
			DocID: "section-80c", Title: "Section 80C deductions",
			Category: "tax",
			Content:  "Section 80C allows a deduction of up to Rs 1,50,000 per year for investments in PPF, ELSS, life insurance premiums, principal repayment on home loans, and five-year tax-saving fixed deposits.",
			Source:   "builtin",
		},
		{
			DocID: "gst-composition-scheme", Title: "GST composition scheme",
			Category: "gst",
			Content:  "The GST composition scheme lets small businesses with turnover up to Rs 1.5 crore pay tax at a flat rate instead of the standard slab rates, in exchange for giving up input tax credit and interstate sales.",
			Source:   "builtin",
		},
		{
			DocID: "epf-withdrawal-rules", Title: "EPF withdrawal rules",
			Category: "retirement",
			Content:  "Employees' Provident Fund balances can be withdrawn in full after two months of unemployment, or partially for specific needs (medical treatment, home purchase, wedding) after minimum service periods.",
			Source:   "builtin",
		},
		{
			DocID: "ppf-rules", Title: "Public Provident Fund rules",
			Category: "retirement",
			Content:  "PPF has a 15-year lock-in extendable in 5-year blocks, a yearly contribution cap of Rs 1,50,000, and interest set quarterly by the government; both principal and interest are exempt from tax (EEE status).",
			Source:   "builtin",
		},
		{
			DocID: "mudra-loan-categories", Title: "MUDRA loan categories",
			Category: "msme",
			Content:  "MUDRA loans for non-farm micro/small enterprises are split into three tiers: Shishu (up to Rs 50,000), Kishor (Rs 50,000 to Rs 5 lakh), and Tarun (Rs 5 lakh to Rs 10 lakh), offered through banks, NBFCs and MFIs.",
			Source:   "builtin",
		},
		{
			DocID: "udyam-registration", Title: "Udyam registration for MSMEs",
			Category: "msme",
			Content:  "Udyam registration is a self-declared, Aadhaar-linked online registration for micro, small and medium enterprises that classifies them by investment in plant/equipment and annual turnover, unlocking priority-sector lending.",
			Source:   "builtin",
		},
		{
			DocID: "nps-tax-benefits", Title: "NPS tax benefits",
			Category: "retirement",
			Content:  "National Pension System contributions qualify for an additional Rs 50,000 deduction under Section 80CCD(1B), over and above the Section 80C limit, with partial annuitization required at withdrawal.",
			Source:   "builtin",
		},
	}
}
