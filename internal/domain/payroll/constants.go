package payroll

const (
	FrequencyDaily     = "DAILY"
	FrequencyWeekly    = "WEEKLY"
	FrequencyBiweekly  = "BIWEEKLY"
	FrequencyMonthly   = "MONTHLY"
	FrequencyQuarterly = "QUARTERLY"
	FrequencyAnnually  = "ANNUALLY"
	FrequencyOneTime   = "ONE_TIME"

	RunStatusDraft = "draft"
	RunStatusPaid  = "paid"

	WithholdingTaxLabel = "Withholding Tax"
)

// Average weeks and biweeks per month. Fixed approximations used by the
// normalization table, not calendar-accurate values.
const (
	weeksPerMonth   = 4.33
	biweeksPerMonth = 2.17
)
