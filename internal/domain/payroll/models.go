package payroll

import "time"

// Earning is a variable or recurring addition to pay. Only active rows,
// pre-filtered by effective window, reach the calculator.
type Earning struct {
	ID            string     `json:"id,omitempty"`
	EmployeeID    string     `json:"employeeId,omitempty"`
	Type          string     `json:"type"`
	Amount        float64    `json:"amount"`
	Frequency     string     `json:"frequency"`
	IsActive      bool       `json:"isActive"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// Deduction carries either a flat Amount or a Percentage of gross pay.
// When both are set the flat amount wins.
type Deduction struct {
	ID            string     `json:"id,omitempty"`
	EmployeeID    string     `json:"employeeId,omitempty"`
	Type          string     `json:"type"`
	Amount        *float64   `json:"amount,omitempty"`
	Percentage    *float64   `json:"percentage,omitempty"`
	Frequency     string     `json:"frequency"`
	IsActive      bool       `json:"isActive"`
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	EndDate       *time.Time `json:"endDate,omitempty"`
}

// AttendanceSummary is the attendance aggregator's output for one pay
// period, already summed over the period's days.
type AttendanceSummary struct {
	TotalWorkDays  float64 `json:"totalWorkDays"`
	TotalWorkHours float64 `json:"totalWorkHours"`
	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
}

// PayLine is one itemized earning or deduction in a calculation result.
// Line amounts are the normalized monthly-equivalent values and are not
// rounded; only the aggregate result fields are.
type PayLine struct {
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Frequency string  `json:"frequency"`
}

// Result is the full gross-to-net breakdown for one employee and period.
// Pure value object, created fresh on every calculation.
type Result struct {
	TotalWorkDays  float64 `json:"totalWorkDays"`
	TotalWorkHours float64 `json:"totalWorkHours"`
	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`

	HourlyRate  float64 `json:"hourlyRate"`
	RegularPay  float64 `json:"regularPay"`
	OvertimePay float64 `json:"overtimePay"`

	TotalEarnings     float64   `json:"totalEarnings"`
	EarningsBreakdown []PayLine `json:"earningsBreakdown"`

	TotalDeductions     float64   `json:"totalDeductions"`
	DeductionsBreakdown []PayLine `json:"deductionsBreakdown"`

	GrossPay       float64 `json:"grossPay"`
	TaxableIncome  float64 `json:"taxableIncome"`
	WithholdingTax float64 `json:"withholdingTax"`
	NetPay         float64 `json:"netPay"`
}

// Run is a persisted payroll calculation for an employee and pay period.
type Run struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	Status      string    `json:"status"`
	Result      Result    `json:"result"`
	CreatedAt   time.Time `json:"createdAt"`
}
