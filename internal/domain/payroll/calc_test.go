package payroll

import (
	"math"
	"testing"
)

func approx(t *testing.T, label string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s: expected %v, got %v", label, want, got)
	}
}

func fullMonthAttendance() AttendanceSummary {
	return AttendanceSummary{TotalWorkDays: 22, TotalWorkHours: 186, RegularHours: 176, OvertimeHours: 10}
}

func floatRef(v float64) *float64 { return &v }

func TestCalculateBaseScenario(t *testing.T) {
	result := Calculate(22000, fullMonthAttendance(), nil, nil, DefaultSettings())

	approx(t, "hourlyRate", result.HourlyRate, 125)
	approx(t, "regularPay", result.RegularPay, 22000)
	approx(t, "overtimePay", result.OvertimePay, 1562.50)
	approx(t, "grossPay", result.GrossPay, 23562.50)

	// SSS and PhilHealth under their caps, Pag-IBIG capped at 10000.
	approx(t, "sss", lineAmount(result.DeductionsBreakdown, "sss"), 23562.50*0.045)
	approx(t, "philhealth", lineAmount(result.DeductionsBreakdown, "philhealth"), 23562.50*0.025)
	approx(t, "pag-ibig", lineAmount(result.DeductionsBreakdown, "pag-ibig"), 200)

	approx(t, "taxableIncome", result.TaxableIncome, 21713.13)
	approx(t, "withholdingTax", result.WithholdingTax, 131.97)
	approx(t, "totalDeductions", result.TotalDeductions, 1981.34)
	approx(t, "netPay", result.NetPay, 21581.16)
}

func TestCalculateConservation(t *testing.T) {
	earnings := []Earning{
		{Type: "Meal Allowance", Amount: 100, Frequency: FrequencyDaily, IsActive: true},
		{Type: "Bonus", Amount: 5000, Frequency: FrequencyOneTime, IsActive: true},
	}
	deductions := []Deduction{
		{Type: "Uniform Fee", Amount: floatRef(500), Frequency: FrequencyMonthly, IsActive: true},
		{Type: "Union Dues", Percentage: floatRef(1), Frequency: FrequencyMonthly, IsActive: true},
	}
	result := Calculate(30000, fullMonthAttendance(), earnings, deductions, DefaultSettings())

	sumDeductions := 0.0
	for _, line := range result.DeductionsBreakdown {
		sumDeductions += line.Amount
	}
	approx(t, "totalDeductions vs line sum", result.TotalDeductions, math.Round(sumDeductions*100)/100)
	approx(t, "netPay conservation", result.NetPay, math.Round((result.GrossPay-sumDeductions)*100)/100)
	approx(t, "grossPay conservation", result.GrossPay,
		math.Round((result.RegularPay+result.OvertimePay+result.TotalEarnings)*100)/100)
}

func TestCalculateZeroAttendance(t *testing.T) {
	earnings := []Earning{{Type: "Signing Bonus", Amount: 5000, Frequency: FrequencyOneTime, IsActive: true}}
	result := Calculate(22000, AttendanceSummary{}, earnings, nil, DefaultSettings())

	approx(t, "regularPay", result.RegularPay, 0)
	approx(t, "overtimePay", result.OvertimePay, 0)
	approx(t, "totalEarnings", result.TotalEarnings, 5000)
	approx(t, "grossPay", result.GrossPay, 5000)
	approx(t, "sss", lineAmount(result.DeductionsBreakdown, "sss"), 225)
	approx(t, "philhealth", lineAmount(result.DeductionsBreakdown, "philhealth"), 125)
	approx(t, "pag-ibig", lineAmount(result.DeductionsBreakdown, "pag-ibig"), 100)
	approx(t, "taxableIncome", result.TaxableIncome, 4550)
	approx(t, "withholdingTax", result.WithholdingTax, 0)
	approx(t, "netPay", result.NetPay, 4550)
}

func TestCalculateZeroBaseSalary(t *testing.T) {
	earnings := []Earning{{Type: "Retainer", Amount: 18000, Frequency: FrequencyMonthly, IsActive: true}}
	result := Calculate(0, AttendanceSummary{}, earnings, nil, DefaultSettings())

	approx(t, "hourlyRate", result.HourlyRate, 0)
	approx(t, "grossPay", result.GrossPay, 18000)
	if result.NetPay <= 0 || result.NetPay >= 18000 {
		t.Fatalf("expected net between 0 and gross, got %v", result.NetPay)
	}
}

func TestCalculateContributionCaps(t *testing.T) {
	// Gross far above every cap: contributions stay at maxSalary * rate.
	result := Calculate(200000, fullMonthAttendance(), nil, nil, DefaultSettings())

	if result.GrossPay < 200000 {
		t.Fatalf("expected gross above caps, got %v", result.GrossPay)
	}
	approx(t, "sss capped", lineAmount(result.DeductionsBreakdown, "sss"), 30000*0.045)
	approx(t, "philhealth capped", lineAmount(result.DeductionsBreakdown, "philhealth"), 100000*0.025)
	approx(t, "pag-ibig capped", lineAmount(result.DeductionsBreakdown, "pag-ibig"), 10000*0.02)
}

func TestCalculateNoDuplicateStatutory(t *testing.T) {
	deductions := []Deduction{
		{Type: "Special SSS Loan", Amount: floatRef(300), Frequency: FrequencyMonthly, IsActive: true},
	}
	result := Calculate(22000, fullMonthAttendance(), nil, deductions, DefaultSettings())

	matches := 0
	for _, line := range result.DeductionsBreakdown {
		if hasLine([]PayLine{line}, "sss") {
			matches++
		}
	}
	if matches != 1 {
		t.Fatalf("expected exactly one sss-matching line, got %d", matches)
	}
	// The manual line also becomes the SSS amount subtracted for tax.
	approx(t, "taxableIncome uses manual line", result.TaxableIncome,
		round2(result.GrossPay-300-lineAmount(result.DeductionsBreakdown, "philhealth")-200))
}

func TestCalculateDeductionLineCount(t *testing.T) {
	deductions := []Deduction{
		{Type: "Uniform Fee", Amount: floatRef(500), Frequency: FrequencyMonthly, IsActive: true},
	}
	result := Calculate(22000, fullMonthAttendance(), nil, deductions, DefaultSettings())

	if len(result.DeductionsBreakdown) != 5 {
		t.Fatalf("expected 5 deduction lines, got %d", len(result.DeductionsBreakdown))
	}
	sum := 0.0
	for _, line := range result.DeductionsBreakdown {
		sum += line.Amount
	}
	approx(t, "totalDeductions", result.TotalDeductions, round2(sum))
}

func TestCalculateAmountWinsOverPercentage(t *testing.T) {
	deductions := []Deduction{
		{Type: "Loan", Amount: floatRef(250), Percentage: floatRef(50), Frequency: FrequencyMonthly, IsActive: true},
	}
	result := Calculate(22000, fullMonthAttendance(), nil, deductions, DefaultSettings())
	approx(t, "flat amount wins", lineAmount(result.DeductionsBreakdown, "loan"), 250)
}

func TestCalculatePercentageDeduction(t *testing.T) {
	deductions := []Deduction{
		{Type: "Retirement Plan", Percentage: floatRef(5), Frequency: FrequencyMonthly, IsActive: true},
	}
	result := Calculate(22000, fullMonthAttendance(), nil, deductions, DefaultSettings())
	approx(t, "percentage of gross", lineAmount(result.DeductionsBreakdown, "retirement"), 23562.50*0.05)
}

func TestCalculateIgnoresInactive(t *testing.T) {
	earnings := []Earning{{Type: "Old Allowance", Amount: 1000, Frequency: FrequencyMonthly, IsActive: false}}
	deductions := []Deduction{{Type: "Old Loan", Amount: floatRef(1000), Frequency: FrequencyMonthly, IsActive: false}}
	result := Calculate(22000, fullMonthAttendance(), earnings, deductions, DefaultSettings())

	approx(t, "totalEarnings", result.TotalEarnings, 0)
	if len(result.EarningsBreakdown) != 0 {
		t.Fatalf("expected empty earnings breakdown, got %d lines", len(result.EarningsBreakdown))
	}
	if len(result.DeductionsBreakdown) != 4 {
		t.Fatalf("expected only statutory and tax lines, got %d", len(result.DeductionsBreakdown))
	}
}

func TestMonthlyAmountFrequencies(t *testing.T) {
	tests := []struct {
		frequency string
		amount    float64
		want      float64
	}{
		{FrequencyDaily, 100, 2200},
		{FrequencyWeekly, 100, 433},
		{FrequencyBiweekly, 100, 217},
		{FrequencyMonthly, 100, 100},
		{FrequencyQuarterly, 300, 100},
		{FrequencyAnnually, 1200, 100},
		{FrequencyOneTime, 5000, 5000},
		{"SOMETIMES", 100, 100}, // unknown frequency falls through as-is
	}
	for _, tc := range tests {
		if got := monthlyAmount(tc.amount, tc.frequency, 22); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%s: expected %v, got %v", tc.frequency, tc.want, got)
		}
	}
}

func TestAnnualTaxBracketWalk(t *testing.T) {
	brackets := DefaultSettings().TaxBrackets

	approx(t, "below first threshold", annualTax(250000, brackets), 0)
	approx(t, "second bracket", annualTax(300000, brackets), 50000*0.15)
	approx(t, "third bracket boundary", annualTax(800000, brackets),
		150000*0.15+400000*0.20)
	approx(t, "top bracket", annualTax(10000000, brackets),
		150000*0.15+400000*0.20+1200000*0.25+6000000*0.30+2000000*0.35)
	approx(t, "zero income", annualTax(0, brackets), 0)
}

func TestAnnualTaxMonotonic(t *testing.T) {
	brackets := DefaultSettings().TaxBrackets
	prev := -1.0
	for income := 0.0; income <= 10000000; income += 50000 {
		tax := annualTax(income, brackets)
		if tax < prev {
			t.Fatalf("tax decreased at income %v: %v < %v", income, tax, prev)
		}
		if tax > income {
			t.Fatalf("tax exceeds income at %v: %v", income, tax)
		}
		prev = tax
	}
}

func TestAnnualTaxSliceAdditivity(t *testing.T) {
	// The marginal walk must equal the sum of per-bracket taxed slices.
	brackets := DefaultSettings().TaxBrackets
	for _, income := range []float64{0, 125000, 250000, 333333.33, 799999.99, 2000000, 5000000, 12000000} {
		want := 0.0
		for _, b := range brackets {
			if income <= b.Min {
				break
			}
			upper := income
			if b.Max != nil && *b.Max < income {
				upper = *b.Max
			}
			want += (upper - b.Min) * b.Rate
		}
		approx(t, "slice sum", annualTax(income, brackets), want)
	}
}

func TestCalculateSyntheticBrackets(t *testing.T) {
	// Settings are an explicit argument, so a test can run the engine
	// against a flat synthetic table.
	settings := DefaultSettings()
	settings.TaxBrackets = []TaxBracket{{Min: 0, Max: nil, Rate: 0.10}}
	result := Calculate(22000, fullMonthAttendance(), nil, nil, settings)

	approx(t, "flat tax", result.WithholdingTax, round2(result.TaxableIncome*0.10))
}
