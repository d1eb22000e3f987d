package payroll

import (
	"math"
	"strings"
)

// Calculate converts an employee's base salary, attendance totals, and
// active earnings/deductions into a full gross-to-net breakdown. It is a
// pure function: no I/O, no validation, deterministic for a given input.
// Inputs are assumed pre-validated and pre-filtered by the caller.
func Calculate(baseSalary float64, attendance AttendanceSummary, earnings []Earning, deductions []Deduction, settings Settings) Result {
	hourlyRate := baseSalary / (settings.WorkingDaysPerMonth * settings.WorkingHoursPerDay)
	regularPay := attendance.RegularHours * hourlyRate
	overtimePay := attendance.OvertimeHours * hourlyRate * settings.OvertimeMultiplier

	totalEarnings := 0.0
	earningsBreakdown := make([]PayLine, 0, len(earnings))
	for _, earning := range earnings {
		if !earning.IsActive {
			continue
		}
		amount := monthlyAmount(earning.Amount, earning.Frequency, settings.WorkingDaysPerMonth)
		totalEarnings += amount
		earningsBreakdown = append(earningsBreakdown, PayLine{
			Type:      earning.Type,
			Amount:    amount,
			Frequency: earning.Frequency,
		})
	}

	grossPay := regularPay + overtimePay + totalEarnings

	totalDeductions := 0.0
	deductionsBreakdown := make([]PayLine, 0, len(deductions)+4)
	for _, deduction := range deductions {
		if !deduction.IsActive {
			continue
		}
		base := 0.0
		switch {
		case deduction.Amount != nil:
			base = *deduction.Amount
		case deduction.Percentage != nil:
			base = grossPay * (*deduction.Percentage / 100)
		}
		amount := monthlyAmount(base, deduction.Frequency, settings.WorkingDaysPerMonth)
		totalDeductions += amount
		deductionsBreakdown = append(deductionsBreakdown, PayLine{
			Type:      deduction.Type,
			Amount:    amount,
			Frequency: deduction.Frequency,
		})
	}

	// Statutory contributions are injected only when no caller-supplied
	// deduction already names the scheme, so a manual HR override never
	// produces a duplicate line.
	for _, schedule := range settings.Schedules() {
		if hasLine(deductionsBreakdown, schedule.MatchKey) {
			continue
		}
		amount := math.Min(grossPay, schedule.MaxSalary) * schedule.EmployeeRate
		totalDeductions += amount
		deductionsBreakdown = append(deductionsBreakdown, PayLine{
			Type:      schedule.Name,
			Amount:    amount,
			Frequency: FrequencyMonthly,
		})
	}

	taxableIncome := grossPay
	for _, schedule := range settings.Schedules() {
		taxableIncome -= lineAmount(deductionsBreakdown, schedule.MatchKey)
	}

	withholdingTax := annualTax(taxableIncome*12, settings.TaxBrackets) / 12
	totalDeductions += withholdingTax
	deductionsBreakdown = append(deductionsBreakdown, PayLine{
		Type:      WithholdingTaxLabel,
		Amount:    withholdingTax,
		Frequency: FrequencyMonthly,
	})

	netPay := grossPay - totalDeductions

	return Result{
		TotalWorkDays:  attendance.TotalWorkDays,
		TotalWorkHours: attendance.TotalWorkHours,
		RegularHours:   attendance.RegularHours,
		OvertimeHours:  attendance.OvertimeHours,

		HourlyRate:  round2(hourlyRate),
		RegularPay:  round2(regularPay),
		OvertimePay: round2(overtimePay),

		TotalEarnings:     round2(totalEarnings),
		EarningsBreakdown: earningsBreakdown,

		TotalDeductions:     round2(totalDeductions),
		DeductionsBreakdown: deductionsBreakdown,

		GrossPay:       round2(grossPay),
		TaxableIncome:  round2(taxableIncome),
		WithholdingTax: round2(withholdingTax),
		NetPay:         round2(netPay),
	}
}

// monthlyAmount converts an amount at the given frequency to its
// monthly equivalent. Unknown frequencies fall through unchanged, the
// same permissive behavior callers already depend on.
func monthlyAmount(amount float64, frequency string, workingDaysPerMonth float64) float64 {
	switch frequency {
	case FrequencyDaily:
		return amount * workingDaysPerMonth
	case FrequencyWeekly:
		return amount * weeksPerMonth
	case FrequencyBiweekly:
		return amount * biweeksPerMonth
	case FrequencyQuarterly:
		return amount / 3
	case FrequencyAnnually:
		return amount / 12
	default:
		return amount
	}
}

// annualTax walks the progressive brackets in ascending order and taxes
// only the slice of income inside each bracket's range.
func annualTax(income float64, brackets []TaxBracket) float64 {
	tax := 0.0
	for _, bracket := range brackets {
		if income <= bracket.Min {
			break
		}
		upper := income
		if bracket.Max != nil && *bracket.Max < income {
			upper = *bracket.Max
		}
		tax += (upper - bracket.Min) * bracket.Rate
	}
	return tax
}

func hasLine(lines []PayLine, key string) bool {
	key = strings.ToLower(key)
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line.Type), key) {
			return true
		}
	}
	return false
}

func lineAmount(lines []PayLine, key string) float64 {
	key = strings.ToLower(key)
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line.Type), key) {
			return line.Amount
		}
	}
	return 0
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
