package payroll

// TaxBracket is one slice of the progressive annual income tax table.
// Max is nil for the unbounded top bracket.
type TaxBracket struct {
	Min  float64  `json:"min"`
	Max  *float64 `json:"max"`
	Rate float64  `json:"rate"`
}

// ContributionSchedule describes one statutory contribution scheme.
// MatchKey is the case-insensitive substring used to detect a
// caller-supplied deduction that already covers the scheme.
type ContributionSchedule struct {
	Name         string  `json:"name"`
	MatchKey     string  `json:"matchKey"`
	EmployeeRate float64 `json:"employeeRate"`
	EmployerRate float64 `json:"employerRate"`
	MaxSalary    float64 `json:"maxSalary"`
}

type Settings struct {
	WorkingDaysPerMonth float64              `json:"workingDaysPerMonth"`
	WorkingHoursPerDay  float64              `json:"workingHoursPerDay"`
	OvertimeMultiplier  float64              `json:"overtimeMultiplier"`
	TaxBrackets         []TaxBracket         `json:"taxBrackets"`
	SSS                 ContributionSchedule `json:"sss"`
	PhilHealth          ContributionSchedule `json:"philHealth"`
	PagIBIG             ContributionSchedule `json:"pagIbig"`
}

// Schedules returns the statutory schemes in the order they are injected
// and subtracted from taxable income.
func (s Settings) Schedules() []ContributionSchedule {
	return []ContributionSchedule{s.SSS, s.PhilHealth, s.PagIBIG}
}

func maxRef(v float64) *float64 { return &v }

// DefaultSettings returns the fallback configuration used when a tenant has
// not persisted its own: 22 working days, 8-hour days, 1.25x overtime, the
// six-bracket annual tax table, and the three statutory schemes.
func DefaultSettings() Settings {
	return Settings{
		WorkingDaysPerMonth: 22,
		WorkingHoursPerDay:  8,
		OvertimeMultiplier:  1.25,
		TaxBrackets: []TaxBracket{
			{Min: 0, Max: maxRef(250000), Rate: 0},
			{Min: 250000, Max: maxRef(400000), Rate: 0.15},
			{Min: 400000, Max: maxRef(800000), Rate: 0.20},
			{Min: 800000, Max: maxRef(2000000), Rate: 0.25},
			{Min: 2000000, Max: maxRef(8000000), Rate: 0.30},
			{Min: 8000000, Max: nil, Rate: 0.35},
		},
		SSS: ContributionSchedule{
			Name:         "SSS",
			MatchKey:     "sss",
			EmployeeRate: 0.045,
			EmployerRate: 0.095,
			MaxSalary:    30000,
		},
		PhilHealth: ContributionSchedule{
			Name:         "PhilHealth",
			MatchKey:     "philhealth",
			EmployeeRate: 0.025,
			EmployerRate: 0.025,
			MaxSalary:    100000,
		},
		PagIBIG: ContributionSchedule{
			Name:         "Pag-IBIG",
			MatchKey:     "pag-ibig",
			EmployeeRate: 0.02,
			EmployerRate: 0.02,
			MaxSalary:    10000,
		},
	}
}
