package attendance

import "time"

// WorkSchedule is the expected daily schedule an employee's records are
// measured against. StartTime and EndTime are "HH:MM".
type WorkSchedule struct {
	StartTime          string  `json:"startTime"`
	EndTime            string  `json:"endTime"`
	BreakDuration      int     `json:"breakDuration"`
	RegularHoursPerDay float64 `json:"regularHoursPerDay"`
	OvertimeMultiplier float64 `json:"overtimeMultiplier"`
	GraceMinutes       int     `json:"graceMinutes"`
}

// DefaultSchedule is the fallback 9-to-6 schedule with a one-hour break.
func DefaultSchedule() WorkSchedule {
	return WorkSchedule{
		StartTime:          "09:00",
		EndTime:            "18:00",
		BreakDuration:      60,
		RegularHoursPerDay: 8,
		OvertimeMultiplier: 1.25,
		GraceMinutes:       DefaultGraceMinutes,
	}
}

// DayRecord is one stored attendance row: the clock and break timestamps
// for a single calendar day. All timestamps are optional.
type DayRecord struct {
	ID         string     `json:"id,omitempty"`
	EmployeeID string     `json:"employeeId,omitempty"`
	Date       time.Time  `json:"date"`
	ClockIn    *time.Time `json:"clockIn,omitempty"`
	ClockOut   *time.Time `json:"clockOut,omitempty"`
	BreakStart *time.Time `json:"breakStart,omitempty"`
	BreakEnd   *time.Time `json:"breakEnd,omitempty"`
}

// DayHours is the computed view of one day.
type DayHours struct {
	Date          time.Time `json:"date"`
	TotalHours    float64   `json:"totalHours"`
	RegularHours  float64   `json:"regularHours"`
	OvertimeHours float64   `json:"overtimeHours"`
	Status        string    `json:"status"`
}

// PeriodSummary aggregates a pay period's computed days.
type PeriodSummary struct {
	TotalDays      int     `json:"totalDays"`
	TotalWorkDays  int     `json:"totalWorkDays"`
	TotalWorkHours float64 `json:"totalWorkHours"`
	RegularHours   float64 `json:"regularHours"`
	OvertimeHours  float64 `json:"overtimeHours"`
	PresentDays    int     `json:"presentDays"`
	LateDays       int     `json:"lateDays"`
	AbsentDays     int     `json:"absentDays"`
	HalfDays       int     `json:"halfDays"`
	WeekendDays    int     `json:"weekendDays"`
	AttendanceRate float64 `json:"attendanceRate"`
}
