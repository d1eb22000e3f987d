package attendance

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ComputeDay derives worked hours and a display status for one day's
// record against the schedule.
func ComputeDay(record DayRecord, schedule WorkSchedule) DayHours {
	totalHours := workedHours(record)
	regular := math.Min(totalHours, schedule.RegularHoursPerDay)
	if regular < 0 {
		regular = 0
	}
	overtime := math.Max(0, totalHours-schedule.RegularHoursPerDay)

	return DayHours{
		Date:          record.Date,
		TotalHours:    round2(totalHours),
		RegularHours:  round2(regular),
		OvertimeHours: round2(overtime),
		Status:        classify(record, totalHours, schedule),
	}
}

func workedHours(record DayRecord) float64 {
	if record.ClockIn == nil || record.ClockOut == nil {
		return 0
	}
	minutes := record.ClockOut.Sub(*record.ClockIn).Minutes()
	if record.BreakStart != nil && record.BreakEnd != nil {
		minutes -= record.BreakEnd.Sub(*record.BreakStart).Minutes()
	}
	return minutes / 60
}

func classify(record DayRecord, totalHours float64, schedule WorkSchedule) string {
	weekday := record.Date.Weekday()
	if weekday == time.Sunday || weekday == time.Saturday {
		return StatusWeekend
	}
	if record.ClockIn == nil {
		return StatusAbsent
	}

	grace := schedule.GraceMinutes
	if grace <= 0 {
		grace = DefaultGraceMinutes
	}
	if start, err := ParseClock(schedule.StartTime); err == nil {
		if minutesOfDay(*record.ClockIn) > start+grace {
			return StatusLate
		}
	}

	if record.ClockOut != nil && totalHours < halfDayThresholdHours {
		return StatusHalfDay
	}
	return StatusPresent
}

// Summarize aggregates computed days into a period summary. Late days
// count as attended for the attendance rate.
func Summarize(days []DayHours) PeriodSummary {
	summary := PeriodSummary{TotalDays: len(days)}
	totalHours, regular, overtime := 0.0, 0.0, 0.0
	for _, day := range days {
		totalHours += day.TotalHours
		regular += day.RegularHours
		overtime += day.OvertimeHours
		if day.TotalHours > 0 {
			summary.TotalWorkDays++
		}
		switch day.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusLate:
			summary.LateDays++
		case StatusAbsent:
			summary.AbsentDays++
		case StatusHalfDay:
			summary.HalfDays++
		case StatusWeekend:
			summary.WeekendDays++
		}
	}
	summary.TotalWorkHours = round2(totalHours)
	summary.RegularHours = round2(regular)
	summary.OvertimeHours = round2(overtime)
	if summary.TotalDays > 0 {
		attended := summary.PresentDays + summary.LateDays
		summary.AttendanceRate = round2(float64(attended) / float64(summary.TotalDays) * 100)
	}
	return summary
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid clock time %q", value)
	}
	return hours*60 + minutes, nil
}

func minutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
