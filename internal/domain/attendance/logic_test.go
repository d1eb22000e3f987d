package attendance

import (
	"testing"
	"time"
)

func ts(day int, hour, minute int) *time.Time {
	// June 2025: the 2nd is a Monday.
	t := time.Date(2025, 6, day, hour, minute, 0, 0, time.UTC)
	return &t
}

func date(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeDayRegularDay(t *testing.T) {
	record := DayRecord{
		Date:       date(2),
		ClockIn:    ts(2, 9, 0),
		ClockOut:   ts(2, 18, 0),
		BreakStart: ts(2, 12, 0),
		BreakEnd:   ts(2, 13, 0),
	}
	day := ComputeDay(record, DefaultSchedule())

	if day.TotalHours != 8 {
		t.Fatalf("expected 8 total hours, got %v", day.TotalHours)
	}
	if day.RegularHours != 8 || day.OvertimeHours != 0 {
		t.Fatalf("expected 8 regular / 0 overtime, got %v / %v", day.RegularHours, day.OvertimeHours)
	}
	if day.Status != StatusPresent {
		t.Fatalf("expected PRESENT, got %s", day.Status)
	}
}

func TestComputeDayOvertimeSplit(t *testing.T) {
	record := DayRecord{
		Date:       date(3),
		ClockIn:    ts(3, 9, 0),
		ClockOut:   ts(3, 20, 30),
		BreakStart: ts(3, 12, 0),
		BreakEnd:   ts(3, 13, 0),
	}
	day := ComputeDay(record, DefaultSchedule())

	if day.TotalHours != 10.5 {
		t.Fatalf("expected 10.5 total hours, got %v", day.TotalHours)
	}
	if day.RegularHours != 8 {
		t.Fatalf("expected 8 regular hours, got %v", day.RegularHours)
	}
	if day.OvertimeHours != 2.5 {
		t.Fatalf("expected 2.5 overtime hours, got %v", day.OvertimeHours)
	}
}

func TestComputeDayNoBreakRecorded(t *testing.T) {
	record := DayRecord{Date: date(4), ClockIn: ts(4, 9, 0), ClockOut: ts(4, 17, 0)}
	day := ComputeDay(record, DefaultSchedule())
	if day.TotalHours != 8 {
		t.Fatalf("expected 8 hours without break subtraction, got %v", day.TotalHours)
	}
}

func TestComputeDayFractionalRounding(t *testing.T) {
	// 9:00 to 16:20 with an hour break: 6h20m = 6.333... hours.
	record := DayRecord{
		Date:       date(5),
		ClockIn:    ts(5, 9, 0),
		ClockOut:   ts(5, 16, 20),
		BreakStart: ts(5, 12, 0),
		BreakEnd:   ts(5, 13, 0),
	}
	day := ComputeDay(record, DefaultSchedule())
	if day.TotalHours != 6.33 {
		t.Fatalf("expected 6.33 total hours, got %v", day.TotalHours)
	}
	if day.RegularHours != 6.33 || day.OvertimeHours != 0 {
		t.Fatalf("expected 6.33 regular / 0 overtime, got %v / %v", day.RegularHours, day.OvertimeHours)
	}
}

func TestClassifyWeekend(t *testing.T) {
	// 2025-06-07 is a Saturday; even a worked weekend stays WEEKEND.
	record := DayRecord{Date: date(7), ClockIn: ts(7, 9, 0), ClockOut: ts(7, 17, 0)}
	day := ComputeDay(record, DefaultSchedule())
	if day.Status != StatusWeekend {
		t.Fatalf("expected WEEKEND, got %s", day.Status)
	}
}

func TestClassifyAbsent(t *testing.T) {
	day := ComputeDay(DayRecord{Date: date(2)}, DefaultSchedule())
	if day.Status != StatusAbsent {
		t.Fatalf("expected ABSENT, got %s", day.Status)
	}
	if day.TotalHours != 0 {
		t.Fatalf("expected 0 hours, got %v", day.TotalHours)
	}
}

func TestClassifyLateBoundary(t *testing.T) {
	schedule := DefaultSchedule()

	// 09:15 is within the 15-minute grace.
	onGrace := ComputeDay(DayRecord{Date: date(2), ClockIn: ts(2, 9, 15), ClockOut: ts(2, 18, 0)}, schedule)
	if onGrace.Status != StatusPresent {
		t.Fatalf("expected PRESENT at grace boundary, got %s", onGrace.Status)
	}

	late := ComputeDay(DayRecord{Date: date(2), ClockIn: ts(2, 9, 16), ClockOut: ts(2, 18, 0)}, schedule)
	if late.Status != StatusLate {
		t.Fatalf("expected LATE past grace, got %s", late.Status)
	}
}

func TestClassifyHalfDay(t *testing.T) {
	record := DayRecord{Date: date(2), ClockIn: ts(2, 9, 0), ClockOut: ts(2, 12, 30)}
	day := ComputeDay(record, DefaultSchedule())
	if day.Status != StatusHalfDay {
		t.Fatalf("expected HALF_DAY, got %s", day.Status)
	}
}

func TestClassifyLateWinsOverHalfDay(t *testing.T) {
	record := DayRecord{Date: date(2), ClockIn: ts(2, 10, 0), ClockOut: ts(2, 12, 0)}
	day := ComputeDay(record, DefaultSchedule())
	if day.Status != StatusLate {
		t.Fatalf("expected LATE to take precedence, got %s", day.Status)
	}
}

func TestSummarizeCountsLateAsAttended(t *testing.T) {
	schedule := DefaultSchedule()
	days := []DayHours{
		ComputeDay(DayRecord{Date: date(2), ClockIn: ts(2, 9, 0), ClockOut: ts(2, 18, 0), BreakStart: ts(2, 12, 0), BreakEnd: ts(2, 13, 0)}, schedule),
		ComputeDay(DayRecord{Date: date(3), ClockIn: ts(3, 9, 30), ClockOut: ts(3, 18, 0), BreakStart: ts(3, 12, 0), BreakEnd: ts(3, 13, 0)}, schedule),
		ComputeDay(DayRecord{Date: date(4)}, schedule),
		ComputeDay(DayRecord{Date: date(5), ClockIn: ts(5, 9, 0), ClockOut: ts(5, 12, 0)}, schedule),
	}
	summary := Summarize(days)

	if summary.TotalDays != 4 {
		t.Fatalf("expected 4 total days, got %d", summary.TotalDays)
	}
	if summary.PresentDays != 1 || summary.LateDays != 1 || summary.AbsentDays != 1 || summary.HalfDays != 1 {
		t.Fatalf("unexpected status counts: %+v", summary)
	}
	// (present + late) / total = 2/4.
	if summary.AttendanceRate != 50 {
		t.Fatalf("expected 50%% attendance rate, got %v", summary.AttendanceRate)
	}
	if summary.TotalWorkDays != 3 {
		t.Fatalf("expected 3 worked days, got %d", summary.TotalWorkDays)
	}
}

func TestSummarizeHourTotals(t *testing.T) {
	schedule := DefaultSchedule()
	days := []DayHours{
		ComputeDay(DayRecord{Date: date(2), ClockIn: ts(2, 9, 0), ClockOut: ts(2, 19, 0), BreakStart: ts(2, 12, 0), BreakEnd: ts(2, 13, 0)}, schedule),
		ComputeDay(DayRecord{Date: date(3), ClockIn: ts(3, 9, 0), ClockOut: ts(3, 18, 0), BreakStart: ts(3, 12, 0), BreakEnd: ts(3, 13, 0)}, schedule),
	}
	summary := Summarize(days)

	if summary.TotalWorkHours != 17 {
		t.Fatalf("expected 17 total hours, got %v", summary.TotalWorkHours)
	}
	if summary.RegularHours != 16 {
		t.Fatalf("expected 16 regular hours, got %v", summary.RegularHours)
	}
	if summary.OvertimeHours != 1 {
		t.Fatalf("expected 1 overtime hour, got %v", summary.OvertimeHours)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	if summary.AttendanceRate != 0 || summary.TotalDays != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestClockMinutes(t *testing.T) {
	if minutes, err := ParseClock("09:30"); err != nil || minutes != 570 {
		t.Fatalf("expected 570, got %d (%v)", minutes, err)
	}
	for _, bad := range []string{"", "9", "25:00", "09:60", "ab:cd"} {
		if _, err := ParseClock(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
