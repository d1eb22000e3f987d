package attendance

const (
	StatusPresent = "PRESENT"
	StatusAbsent  = "ABSENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusWeekend = "WEEKEND"

	DefaultGraceMinutes = 15
	halfDayThresholdHours = 4
)
