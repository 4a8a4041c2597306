package payroll

import "math"

const minutesPerDay = 24 * 60

// DayHours is one day's split between regular and overtime hours.
type DayHours struct {
	RegularHours  float64 `json:"regular_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// Total is regular plus overtime.
func (h DayHours) Total() float64 {
	return h.RegularHours + h.OvertimeHours
}

// ShiftMinutes returns the elapsed minutes between in and out. An out earlier
// than in is an overnight shift and wraps past midnight. ok is false when
// either side is missing or malformed.
func ShiftMinutes(in, out string) (int, bool) {
	start, ok := ParseClock(in)
	if !ok {
		return 0, false
	}
	end, ok := ParseClock(out)
	if !ok {
		return 0, false
	}
	elapsed := end - start
	if elapsed < 0 {
		elapsed += minutesPerDay
	}
	return elapsed, true
}

// dayMinutes splits a day into regular and overtime minutes.
func dayMinutes(entry DayEntry, hoursPerShift float64) (regular, overtime int) {
	capacity := int(math.Round(hoursPerShift * 60))
	if capacity < 0 {
		capacity = 0
	}

	if first, ok := ShiftMinutes(entry.FirstShiftIn, entry.FirstShiftOut); ok {
		reg := min(first, capacity)
		regular += reg
		overtime += first - reg
	}

	if second, ok := ShiftMinutes(entry.SecondShiftIn, entry.SecondShiftOut); ok {
		reg := min(second, max(capacity-regular, 0))
		regular += reg
		overtime += second - reg
	}

	if ot, ok := ShiftMinutes(entry.OTIn, entry.OTOut); ok {
		overtime += ot
	}

	return regular, overtime
}

// ComputeDayHours splits a day's worked time at hoursPerShift.
// First-shift time is regular up to the shift length. Second-shift time fills
// whatever regular capacity is left. OT-labelled time is always overtime.
// A shift with a missing in or out contributes nothing.
func ComputeDayHours(entry DayEntry, hoursPerShift float64) DayHours {
	regular, overtime := dayMinutes(entry, hoursPerShift)
	return DayHours{
		RegularHours:  float64(regular) / 60,
		OvertimeHours: float64(overtime) / 60,
	}
}

// periodMinutes sums dayMinutes over all entries.
func periodMinutes(entries TimeEntries, hoursPerShift float64) (regular, overtime int) {
	for _, entry := range entries {
		r, o := dayMinutes(entry, hoursPerShift)
		regular += r
		overtime += o
	}
	return regular, overtime
}

// PeriodHours sums ComputeDayHours over all entries.
func PeriodHours(entries TimeEntries, hoursPerShift float64) DayHours {
	regular, overtime := periodMinutes(entries, hoursPerShift)
	return DayHours{
		RegularHours:  float64(regular) / 60,
		OvertimeHours: float64(overtime) / 60,
	}
}
