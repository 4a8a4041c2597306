package dayoff

// PaidDayOffHours is credited for a qualified day off regardless of the
// employee's own shift length.
const PaidDayOffHours = 9.0

type Qualification struct {
	AbsenceCount int     `json:"absence_count"`
	MaxAbsences  int     `json:"max_absences"`
	IsQualified  bool    `json:"is_qualified"`
	HoursPaid    float64 `json:"hours_paid"`
}

// Qualify pays the day off only while absences stay strictly below maxAbsences.
func Qualify(absences, maxAbsences int) Qualification {
	q := Qualification{
		AbsenceCount: absences,
		MaxAbsences:  maxAbsences,
		IsQualified:  absences < maxAbsences,
	}
	if q.IsQualified {
		q.HoursPaid = PaidDayOffHours
	}
	return q
}

// HoursPaid sums the paid hours of records.
func HoursPaid(records []DayOffRecord) float64 {
	total := 0.0
	for _, r := range records {
		total += r.HoursPaid
	}
	return total
}
