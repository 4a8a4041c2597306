package payroll

// CountAbsences counts days whose computed hours total zero. Days with only
// partial punches count as absent because they produce no hours.
func CountAbsences(entries TimeEntries, hoursPerShift float64) int {
	absences := 0
	for _, entry := range entries {
		regular, overtime := dayMinutes(entry, hoursPerShift)
		if regular+overtime == 0 {
			absences++
		}
	}
	return absences
}

// CountRecordAbsences counts absences in a saved record. No record means no
// absences yet.
func CountRecordAbsences(record *PayrollRecord, hoursPerShift float64) int {
	if record == nil {
		return 0
	}
	return CountAbsences(record.TimeEntries, hoursPerShift)
}
