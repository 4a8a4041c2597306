package dtr

import "time"

// Column is one of the six daily time record slots.
type Column string

const (
	ColumnAMIn  Column = "am_in"
	ColumnAMOut Column = "am_out"
	ColumnPMIn  Column = "pm_in"
	ColumnPMOut Column = "pm_out"
	ColumnOTIn  Column = "ot_in"
	ColumnOTOut Column = "ot_out"
)

// Columns is the order punches fill an empty day.
var Columns = []Column{ColumnAMIn, ColumnAMOut, ColumnPMIn, ColumnPMOut, ColumnOTIn, ColumnOTOut}

func (c Column) Valid() bool {
	for _, col := range Columns {
		if c == col {
			return true
		}
	}
	return false
}

// DTRRecord is one employee's attendance for one date. Empty strings are unpunched columns.
type DTRRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	AMIn       string
	AMOut      string
	PMIn       string
	PMOut      string
	OTIn       string
	OTOut      string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

func (r *DTRRecord) field(c Column) *string {
	switch c {
	case ColumnAMIn:
		return &r.AMIn
	case ColumnAMOut:
		return &r.AMOut
	case ColumnPMIn:
		return &r.PMIn
	case ColumnPMOut:
		return &r.PMOut
	case ColumnOTIn:
		return &r.OTIn
	case ColumnOTOut:
		return &r.OTOut
	}
	return nil
}

func (r DTRRecord) Get(c Column) string {
	if f := r.field(c); f != nil {
		return *f
	}
	return ""
}

// NextEmptyColumn returns the first unpunched column in Columns order.
func (r DTRRecord) NextEmptyColumn() (Column, bool) {
	for _, c := range Columns {
		if r.Get(c) == "" {
			return c, true
		}
	}
	return "", false
}

// Punch writes clock into column, or into the next empty column when column
// is empty. A populated column or a full day leaves the record unchanged and
// applied is false.
func (r DTRRecord) Punch(column Column, clock string) (updated DTRRecord, used Column, applied bool) {
	if column == "" {
		next, ok := r.NextEmptyColumn()
		if !ok {
			return r, "", false
		}
		column = next
	}
	f := r.field(column)
	if f == nil || *f != "" {
		return r, column, false
	}
	*f = clock
	return r, column, true
}

type DTRFilter struct {
	EmployeeID *string
	From       *time.Time
	To         *time.Time
}
