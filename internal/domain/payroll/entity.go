package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// CustomCounts maps a custom commission id to the number of units sold.
type CustomCounts map[string]int

// Value implements driver.Valuer for database storage
func (c CustomCounts) Value() (driver.Value, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *CustomCounts) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = CustomCounts{}
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("failed to scan CustomCounts: invalid type")
}

// CommissionCounts are the piecework units an employee produced in a period.
type CommissionCounts struct {
	RushTarp int          `json:"rush_tarp_count"`
	Regular  int          `json:"regular_commission_count"`
	Custom   CustomCounts `json:"custom_commission_counts,omitempty"`
}

// PayrollRecord is one employee's pay for one half-month.
type PayrollRecord struct {
	ID                     string
	EmployeeID             string
	Month                  int
	Year                   int
	PayPeriod              PayPeriod
	TimeEntries            TimeEntries
	RushTarpCount          int
	RegularCommissionCount int
	CustomCommissionCounts CustomCounts
	CashAdvance            decimal.Decimal
	DayOffHours            float64
	RegularHours           float64
	OvertimeHours          float64
	LateMinutes            int
	RegularPay             decimal.Decimal
	OvertimePay            decimal.Decimal
	GrossPay               decimal.Decimal
	TotalCommissions       decimal.Decimal
	LateDeduction          decimal.Decimal
	TotalDeductions        decimal.Decimal
	NetPay                 decimal.Decimal
	Processed              bool
	ProcessedAt            *time.Time
	CreatedAt              time.Time
	UpdatedAt              time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

func (r PayrollRecord) Commissions() CommissionCounts {
	return CommissionCounts{
		RushTarp: r.RushTarpCount,
		Regular:  r.RegularCommissionCount,
		Custom:   r.CustomCommissionCounts,
	}
}

// ApplyComputation copies computed totals onto the record.
func (r *PayrollRecord) ApplyComputation(c Computation) {
	r.DayOffHours = c.DayOffHours
	r.RegularHours = c.RegularHours
	r.OvertimeHours = c.OvertimeHours
	r.LateMinutes = c.LateMinutes
	r.RegularPay = c.RegularPay
	r.OvertimePay = c.OvertimePay
	r.GrossPay = c.GrossPay
	r.TotalCommissions = c.TotalCommissions
	r.LateDeduction = c.LateDeduction
	r.TotalDeductions = c.TotalDeductions
	r.NetPay = c.NetPay
}

// PayrollFilter narrows record listings. Zero values match everything.
type PayrollFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	PayPeriod  *PayPeriod
	Processed  *bool
}
