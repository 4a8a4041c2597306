package cashadvance

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollDeductionNote tags payments taken from a processed payroll.
const PayrollDeductionNote = "Payroll Deduction"

type Payment struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
	Notes  string          `json:"notes,omitempty"`
}

// Payments is stored as JSONB in insertion order.
type Payments []Payment

// Value implements driver.Valuer for database storage
func (p Payments) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

// Scan implements sql.Scanner for database retrieval
func (p *Payments) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*p = Payments{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("failed to scan Payments: invalid type")
}

func (p Payments) Total() decimal.Decimal {
	total := decimal.Zero
	for _, payment := range p {
		total = total.Add(payment.Amount)
	}
	return total
}

type CashAdvanceRecord struct {
	ID         string
	EmployeeID string
	Amount     decimal.Decimal
	Date       time.Time
	Notes      *string
	Balance    decimal.Decimal
	Payments   Payments
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	EmployeeName *string
}

func (r CashAdvanceRecord) IsOpen() bool {
	return r.Balance.IsPositive()
}
