package settings

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Settings is the process-wide payroll configuration. It is a single row.
type Settings struct {
	DefaultHoursPerShift   float64
	RushTarpCommissionRate decimal.Decimal
	RegularCommissionRate  decimal.Decimal
	LateDeductionRate      decimal.Decimal // currency per late minute
	MaxAbsencesForDayOff   int
	CustomCommissions      CustomCommissions
	UpdatedAt              time.Time
}

type CustomCommission struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

// CustomCommissions is stored as JSONB.
type CustomCommissions []CustomCommission

// Value implements driver.Valuer for database storage
func (c CustomCommissions) Value() (driver.Value, error) {
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner for database retrieval
func (c *CustomCommissions) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("failed to scan CustomCommissions: invalid type")
}

// Defaults is used until an operator saves settings for the first time.
func Defaults() Settings {
	return Settings{
		DefaultHoursPerShift:   9,
		RushTarpCommissionRate: decimal.NewFromInt(50),
		RegularCommissionRate:  decimal.NewFromInt(25),
		LateDeductionRate:      decimal.NewFromInt(1),
		MaxAbsencesForDayOff:   3,
		CustomCommissions:      CustomCommissions{},
	}
}

// CustomRate looks up a custom commission rate by id.
func (s Settings) CustomRate(id string) (decimal.Decimal, bool) {
	for _, c := range s.CustomCommissions {
		if c.ID == id {
			return c.Rate, true
		}
	}
	return decimal.Zero, false
}
