package cashadvance

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// NewAdvance opens an advance whose balance equals the amount lent.
func NewAdvance(employeeID string, amount decimal.Decimal, date time.Time, notes *string) CashAdvanceRecord {
	return CashAdvanceRecord{
		EmployeeID: employeeID,
		Amount:     amount,
		Date:       date,
		Notes:      notes,
		Balance:    amount,
		Payments:   Payments{},
	}
}

// ApplyPayment records a payment and lowers the balance, never below zero.
func ApplyPayment(r CashAdvanceRecord, amount decimal.Decimal, at time.Time, notes string) CashAdvanceRecord {
	payments := make(Payments, len(r.Payments), len(r.Payments)+1)
	copy(payments, r.Payments)
	r.Payments = append(payments, Payment{Amount: amount, Date: at, Notes: notes})

	r.Balance = r.Balance.Sub(amount)
	if r.Balance.IsNegative() {
		r.Balance = decimal.Zero
	}
	return r
}

// ApplyPayrollDeduction spreads amount over the open advances, oldest first
// by date and then creation time. It returns only the records it changed and
// whatever part of amount was left unapplied.
func ApplyPayrollDeduction(records []CashAdvanceRecord, amount decimal.Decimal, at time.Time) ([]CashAdvanceRecord, decimal.Decimal) {
	open := make([]CashAdvanceRecord, 0, len(records))
	for _, r := range records {
		if r.IsOpen() {
			open = append(open, r)
		}
	}
	sort.SliceStable(open, func(i, j int) bool {
		if !open[i].Date.Equal(open[j].Date) {
			return open[i].Date.Before(open[j].Date)
		}
		return open[i].CreatedAt.Before(open[j].CreatedAt)
	})

	remaining := amount
	var changed []CashAdvanceRecord
	for _, r := range open {
		if !remaining.IsPositive() {
			break
		}
		pay := decimal.Min(remaining, r.Balance)
		changed = append(changed, ApplyPayment(r, pay, at, PayrollDeductionNote))
		remaining = remaining.Sub(pay)
	}
	return changed, remaining
}

// TotalBalance sums the outstanding balance of records.
func TotalBalance(records []CashAdvanceRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Balance)
	}
	return total
}
