package cashadvance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(n int) time.Time {
	return time.Date(2025, time.May, n, 0, 0, 0, 0, time.UTC)
}

func TestApplyPayment_KeepsBalanceInvariant(t *testing.T) {
	r := NewAdvance("emp", d("1000"), day(1), nil)
	for _, amount := range []string{"100", "250.50", "49.50", "600"} {
		r = ApplyPayment(r, d(amount), day(2), "")
		assert.True(t, r.Amount.Equal(r.Balance.Add(r.Payments.Total())), "after %s", amount)
	}
	assert.True(t, r.Balance.IsZero())
	assert.Len(t, r.Payments, 4)
}

func TestApplyPayment_ClampsAtZero(t *testing.T) {
	r := NewAdvance("emp", d("100"), day(1), nil)
	r = ApplyPayment(r, d("150"), day(2), "")
	assert.True(t, r.Balance.IsZero())
	assert.False(t, r.IsOpen())
}

func TestApplyPayment_DoesNotShareBacking(t *testing.T) {
	orig := NewAdvance("emp", d("100"), day(1), nil)
	orig.Payments = make(Payments, 0, 4)
	a := ApplyPayment(orig, d("10"), day(2), "a")
	b := ApplyPayment(orig, d("20"), day(2), "b")
	assert.Equal(t, "a", a.Payments[0].Notes)
	assert.Equal(t, "b", b.Payments[0].Notes)
}

func TestApplyPayrollDeduction_OldestFirst(t *testing.T) {
	newer := NewAdvance("emp", d("300"), day(10), nil)
	newer.ID = "newer"
	older := NewAdvance("emp", d("200"), day(3), nil)
	older.ID = "older"
	settled := NewAdvance("emp", d("50"), day(1), nil)
	settled.ID = "settled"
	settled.Balance = decimal.Zero

	changed, remaining := ApplyPayrollDeduction([]CashAdvanceRecord{newer, settled, older}, d("250"), day(15))

	require.Len(t, changed, 2)
	assert.Equal(t, "older", changed[0].ID)
	assert.True(t, changed[0].Balance.IsZero())
	assert.Equal(t, PayrollDeductionNote, changed[0].Payments[0].Notes)
	assert.Equal(t, "newer", changed[1].ID)
	assert.True(t, d("250").Equal(changed[1].Balance))
	assert.True(t, remaining.IsZero())
}

func TestApplyPayrollDeduction_LeavesRemainder(t *testing.T) {
	r := NewAdvance("emp", d("80"), day(1), nil)

	changed, remaining := ApplyPayrollDeduction([]CashAdvanceRecord{r}, d("100"), day(15))

	require.Len(t, changed, 1)
	assert.True(t, changed[0].Balance.IsZero())
	assert.True(t, d("20").Equal(remaining))
}

func TestApplyPayrollDeduction_NothingOpen(t *testing.T) {
	changed, remaining := ApplyPayrollDeduction(nil, d("100"), day(15))
	assert.Empty(t, changed)
	assert.True(t, d("100").Equal(remaining))
}

func TestTotalBalance(t *testing.T) {
	a := NewAdvance("emp", d("100"), day(1), nil)
	b := ApplyPayment(NewAdvance("emp", d("300"), day(2), nil), d("120"), day(3), "")
	assert.True(t, d("280").Equal(TotalBalance([]CashAdvanceRecord{a, b})))
}
