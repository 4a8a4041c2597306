package employee

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tarpworks/payroll-backend/internal/domain/employee"
	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
	"github.com/tarpworks/payroll-backend/internal/repository/memory"
	settingssvc "github.com/tarpworks/payroll-backend/internal/service/settings"
)

type fakeRecalculator struct {
	calls []employee.Employee
}

func (f *fakeRecalculator) RecalculateForEmployee(ctx context.Context, emp employee.Employee) (employee.RecalculationResult, error) {
	f.calls = append(f.calls, emp)
	return employee.RecalculationResult{Recalculated: 2}, nil
}

func newTestService() (employee.EmployeeService, *fakeRecalculator) {
	store := memory.NewStore()
	recalc := &fakeRecalculator{}
	svc := NewEmployeeService(
		memory.EmployeeRepository{Store: store},
		settingssvc.NewSettingsService(memory.SettingsRepository{Store: store}),
		recalc,
	)
	return svc, recalc
}

func TestEmployeeService_CreateEmployee(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:         "  Rosa  ",
		RatePerShift: decimal.NewFromInt(810),
	})
	require.NoError(t, err)

	assert.Equal(t, "Rosa", created.Name)
	assert.Regexp(t, `^EMP-[0-9A-F]{8}$`, created.Code)
	assert.Equal(t, "first", created.ShiftType)
	// no shift length: falls back to the 9 hour default
	assert.Equal(t, "90.00", created.HourlyRate.StringFixed(2))

	_, err = svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Other", Code: created.Code})
	assert.ErrorIs(t, err, employee.ErrEmployeeCodeExists)
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{ShiftType: "night"})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "shift_type")
}

func TestEmployeeService_UpdateEmployee_RateChangeTriggersRecalculation(t *testing.T) {
	svc, recalc := newTestService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Code: "EMP001", Name: "Rosa", RatePerShift: decimal.NewFromInt(900), HoursPerShift: 9,
	})
	require.NoError(t, err)

	name := "Rosa M."
	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Name: &name})
	require.NoError(t, err)
	assert.Nil(t, resp.Recalculation)
	assert.Empty(t, recalc.calls)

	rate := decimal.NewFromInt(990)
	resp, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, RatePerShift: &rate})
	require.NoError(t, err)
	require.NotNil(t, resp.Recalculation)
	assert.Equal(t, 2, resp.Recalculation.Recalculated)
	require.Len(t, recalc.calls, 1)
	assert.True(t, recalc.calls[0].RatePerShift.Equal(rate))
	assert.Equal(t, "110.00", resp.Employee.HourlyRate.StringFixed(2))
}

func TestEmployeeService_BarcodePNG(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Code: "EMP001", Name: "Rosa"})
	require.NoError(t, err)

	png, err := svc.BarcodePNG(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
	_, err = svc.BarcodePNG(ctx, created.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
