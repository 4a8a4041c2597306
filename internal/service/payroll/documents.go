package payroll

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
	"github.com/tarpworks/payroll-backend/internal/pkg/export"
	"github.com/tarpworks/payroll-backend/internal/pkg/printrelay"
)

func periodLabel(r payroll.PayrollRecord) string {
	days := r.PayPeriod.Days(r.Year, time.Month(r.Month))
	if len(days) == 0 {
		return fmt.Sprintf("%s %d", time.Month(r.Month), r.Year)
	}
	return fmt.Sprintf("%s %d-%d, %d", time.Month(r.Month), days[0], days[len(days)-1], r.Year)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toExportRow(r payroll.PayrollRecord) export.PayrollRow {
	return export.PayrollRow{
		EmployeeCode:     deref(r.EmployeeCode),
		EmployeeName:     deref(r.EmployeeName),
		Month:            r.Month,
		Year:             r.Year,
		PayPeriod:        string(r.PayPeriod),
		RegularHours:     r.RegularHours,
		OvertimeHours:    r.OvertimeHours,
		DayOffHours:      r.DayOffHours,
		LateMinutes:      r.LateMinutes,
		GrossPay:         money(r.GrossPay),
		TotalCommissions: money(r.TotalCommissions),
		CashAdvance:      money(r.CashAdvance),
		LateDeduction:    money(r.LateDeduction),
		TotalDeductions:  money(r.TotalDeductions),
		NetPay:           money(r.NetPay),
		Processed:        r.Processed,
	}
}

// payslip builds the printable view of a record for the employee's current terms.
func (s *PayrollServiceImpl) payslip(ctx context.Context, id string) (export.Payslip, payroll.PayrollRecord, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return export.Payslip{}, payroll.PayrollRecord{}, err
	}
	emp, err := s.employeeRepo.GetByID(ctx, record.EmployeeID)
	if err != nil {
		return export.Payslip{}, payroll.PayrollRecord{}, err
	}
	cfg, err := s.settingsService.Current(ctx)
	if err != nil {
		return export.Payslip{}, payroll.PayrollRecord{}, err
	}
	hoursPerShift := emp.ShiftHours(cfg.DefaultHoursPerShift)

	days := make([]int, 0, len(record.TimeEntries))
	for day := range record.TimeEntries {
		days = append(days, day)
	}
	sort.Ints(days)

	slip := export.Payslip{
		Company:      s.companyName,
		EmployeeName: emp.Name,
		EmployeeCode: emp.Code,
		PeriodLabel:  periodLabel(record),
		HourlyRate:   money(emp.HourlyRate(cfg.DefaultHoursPerShift)),
		GrossPay:     money(record.GrossPay),
		NetPay:       money(record.NetPay),
		Processed:    record.Processed,
	}

	for _, day := range days {
		entry := record.TimeEntries[day]
		if entry.IsEmpty() {
			continue
		}
		hours := payroll.ComputeDayHours(entry, hoursPerShift)
		in, out := entry.FirstShiftIn, entry.FirstShiftOut
		if in == "" {
			in, out = entry.SecondShiftIn, entry.SecondShiftOut
		}
		slip.Days = append(slip.Days, export.PayslipDay{
			Day:      day,
			In:       in,
			Out:      out,
			Regular:  hours.RegularHours,
			Overtime: hours.OvertimeHours,
		})
	}

	slip.Earnings = []export.PayslipLine{
		{Label: fmt.Sprintf("Regular (%.2f h)", record.RegularHours+record.DayOffHours), Amount: money(record.RegularPay)},
		{Label: fmt.Sprintf("Overtime (%.2f h)", record.OvertimeHours), Amount: money(record.OvertimePay)},
		{Label: "Commissions", Amount: money(record.TotalCommissions)},
	}
	slip.Deductions = []export.PayslipLine{
		{Label: "Cash advance", Amount: money(record.CashAdvance)},
		{Label: fmt.Sprintf("Late (%d min)", record.LateMinutes), Amount: money(record.LateDeduction)},
	}

	return slip, record, nil
}

// PayslipPDF implements payroll.PayrollService.
func (s *PayrollServiceImpl) PayslipPDF(ctx context.Context, id string) (payroll.ExportFile, error) {
	slip, record, err := s.payslip(ctx, id)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	content, err := export.PayslipPDF(slip)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	return payroll.ExportFile{
		Filename:    fmt.Sprintf("payslip-%s-%d-%02d-%s.pdf", slip.EmployeeCode, record.Year, record.Month, record.PayPeriod),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

// PrintPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) PrintPayslip(ctx context.Context, id string) error {
	slip, record, err := s.payslip(ctx, id)
	if err != nil {
		return err
	}

	html, err := export.PayslipHTML(slip)
	if err != nil {
		return err
	}

	return s.printer.Print(ctx, printrelay.PrintRequest{
		HTML:    html,
		OrderID: record.ID,
	})
}

// Export implements payroll.PayrollService.
func (s *PayrollServiceImpl) Export(ctx context.Context, filter payroll.PayrollFilter, format payroll.ExportFormat) (payroll.ExportFile, error) {
	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return payroll.ExportFile{}, err
	}

	rows := make([]export.PayrollRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toExportRow(r))
	}

	name := "payroll"
	if filter.Year != nil {
		name += fmt.Sprintf("-%d", *filter.Year)
	}
	if filter.Month != nil {
		name += fmt.Sprintf("-%02d", *filter.Month)
	}
	if filter.PayPeriod != nil {
		name += "-" + string(*filter.PayPeriod)
	}

	switch format {
	case payroll.ExportFormatCSV:
		content, err := export.PayrollCSV(rows)
		if err != nil {
			return payroll.ExportFile{}, err
		}
		return payroll.ExportFile{Filename: name + ".csv", ContentType: "text/csv", Content: content}, nil
	case payroll.ExportFormatXLSX:
		content, err := export.PayrollXLSX(rows)
		if err != nil {
			return payroll.ExportFile{}, err
		}
		return payroll.ExportFile{
			Filename:    name + ".xlsx",
			ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			Content:     content,
		}, nil
	}
	return payroll.ExportFile{}, payroll.ErrUnsupportedExportFormat
}
