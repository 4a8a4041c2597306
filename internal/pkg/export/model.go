// Package export renders payroll data as CSV, XLSX, PDF and printable HTML.
package export

// PayrollRow is one record in a period export. Money is pre-formatted.
type PayrollRow struct {
	EmployeeCode     string  `csv:"employee_code"`
	EmployeeName     string  `csv:"employee_name"`
	Month            int     `csv:"month"`
	Year             int     `csv:"year"`
	PayPeriod        string  `csv:"pay_period"`
	RegularHours     float64 `csv:"regular_hours"`
	OvertimeHours    float64 `csv:"overtime_hours"`
	DayOffHours      float64 `csv:"day_off_hours"`
	LateMinutes      int     `csv:"late_minutes"`
	GrossPay         string  `csv:"gross_pay"`
	TotalCommissions string  `csv:"total_commissions"`
	CashAdvance      string  `csv:"cash_advance"`
	LateDeduction    string  `csv:"late_deduction"`
	TotalDeductions  string  `csv:"total_deductions"`
	NetPay           string  `csv:"net_pay"`
	Processed        bool    `csv:"processed"`
}

var payrollHeader = []string{
	"Employee Code", "Employee Name", "Month", "Year", "Pay Period",
	"Regular Hours", "Overtime Hours", "Day Off Hours", "Late Minutes",
	"Gross Pay", "Commissions", "Cash Advance", "Late Deduction",
	"Total Deductions", "Net Pay", "Processed",
}

func (r PayrollRow) values() []interface{} {
	return []interface{}{
		r.EmployeeCode, r.EmployeeName, r.Month, r.Year, r.PayPeriod,
		r.RegularHours, r.OvertimeHours, r.DayOffHours, r.LateMinutes,
		r.GrossPay, r.TotalCommissions, r.CashAdvance, r.LateDeduction,
		r.TotalDeductions, r.NetPay, r.Processed,
	}
}

// PayslipDay is one worked day on a payslip.
type PayslipDay struct {
	Day      int
	In       string
	Out      string
	Regular  float64
	Overtime float64
}

// PayslipLine is a labelled amount.
type PayslipLine struct {
	Label  string
	Amount string
}

// Payslip is everything printed on one employee's slip.
type Payslip struct {
	Company      string
	EmployeeName string
	EmployeeCode string
	PeriodLabel  string
	HourlyRate   string
	Days         []PayslipDay
	Earnings     []PayslipLine
	Deductions   []PayslipLine
	GrossPay     string
	NetPay       string
	Processed    bool
}
