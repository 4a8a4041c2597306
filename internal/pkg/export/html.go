package export

import (
	"bytes"
	"fmt"
	"html/template"
)

var payslipTemplate = template.Must(template.New("payslip").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
body { font-family: monospace; font-size: 12px; width: 72mm; }
h1 { font-size: 14px; margin: 0; }
table { width: 100%; border-collapse: collapse; }
td.amount { text-align: right; }
.total { font-weight: bold; border-top: 1px dashed #000; }
</style>
</head>
<body>
<h1>{{.Company}}</h1>
<p>PAYSLIP{{if not .Processed}} (DRAFT){{end}}<br>
{{.EmployeeName}} ({{.EmployeeCode}})<br>
{{.PeriodLabel}}<br>
Rate/hr: {{.HourlyRate}}</p>
<table>
{{range .Earnings}}<tr><td>{{.Label}}</td><td class="amount">{{.Amount}}</td></tr>
{{end}}<tr class="total"><td>Gross</td><td class="amount">{{.GrossPay}}</td></tr>
{{range .Deductions}}<tr><td>{{.Label}}</td><td class="amount">-{{.Amount}}</td></tr>
{{end}}<tr class="total"><td>Net</td><td class="amount">{{.NetPay}}</td></tr>
</table>
</body>
</html>
`))

// PayslipHTML renders the receipt-width payslip sent to the print relay.
func PayslipHTML(p Payslip) (string, error) {
	var buf bytes.Buffer
	if err := payslipTemplate.Execute(&buf, p); err != nil {
		return "", fmt.Errorf("render payslip html: %w", err)
	}
	return buf.String(), nil
}
