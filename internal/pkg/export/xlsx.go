package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const payrollSheet = "Payroll"

// PayrollXLSX writes rows to a single-sheet workbook with a bold header row.
func PayrollXLSX(rows []PayrollRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(payrollHeader))
	for i, h := range payrollHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(payrollSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(payrollHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(payrollSheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row.values()
		if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
