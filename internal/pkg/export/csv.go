package export

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"
)

// PayrollCSV encodes rows with a header line.
func PayrollCSV(rows []PayrollRow) ([]byte, error) {
	if rows == nil {
		rows = []PayrollRow{}
	}
	var buf bytes.Buffer
	if err := gocsv.Marshal(&rows, &buf); err != nil {
		return nil, fmt.Errorf("marshal payroll csv: %w", err)
	}
	return buf.Bytes(), nil
}
