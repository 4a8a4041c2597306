package export

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// RowAppender appends processed payroll rows to an external ledger.
type RowAppender interface {
	AppendPayrollRow(ctx context.Context, row PayrollRow) error
}

// NopAppender is used when no spreadsheet is configured.
type NopAppender struct{}

func (NopAppender) AppendPayrollRow(context.Context, PayrollRow) error { return nil }

// SheetsAppender writes rows to a Google Sheets range.
type SheetsAppender struct {
	service       *sheetsapi.Service
	spreadsheetID string
	sheetRange    string
}

func NewSheetsAppender(ctx context.Context, credentialsPath, spreadsheetID, sheetRange string) (*SheetsAppender, error) {
	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(credentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}
	if sheetRange == "" {
		sheetRange = payrollSheet + "!A:P"
	}
	return &SheetsAppender{
		service:       service,
		spreadsheetID: spreadsheetID,
		sheetRange:    sheetRange,
	}, nil
}

func (a *SheetsAppender) AppendPayrollRow(ctx context.Context, row PayrollRow) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row.values()}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, a.sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", a.sheetRange, err)
	}
	return nil
}
