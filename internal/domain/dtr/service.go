package dtr

import "context"

type DTRService interface {
	// CheckIn resolves the scanned barcode to an employee and punches the next column.
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
	ListDTR(ctx context.Context, filter DTRFilter) ([]DTRResponse, error)
}
