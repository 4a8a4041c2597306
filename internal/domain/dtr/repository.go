package dtr

import (
	"context"
	"time"
)

type DTRRepository interface {
	List(ctx context.Context, filter DTRFilter) ([]DTRRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, date time.Time) (DTRRecord, error)

	// Upsert inserts or replaces the record keyed by employee and date.
	Upsert(ctx context.Context, record DTRRecord) (DTRRecord, error)
}
