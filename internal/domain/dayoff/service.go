package dayoff

import (
	"context"

	"github.com/tarpworks/payroll-backend/internal/domain/payroll"
)

type DayOffService interface {
	ListDayOffs(ctx context.Context, filter DayOffFilter) ([]DayOffResponse, error)
	CreateDayOff(ctx context.Context, req CreateDayOffRequest) (DayOffResponse, error)
	DeleteDayOff(ctx context.Context, id string) error

	// AutoDistribute gives every employee one day off in the month.
	AutoDistribute(ctx context.Context, req AutoDistributeRequest) ([]DayOffResponse, error)

	// DeleteMonth removes all day offs of the month and returns how many were deleted.
	DeleteMonth(ctx context.Context, req MonthRequest) (int, error)
	Swap(ctx context.Context, req SwapDayOffRequest) ([]DayOffResponse, error)
	Qualification(ctx context.Context, req QualificationRequest) (Qualification, error)
}

// PeriodRecalculator recomputes stored payroll after the day offs of a pay period change.
type PeriodRecalculator interface {
	RecalculatePeriod(ctx context.Context, employeeID string, month, year int, period payroll.PayPeriod) error
}
