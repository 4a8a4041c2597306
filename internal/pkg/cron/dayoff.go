package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/tarpworks/payroll-backend/internal/domain/dayoff"
)

type DayOffJobs struct {
	dayOffService dayoff.DayOffService
	now           func() time.Time
}

func NewDayOffJobs(dayOffService dayoff.DayOffService) *DayOffJobs {
	return &DayOffJobs{
		dayOffService: dayOffService,
		now:           time.Now,
	}
}

// RegisterJobs schedules automatic distribution on spec. An empty spec disables it.
func (j *DayOffJobs) RegisterJobs(scheduler *Scheduler, spec string) error {
	if spec == "" {
		return nil
	}
	return scheduler.AddJob("auto_distribute_day_offs", spec, j.DistributeCurrentMonth)
}

// DistributeCurrentMonth runs the auto-distributor for the current month. A
// month that already has day offs is left alone.
func (j *DayOffJobs) DistributeCurrentMonth(ctx context.Context) error {
	now := j.now()
	req := dayoff.AutoDistributeRequest{MonthRequest: dayoff.MonthRequest{Month: int(now.Month()), Year: now.Year()}}

	created, err := j.dayOffService.AutoDistribute(ctx, req)
	if errors.Is(err, dayoff.ErrMonthAlreadyDistributed) {
		slog.Info("Cron: day offs already distributed", "month", req.Month, "year", req.Year)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("Cron: day offs distributed", "month", req.Month, "year", req.Year, "count", len(created))
	return nil
}
