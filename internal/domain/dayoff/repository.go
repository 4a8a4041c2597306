package dayoff

import "context"

type DayOffRepository interface {
	List(ctx context.Context, filter DayOffFilter) ([]DayOffRecord, error)
	GetByID(ctx context.Context, id string) (DayOffRecord, error)
	Create(ctx context.Context, record DayOffRecord) (DayOffRecord, error)

	// Update rewrites the date, derived period and qualification snapshot.
	Update(ctx context.Context, record DayOffRecord) (DayOffRecord, error)
	Delete(ctx context.Context, id string) error
}
