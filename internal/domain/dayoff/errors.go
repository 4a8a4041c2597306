package dayoff

import "errors"

var (
	ErrDayOffNotFound          = errors.New("day off not found")
	ErrDayOffExists            = errors.New("employee already has a day off on this date")
	ErrMonthAlreadyDistributed = errors.New("day offs already exist for this month")
	ErrSwapSameRecord          = errors.New("cannot swap a day off with itself")
)
