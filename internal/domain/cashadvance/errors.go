package cashadvance

import "errors"

var (
	ErrCashAdvanceNotFound   = errors.New("cash advance not found")
	ErrPaymentExceedsBalance = errors.New("payment exceeds remaining balance")
	ErrCashAdvanceSettled    = errors.New("cash advance is already fully paid")
)
