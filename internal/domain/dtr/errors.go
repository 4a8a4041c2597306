package dtr

import "errors"

var (
	ErrDTRNotFound     = errors.New("dtr record not found")
	ErrUnknownBarcode  = errors.New("barcode does not match any employee")
	ErrInvalidDTRRange = errors.New("from date must not be after to date")
)
