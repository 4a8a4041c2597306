package payroll

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DayEntry holds one calendar day's clock strings. Empty strings mean no punch.
type DayEntry struct {
	FirstShiftIn   string `json:"first_shift_in"`
	FirstShiftOut  string `json:"first_shift_out"`
	SecondShiftIn  string `json:"second_shift_in"`
	SecondShiftOut string `json:"second_shift_out"`
	OTIn           string `json:"ot_in"`
	OTOut          string `json:"ot_out"`
}

type EntryStatus string

const (
	EntryStatusEmpty      EntryStatus = "empty"
	EntryStatusComplete   EntryStatus = "complete"
	EntryStatusIncomplete EntryStatus = "incomplete"
)

func (d DayEntry) pairs() [3][2]string {
	return [3][2]string{
		{d.FirstShiftIn, d.FirstShiftOut},
		{d.SecondShiftIn, d.SecondShiftOut},
		{d.OTIn, d.OTOut},
	}
}

// IsEmpty reports whether no time was entered for the day.
func (d DayEntry) IsEmpty() bool {
	for _, p := range d.pairs() {
		if p[0] != "" || p[1] != "" {
			return false
		}
	}
	return true
}

// Status is incomplete when any shift has only one of in/out.
func (d DayEntry) Status() EntryStatus {
	if d.IsEmpty() {
		return EntryStatusEmpty
	}
	for _, p := range d.pairs() {
		if (p[0] == "") != (p[1] == "") {
			return EntryStatusIncomplete
		}
	}
	return EntryStatusComplete
}

// Normalized runs FormatTimeInput over every field.
func (d DayEntry) Normalized() DayEntry {
	return DayEntry{
		FirstShiftIn:   FormatTimeInput(d.FirstShiftIn),
		FirstShiftOut:  FormatTimeInput(d.FirstShiftOut),
		SecondShiftIn:  FormatTimeInput(d.SecondShiftIn),
		SecondShiftOut: FormatTimeInput(d.SecondShiftOut),
		OTIn:           FormatTimeInput(d.OTIn),
		OTOut:          FormatTimeInput(d.OTOut),
	}
}

// Fields returns the clock strings keyed by their JSON names.
func (d DayEntry) Fields() map[string]string {
	return map[string]string{
		"first_shift_in":   d.FirstShiftIn,
		"first_shift_out":  d.FirstShiftOut,
		"second_shift_in":  d.SecondShiftIn,
		"second_shift_out": d.SecondShiftOut,
		"ot_in":            d.OTIn,
		"ot_out":           d.OTOut,
	}
}

// TimeEntries maps day of month to that day's entry. It is stored as JSONB.
type TimeEntries map[int]DayEntry

// EmptyEntries returns a blank entry for every day of the period.
func (p PayPeriod) EmptyEntries(year int, month time.Month) TimeEntries {
	days := p.Days(year, month)
	entries := make(TimeEntries, len(days))
	for _, d := range days {
		entries[d] = DayEntry{}
	}
	return entries
}

// Value implements driver.Valuer for database storage
func (t TimeEntries) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *TimeEntries) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = TimeEntries{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	}
	return errors.New("failed to scan TimeEntries: invalid type")
}
