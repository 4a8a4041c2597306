package dtr

import (
	"strings"
	"time"

	"github.com/tarpworks/payroll-backend/internal/pkg/validator"
)

type CheckInRequest struct {
	Barcode string `json:"barcode"`
	Column  string `json:"column,omitempty"`
	Time    string `json:"time,omitempty"`
	Date    string `json:"date,omitempty"`

	ParsedDate time.Time `json:"-"`
}

// Validate defaults time and date to now.
func (r *CheckInRequest) Validate(now time.Time) error {
	var errs validator.ValidationErrors

	r.Barcode = strings.ToUpper(strings.TrimSpace(r.Barcode))
	if r.Barcode == "" {
		errs.Add("barcode", "is required")
	}
	if r.Column != "" && !Column(r.Column).Valid() {
		errs.Add("column", "must be one of am_in, am_out, pm_in, pm_out, ot_in, ot_out")
	}
	if r.Time == "" {
		r.Time = now.Format("15:04")
	} else if !validator.IsValidClock(r.Time) {
		errs.Add("time", "must be HH:MM")
	}
	if r.Date == "" {
		r.ParsedDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else if d, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "must be in YYYY-MM-DD format")
	} else {
		r.ParsedDate = d
	}

	return errs.Err()
}

type DTRResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	AMIn         string  `json:"am_in"`
	AMOut        string  `json:"am_out"`
	PMIn         string  `json:"pm_in"`
	PMOut        string  `json:"pm_out"`
	OTIn         string  `json:"ot_in"`
	OTOut        string  `json:"ot_out"`
}

func ToResponse(r DTRRecord) DTRResponse {
	return DTRResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		AMIn:         r.AMIn,
		AMOut:        r.AMOut,
		PMIn:         r.PMIn,
		PMOut:        r.PMOut,
		OTIn:         r.OTIn,
		OTOut:        r.OTOut,
	}
}

type CheckInResponse struct {
	Record       DTRResponse `json:"record"`
	EmployeeName string      `json:"employee_name"`
	Column       string      `json:"column,omitempty"`
	Time         string      `json:"time"`
	Applied      bool        `json:"applied"`
	Warning      string      `json:"warning,omitempty"`
}

// ListFilterRequest is parsed from query parameters.
type ListFilterRequest struct {
	EmployeeID string
	From       string
	To         string
}

func (r ListFilterRequest) ToFilter() (DTRFilter, error) {
	var errs validator.ValidationErrors
	var filter DTRFilter

	if r.EmployeeID != "" {
		if !validator.IsValidUUID(r.EmployeeID) {
			errs.Add("employee_id", "must be a valid UUID")
		}
		id := r.EmployeeID
		filter.EmployeeID = &id
	}
	if r.From != "" {
		d, ok := validator.IsValidDate(r.From)
		if !ok {
			errs.Add("from", "must be in YYYY-MM-DD format")
		}
		filter.From = &d
	}
	if r.To != "" {
		d, ok := validator.IsValidDate(r.To)
		if !ok {
			errs.Add("to", "must be in YYYY-MM-DD format")
		}
		filter.To = &d
	}
	if len(errs) > 0 {
		return DTRFilter{}, errs
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return DTRFilter{}, ErrInvalidDTRRange
	}

	return filter, nil
}
