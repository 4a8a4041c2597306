package validator

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns nil when no errors were collected.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidUUID accepts any RFC 4122 UUID.
func IsValidUUID(id string) bool {
	return uuid.Validate(id) == nil
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Phone number validation (PH mobile: 09xxxxxxxxx, 639xxxxxxxxx or +639xxxxxxxxx)
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")

	switch {
	case strings.HasPrefix(phone, "09"):
		return len(phone) == 11 && IsNumeric(phone)
	case strings.HasPrefix(phone, "+639"):
		return len(phone) == 13 && IsNumeric(phone[1:])
	case strings.HasPrefix(phone, "639"):
		return len(phone) == 12 && IsNumeric(phone)
	}
	return false
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}

var employeeCodeRegex = regexp.MustCompile(`^[A-Z0-9-]{3,32}$`)

// IsValidEmployeeCode checks the barcode payload printed on time-clock cards.
func IsValidEmployeeCode(code string) bool {
	return employeeCodeRegex.MatchString(code)
}

var clockRegex = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

// IsValidClock reports whether s is a 24-hour HH:MM time.
func IsValidClock(s string) bool {
	m := clockRegex.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	h, _ := strconv.Atoi(m[1])
	min, _ := strconv.Atoi(m[2])
	return h <= 23 && min <= 59
}

// IsValidMonth checks a 1-based calendar month.
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValidYear accepts the years the business keeps records for.
func IsValidYear(year int) bool {
	return year >= 2000 && year <= 2100
}
