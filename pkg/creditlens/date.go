package creditlens

import (
	"fmt"
	"strings"
	"time"
)

// Date is a custom type that handles date-only JSON values. Providers send
// dates as "YYYY-MM-DD" strings, full RFC3339 timestamps, or omit them
// entirely; a value that cannot be parsed is kept as the zero Date so one
// bad field never fails the whole record.
type Date struct {
	time.Time
}

// NewDate creates a Date from a time value
func NewDate(t time.Time) Date {
	return Date{Time: t}
}

// UnmarshalJSON implements json.Unmarshaler for Date
func (d *Date) UnmarshalJSON(data []byte) error {
	// Remove quotes
	str := strings.Trim(string(data), `"`)

	// Handle null/empty
	if str == "" || str == "null" {
		d.Time = time.Time{}
		return nil
	}

	// Try parsing as date only first (YYYY-MM-DD)
	t, err := time.Parse("2006-01-02", str)
	if err == nil {
		d.Time = t
		return nil
	}

	// Try parsing as full timestamp (RFC3339)
	t, err = time.Parse(time.RFC3339, str)
	if err == nil {
		d.Time = t
		return nil
	}

	// Try parsing with time but no timezone
	t, err = time.Parse("2006-01-02T15:04:05", str)
	if err == nil {
		d.Time = t
		return nil
	}

	// Unparseable date: leave zero rather than failing the record
	d.Time = time.Time{}
	return nil
}

// MarshalJSON implements json.Marshaler for Date
func (d Date) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	// Format as date only
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format("2006-01-02"))), nil
}

// String returns the date as a string
func (d Date) String() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// MonthKey returns the "YYYY-MM" bucket key for the date, or "" for a
// zero date. Lexicographic order of keys matches chronological order.
func (d Date) MonthKey() string {
	if d.Time.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01")
}
