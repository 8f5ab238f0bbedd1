package types

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	ierr "github.com/techsolutions/billing-service/internal/errors"
)

// DateFormat is the wire format for day-precision dates
const DateFormat = "2006-01-02"

// Date is a day-precision calendar date in UTC. Invoices carry emission
// and payment dates without a time component, so the JSON and database
// representations are date-only.
type Date struct {
	time.Time
}

// NewDate truncates t to UTC midnight
func NewDate(t time.Time) Date {
	t = t.UTC()
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// Today returns the current date in UTC
func Today() Date {
	return NewDate(time.Now().UTC())
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

// Before reports whether d is strictly before other
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d is strictly after other
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// Equal reports whether d and other are the same calendar day
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// MarshalJSON encodes the date as "YYYY-MM-DD"
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateFormat))
}

// UnmarshalJSON decodes a "YYYY-MM-DD" string
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return ierr.WithError(err).
			WithHintf("date must be in %s format", DateFormat).
			Mark(ierr.ErrValidation)
	}
	d.Time = parsed
	return nil
}

// Value implements driver.Valuer for DATE columns
func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// Scan implements sql.Scanner for DATE columns
func (d *Date) Scan(src interface{}) error {
	if src == nil {
		d.Time = time.Time{}
		return nil
	}
	t, ok := src.(time.Time)
	if !ok {
		return ierr.NewError("unsupported scan type for date").
			Mark(ierr.ErrDatabase)
	}
	*d = NewDate(t)
	return nil
}
