// Package billing resolves credit card billing cycles (competências) and
// splits purchases into monthly installments.
//
// Everything in this package is calendar arithmetic on plain integers. No
// value here carries a time zone and no function reads the clock, so results
// only depend on the arguments.
package billing

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrInvalidInput is returned (wrapped) for every rejected argument.
var ErrInvalidInput = errors.New("invalid input")

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// Date is a calendar date without time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date and checks that it exists in the calendar.
func NewDate(year int, month time.Month, day int) (Date, error) {
	d := Date{Year: year, Month: month, Day: day}
	if err := d.Validate(); err != nil {
		return Date{}, err
	}
	return d, nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, invalidf("date %q must be formatted as YYYY-MM-DD", s)
	}
	year, err := parseDigits(s[0:4])
	if err != nil {
		return Date{}, invalidf("date %q has an invalid year", s)
	}
	month, err := parseDigits(s[5:7])
	if err != nil {
		return Date{}, invalidf("date %q has an invalid month", s)
	}
	day, err := parseDigits(s[8:10])
	if err != nil {
		return Date{}, invalidf("date %q has an invalid day", s)
	}
	return NewDate(year, time.Month(month), day)
}

// MustParseDate is ParseDate for literals known to be valid.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar date t shows in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Validate reports whether d is a real calendar day.
func (d Date) Validate() error {
	if d.Year < 1 || d.Year > 9999 {
		return invalidf("year %d out of range", d.Year)
	}
	if d.Month < time.January || d.Month > time.December {
		return invalidf("month %d out of range", int(d.Month))
	}
	if d.Day < 1 || d.Day > DaysIn(d.Year, d.Month) {
		return invalidf("day %d does not exist in %04d-%02d", d.Day, d.Year, int(d.Month))
	}
	return nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Competencia returns the month d falls in.
func (d Date) Competencia() Competencia {
	return Competencia{Year: d.Year, Month: d.Month}
}

// Compare returns -1, 0 or 1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }

// AddDays moves d by n days. It goes through time.Time in UTC, which has no
// daylight saving transitions, so whole days stay whole days.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// DaysUntil returns the number of days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

// Time returns midnight UTC of d, for storage layers that need a time.Time.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores d in a DATE column.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan reads a DATE column, keeping only the calendar fields.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into Date", src)
}

func (d *Date) scanString(s string) error {
	if len(s) > 10 {
		s = s[:10]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// ClampDay returns day limited to the last day of the month.
func ClampDay(year int, month time.Month, day int) int {
	if last := DaysIn(year, month); day > last {
		return last
	}
	return day
}

func parseDigits(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non digit %q", r)
		}
	}
	return strconv.Atoi(s)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
