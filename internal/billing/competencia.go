package billing

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Competencia is the year and month an invoice covers. Its external form is
// the first day of that month, YYYY-MM-01.
type Competencia struct {
	Year  int
	Month time.Month
}

// NewCompetencia validates the month and builds a Competencia.
func NewCompetencia(year int, month time.Month) (Competencia, error) {
	c := Competencia{Year: year, Month: month}
	if err := c.Validate(); err != nil {
		return Competencia{}, err
	}
	return c, nil
}

// ParseCompetencia accepts YYYY-MM-01 or YYYY-MM.
func ParseCompetencia(s string) (Competencia, error) {
	switch len(s) {
	case 7:
		d, err := ParseDate(s + "-01")
		if err != nil {
			return Competencia{}, invalidf("competencia %q must be formatted as YYYY-MM-01", s)
		}
		return d.Competencia(), nil
	case 10:
		d, err := ParseDate(s)
		if err != nil {
			return Competencia{}, err
		}
		if d.Day != 1 {
			return Competencia{}, invalidf("competencia %q must be the first day of a month", s)
		}
		return d.Competencia(), nil
	}
	return Competencia{}, invalidf("competencia %q must be formatted as YYYY-MM-01", s)
}

// MustParseCompetencia is ParseCompetencia for literals known to be valid.
func MustParseCompetencia(s string) Competencia {
	c, err := ParseCompetencia(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Competencia) Validate() error {
	if c.Year < 1 || c.Year > 9999 {
		return invalidf("year %d out of range", c.Year)
	}
	if c.Month < time.January || c.Month > time.December {
		return invalidf("month %d out of range", int(c.Month))
	}
	return nil
}

// IsZero reports whether c is the zero value.
func (c Competencia) IsZero() bool {
	return c.Year == 0 && c.Month == 0
}

// String formats c as YYYY-MM-01.
func (c Competencia) String() string {
	return fmt.Sprintf("%04d-%02d-01", c.Year, int(c.Month))
}

// FirstDay returns the first calendar day of c.
func (c Competencia) FirstDay() Date {
	return Date{Year: c.Year, Month: c.Month, Day: 1}
}

// Day returns the given day of c clamped to the month length.
func (c Competencia) Day(day int) Date {
	return Date{Year: c.Year, Month: c.Month, Day: ClampDay(c.Year, c.Month, day)}
}

// AddMonths moves c by n months, n may be negative.
func (c Competencia) AddMonths(n int) Competencia {
	idx := c.Year*12 + int(c.Month) - 1 + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return Competencia{Year: year, Month: time.Month(month + 1)}
}

// Next is AddMonths(1).
func (c Competencia) Next() Competencia {
	return c.AddMonths(1)
}

// MonthsUntil returns how many months o is after c.
func (c Competencia) MonthsUntil(o Competencia) int {
	return (o.Year*12 + int(o.Month)) - (c.Year*12 + int(c.Month))
}

// Compare returns -1, 0 or 1 depending on whether c is before, equal to or after o.
func (c Competencia) Compare(o Competencia) int {
	return -sign(c.MonthsUntil(o))
}

func (c Competencia) Before(o Competencia) bool { return c.Compare(o) < 0 }
func (c Competencia) After(o Competencia) bool  { return c.Compare(o) > 0 }

// MarshalText implements encoding.TextMarshaler.
func (c Competencia) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Competencia) UnmarshalText(b []byte) error {
	parsed, err := ParseCompetencia(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores c in a DATE column as the first of the month.
func (c Competencia) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan reads a DATE column. The driver hands dates over as time.Time at
// midnight, only the calendar fields are kept.
func (c *Competencia) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = DateOf(v).Competencia()
		return nil
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	case nil:
		*c = Competencia{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into Competencia", src)
}

func (c *Competencia) scanString(s string) error {
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := ParseDate(s)
	if err != nil {
		return err
	}
	*c = d.Competencia()
	return nil
}
