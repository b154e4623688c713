package billing

import (
	"bytes"
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cents is an amount of money in minor units.
type Cents int64

// MaxCents is the largest amount a NUMERIC(14,2) column holds.
const MaxCents Cents = 99999999999999

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(int64(MaxCents))
)

// ToCents converts a decimal amount to cents. Amounts with more than two
// decimal places are rejected instead of rounded, as are amounts beyond
// MaxCents in either direction.
func ToCents(amount decimal.Decimal) (Cents, error) {
	shifted := amount.Mul(hundred)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, invalidf("amount %s has more than two decimal places", amount.String())
	}
	if shifted.Abs().GreaterThan(maxCents) {
		return 0, invalidf("amount %s exceeds %s", amount.String(), MaxCents.String())
	}
	return Cents(shifted.IntPart()), nil
}

// Decimal converts c back to a decimal with two places.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

// String formats c with two decimal places.
func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// RoundCents rounds an arbitrary decimal to the nearest cent, half away from zero.
func RoundCents(amount decimal.Decimal) Cents {
	return Cents(amount.Mul(hundred).Round(0).IntPart())
}

// MarshalJSON writes c as a string with two decimals, e.g. "333.34".
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (c *Cents) UnmarshalJSON(b []byte) error {
	raw := string(bytes.Trim(b, `"`))
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return invalidf("amount %s is not a number", string(b))
	}
	parsed, err := ToCents(amount)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value stores c in a NUMERIC(14,2) column.
func (c Cents) Value() (driver.Value, error) {
	return c.String(), nil
}

// Scan reads a NUMERIC column.
func (c *Cents) Scan(src any) error {
	var raw string
	switch v := src.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	case int64:
		*c = Cents(v * 100)
		return nil
	case float64:
		*c = RoundCents(decimal.NewFromFloat(v))
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Cents", src)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return fmt.Errorf("cannot scan %q into Cents: %w", raw, err)
	}
	*c = RoundCents(amount)
	return nil
}
