package billing_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    billing.Date
		wantErr bool
	}{
		{in: "2024-11-10", want: billing.Date{Year: 2024, Month: time.November, Day: 10}},
		{in: "2024-02-29", want: billing.Date{Year: 2024, Month: time.February, Day: 29}},
		{in: "0001-01-01", want: billing.Date{Year: 1, Month: time.January, Day: 1}},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-13-01", wantErr: true},
		{in: "2024-00-10", wantErr: true},
		{in: "2024-04-31", wantErr: true},
		{in: "2024-1-10", wantErr: true},
		{in: "2024/11/10", wantErr: true},
		{in: "2024-11-10T00:00:00Z", wantErr: true},
		{in: "+024-11-10", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := billing.ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestDateOf_IgnoresOffset(t *testing.T) {
	// 23:30 in UTC-3 is already the next day in UTC.
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2024, time.November, 30, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-11-30", billing.DateOf(ts).String())
}

func TestDate_Arithmetic(t *testing.T) {
	d := billing.MustParseDate("2024-02-28")
	assert.Equal(t, "2024-02-29", d.AddDays(1).String())
	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(billing.MustParseDate("2024-03-01")))
	assert.Equal(t, -28, d.DaysUntil(billing.MustParseDate("2024-01-31")))
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.Equal(t, 0, d.Compare(d))
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, billing.DaysIn(2000, time.February))
	assert.Equal(t, 28, billing.DaysIn(1900, time.February))
	assert.Equal(t, 29, billing.DaysIn(2024, time.February))
	assert.Equal(t, 28, billing.DaysIn(2023, time.February))
	assert.Equal(t, 30, billing.DaysIn(2023, time.April))
	assert.Equal(t, 31, billing.DaysIn(2023, time.December))
	assert.Equal(t, 28, billing.ClampDay(2023, time.February, 31))
	assert.Equal(t, 15, billing.ClampDay(2023, time.February, 15))
}

func TestCompetencia(t *testing.T) {
	c := billing.MustParseCompetencia("2024-11-01")
	assert.Equal(t, "2024-12-01", c.Next().String())
	assert.Equal(t, "2025-01-01", c.AddMonths(2).String())
	assert.Equal(t, "2023-11-01", c.AddMonths(-12).String())
	assert.Equal(t, "2023-12-01", c.AddMonths(-11).String())
	assert.Equal(t, "2026-02-01", c.AddMonths(15).String())
	assert.Equal(t, 3, c.MonthsUntil(billing.MustParseCompetencia("2025-02")))
	assert.True(t, c.Before(c.Next()))
	assert.False(t, c.After(c))
	assert.Equal(t, "2024-11-30", c.Day(31).String())

	_, err := billing.ParseCompetencia("2024-11-15")
	assert.ErrorIs(t, err, billing.ErrInvalidInput)
	_, err = billing.ParseCompetencia("2024-13")
	assert.ErrorIs(t, err, billing.ErrInvalidInput)
	_, err = billing.ParseCompetencia("nov/2024")
	assert.ErrorIs(t, err, billing.ErrInvalidInput)
}

func TestCompetencia_JSON(t *testing.T) {
	type payload struct {
		Competencia billing.Competencia `json:"competencia"`
		Date        billing.Date        `json:"date"`
		Amount      billing.Cents       `json:"amount"`
	}

	out, err := json.Marshal(payload{
		Competencia: billing.MustParseCompetencia("2025-01"),
		Date:        billing.MustParseDate("2024-12-29"),
		Amount:      33334,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"competencia":"2025-01-01","date":"2024-12-29","amount":"333.34"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"competencia":"2025-01-01","date":"2024-12-29","amount":100.5}`), &in))
	assert.Equal(t, billing.Cents(10050), in.Amount)
	assert.Equal(t, time.January, in.Competencia.Month)

	assert.Error(t, json.Unmarshal([]byte(`{"amount":"1.001"}`), &in))
}

func TestCompetencia_Scan(t *testing.T) {
	var c billing.Competencia
	require.NoError(t, c.Scan(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-01", c.String())

	require.NoError(t, c.Scan([]byte("2024-04-01")))
	assert.Equal(t, "2024-04-01", c.String())

	v, err := c.Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", v)

	assert.Error(t, c.Scan(42))
}

func TestCents(t *testing.T) {
	c, err := billing.ToCents(decimal.RequireFromString("10.5"))
	require.NoError(t, err)
	assert.Equal(t, billing.Cents(1050), c)
	assert.Equal(t, "10.50", c.String())

	_, err = billing.ToCents(decimal.RequireFromString("0.001"))
	assert.ErrorIs(t, err, billing.ErrInvalidInput)

	c, err = billing.ToCents(decimal.RequireFromString("999999999999.99"))
	require.NoError(t, err)
	assert.Equal(t, billing.MaxCents, c)

	for _, raw := range []string{"1000000000000", "-1000000000000", "1e20"} {
		_, err = billing.ToCents(decimal.RequireFromString(raw))
		assert.ErrorIs(t, err, billing.ErrInvalidInput, raw)
	}

	assert.Equal(t, billing.Cents(1235), billing.RoundCents(decimal.RequireFromString("12.345")))

	var scanned billing.Cents
	require.NoError(t, scanned.Scan([]byte("333.34")))
	assert.Equal(t, billing.Cents(33334), scanned)
}
