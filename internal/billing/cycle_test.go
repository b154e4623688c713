package billing_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ObsidianSy/Monatary-Mind-sub000/internal/billing"
)

func TestResolveCompetencia(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		closingDay int
		want       string
	}{
		{name: "after closing day rolls to next month", date: "2024-11-10", closingDay: 5, want: "2024-12-01"},
		{name: "before closing day stays", date: "2024-11-03", closingDay: 5, want: "2024-11-01"},
		{name: "closing day itself stays", date: "2024-11-05", closingDay: 5, want: "2024-11-01"},
		{name: "december before closing", date: "2024-12-29", closingDay: 30, want: "2024-12-01"},
		{name: "december rolls into january", date: "2024-12-29", closingDay: 28, want: "2025-01-01"},
		{name: "last day of december closing 31", date: "2024-12-31", closingDay: 31, want: "2024-12-01"},
		{name: "closing 31 in non leap february", date: "2023-02-28", closingDay: 31, want: "2023-02-01"},
		{name: "closing 31 in leap february", date: "2024-02-29", closingDay: 31, want: "2024-02-01"},
		{name: "closing 30 clamps in february", date: "2024-02-29", closingDay: 30, want: "2024-02-01"},
		{name: "closing 28 in leap february rolls", date: "2024-02-29", closingDay: 28, want: "2024-03-01"},
		{name: "closing 31 in april", date: "2024-04-30", closingDay: 31, want: "2024-04-01"},
		{name: "closing day 1", date: "2024-07-02", closingDay: 1, want: "2024-08-01"},
		{name: "first of month closing 1", date: "2024-07-01", closingDay: 1, want: "2024-07-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := billing.ResolveCompetencia(billing.MustParseDate(tt.date), tt.closingDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestResolveCompetencia_AllClosingDays(t *testing.T) {
	for _, year := range []int{2023, 2024} {
		for month := time.January; month <= time.December; month++ {
			days := billing.DaysIn(year, month)
			for day := 1; day <= days; day++ {
				for closing := 1; closing <= 31; closing++ {
					date := billing.Date{Year: year, Month: month, Day: day}
					got, err := billing.ResolveCompetencia(date, closing)
					require.NoError(t, err)

					own := billing.Competencia{Year: year, Month: month}
					effective := closing
					if effective > days {
						effective = days
					}
					if day <= effective {
						assert.Equal(t, own, got, "%s closing %d", date, closing)
					} else {
						want := own.Next()
						assert.Equal(t, want, got, "%s closing %d", date, closing)
						if month == time.December {
							assert.Equal(t, year+1, got.Year)
							assert.Equal(t, time.January, got.Month)
						}
					}
				}
			}
		}
	}
}

func TestResolveCompetencia_ClampMatchesLastDay(t *testing.T) {
	for _, tc := range []struct {
		date    string
		lastDay int
	}{
		{"2023-02-28", 28},
		{"2024-02-29", 29},
		{"2023-02-27", 28},
	} {
		d := billing.MustParseDate(tc.date)
		with31, err := billing.ResolveCompetencia(d, 31)
		require.NoError(t, err)
		withLast, err := billing.ResolveCompetencia(d, tc.lastDay)
		require.NoError(t, err)
		assert.Equal(t, withLast, with31, tc.date)
	}
}

func TestResolveCompetencia_InvalidInput(t *testing.T) {
	d := billing.MustParseDate("2024-11-10")
	for _, closing := range []int{-1, 0, 32, 100} {
		_, err := billing.ResolveCompetencia(d, closing)
		assert.True(t, errors.Is(err, billing.ErrInvalidInput), "closing day %d", closing)
	}

	_, err := billing.ResolveCompetencia(billing.Date{Year: 2023, Month: time.February, Day: 29}, 5)
	assert.ErrorIs(t, err, billing.ErrInvalidInput)
}

func TestResolveCompetencia_Deterministic(t *testing.T) {
	d := billing.MustParseDate("2024-12-29")
	first, err := billing.ResolveCompetencia(d, 28)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]billing.Competencia, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = billing.ResolveCompetencia(d, 28)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, first, r)
	}
}

func TestCycle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cycle   billing.Cycle
		wantErr bool
	}{
		{name: "valid", cycle: billing.Cycle{ClosingDay: 5, DueDay: 15}},
		{name: "bounds", cycle: billing.Cycle{ClosingDay: 31, DueDay: 1}},
		{name: "closing zero", cycle: billing.Cycle{ClosingDay: 0, DueDay: 10}, wantErr: true},
		{name: "closing 32", cycle: billing.Cycle{ClosingDay: 32, DueDay: 10}, wantErr: true},
		{name: "due zero", cycle: billing.Cycle{ClosingDay: 5, DueDay: 0}, wantErr: true},
		{name: "due 32", cycle: billing.Cycle{ClosingDay: 5, DueDay: 32}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cycle.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, billing.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCycle_Dates(t *testing.T) {
	tests := []struct {
		name        string
		cycle       billing.Cycle
		competencia string
		wantClosing string
		wantDue     string
	}{
		{
			name:        "due after closing in same month",
			cycle:       billing.Cycle{ClosingDay: 5, DueDay: 15},
			competencia: "2024-11-01",
			wantClosing: "2024-11-05",
			wantDue:     "2024-11-15",
		},
		{
			name:        "due before closing falls in next month",
			cycle:       billing.Cycle{ClosingDay: 25, DueDay: 5},
			competencia: "2024-12-01",
			wantClosing: "2024-12-25",
			wantDue:     "2025-01-05",
		},
		{
			name:        "both clamp in february",
			cycle:       billing.Cycle{ClosingDay: 30, DueDay: 31},
			competencia: "2023-02-01",
			wantClosing: "2023-02-28",
			wantDue:     "2023-02-28",
		},
		{
			name:        "due equal to closing goes to next month",
			cycle:       billing.Cycle{ClosingDay: 10, DueDay: 10},
			competencia: "2024-01-01",
			wantClosing: "2024-01-10",
			wantDue:     "2024-02-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := billing.MustParseCompetencia(tt.competencia)
			assert.Equal(t, tt.wantClosing, tt.cycle.ClosingDate(c).String())
			assert.Equal(t, tt.wantDue, tt.cycle.DueDate(c).String())
		})
	}
}

func TestCycle_Resolve(t *testing.T) {
	c := billing.Cycle{ClosingDay: 5, DueDay: 15}
	got, err := c.Resolve(billing.MustParseDate("2024-11-10"))
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", got.String())

	_, err = billing.Cycle{ClosingDay: 5, DueDay: 40}.Resolve(billing.MustParseDate("2024-11-10"))
	assert.ErrorIs(t, err, billing.ErrInvalidInput)
}
