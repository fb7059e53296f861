package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		input   string
		want    Kind
		wantErr bool
	}{
		{input: "month", want: Month},
		{input: "Year", want: Year},
		{input: "last_year", want: LastYear},
		{input: "last-year", want: LastYear},
		{input: "custom", want: Custom},
		{input: "fortnight", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseKind(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthPeriodBoundaries(t *testing.T) {
	sel := NewSelector(Month, date(2024, time.March, 15))

	assert.True(t, sel.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)), "first instant of the month is inside")
	assert.True(t, sel.Contains(time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, sel.Contains(time.Date(2024, time.February, 28, 23, 59, 59, 0, time.UTC)))
	assert.False(t, sel.Contains(date(2024, time.April, 1)))
	assert.False(t, sel.Contains(date(2023, time.March, 15)), "same month of another year is outside")
}

func TestYearPeriod(t *testing.T) {
	sel := NewSelector(Year, date(2024, time.March, 15))

	assert.True(t, sel.Contains(date(2024, time.January, 1)))
	assert.True(t, sel.Contains(date(2024, time.December, 31)))
	assert.False(t, sel.Contains(date(2023, time.December, 31)))
	assert.False(t, sel.Contains(date(2025, time.January, 1)))
}

func TestLastYearIgnoresAnchor(t *testing.T) {
	now := func() time.Time { return date(2024, time.June, 1) }
	// Anchor far away on purpose: last_year is pinned to the wall clock.
	sel := NewSelector(LastYear, date(1999, time.January, 1)).WithNow(now)

	assert.True(t, sel.Contains(date(2023, time.July, 4)))
	assert.False(t, sel.Contains(date(2024, time.July, 4)))
	assert.False(t, sel.Contains(date(1998, time.July, 4)))
	assert.Equal(t, "2023 (last year)", sel.Label())
}

func TestCustomPeriodInclusiveBounds(t *testing.T) {
	sel := NewCustomSelector(date(2024, time.March, 10), date(2024, time.March, 20))

	assert.True(t, sel.Contains(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, sel.Contains(time.Date(2024, time.March, 20, 23, 59, 59, 999_000_000, time.UTC)), "end day is inclusive to the last millisecond")
	assert.False(t, sel.Contains(time.Date(2024, time.March, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, sel.Contains(time.Date(2024, time.March, 21, 0, 0, 0, 0, time.UTC)))
}

func TestCustomPeriodOpenBoundsAcceptEverything(t *testing.T) {
	tests := []struct {
		name string
		sel  Selector
	}{
		{name: "no start", sel: NewCustomSelector(time.Time{}, date(2024, time.March, 20))},
		{name: "no end", sel: NewCustomSelector(date(2024, time.March, 10), time.Time{})},
		{name: "no bounds", sel: NewCustomSelector(time.Time{}, time.Time{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.sel.Contains(date(1970, time.January, 1)))
			assert.True(t, tt.sel.Contains(date(2999, time.December, 31)))
		})
	}
}

func TestShift(t *testing.T) {
	tests := []struct {
		name   string
		sel    Selector
		offset int
		want   time.Time
	}{
		{name: "month forward", sel: NewSelector(Month, date(2024, time.March, 15)), offset: 1, want: date(2024, time.April, 15)},
		{name: "month back across year", sel: NewSelector(Month, date(2024, time.January, 15)), offset: -1, want: date(2023, time.December, 15)},
		{name: "month forward across year", sel: NewSelector(Month, date(2024, time.November, 2)), offset: 3, want: date(2025, time.February, 2)},
		{name: "year forward", sel: NewSelector(Year, date(2024, time.March, 15)), offset: 2, want: date(2026, time.March, 15)},
		{name: "year back", sel: NewSelector(Year, date(2024, time.March, 15)), offset: -1, want: date(2023, time.March, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.sel.Shift(tt.offset)
			assert.Equal(t, tt.want, got.Anchor)
		})
	}
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "March 2024", NewSelector(Month, date(2024, time.March, 15)).Label())
	assert.Equal(t, "2024", NewSelector(Year, date(2024, time.March, 15)).Label())
	assert.Equal(t, "2024-03-10 to 2024-03-20", NewCustomSelector(date(2024, time.March, 10), date(2024, time.March, 20)).Label())
	assert.Equal(t, "all time", NewCustomSelector(time.Time{}, time.Time{}).Label())
}
