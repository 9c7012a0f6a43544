package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, h, min, sec int, loc *time.Location) time.Time {
	return time.Date(y, m, d, h, min, sec, 0, loc)
}

func TestClassifyShiftBoundaries(t *testing.T) {
	loc := time.UTC

	tests := []struct {
		name string
		t    time.Time
		want Shift
	}{
		{"just before opening", at(2024, 6, 10, 7, 59, 59, loc), Shift2},
		{"exactly 08:00:00", at(2024, 6, 10, 8, 0, 0, loc), Shift1},
		{"midday", at(2024, 6, 10, 13, 30, 0, loc), Shift1},
		{"just before 20:00", at(2024, 6, 10, 19, 59, 59, loc), Shift1},
		{"exactly 20:00:00", at(2024, 6, 10, 20, 0, 0, loc), Shift2},
		{"just before midnight", at(2024, 6, 10, 23, 59, 59, loc), Shift2},
		{"after midnight", at(2024, 6, 11, 2, 0, 0, loc), Shift2},
		{"exactly 08:00:00 next day", at(2024, 6, 11, 8, 0, 0, loc), Shift1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyShift(tt.t, loc))
		})
	}
}

func TestClassifyShiftBusinessTimezone(t *testing.T) {
	// 00:30 UTC is 08:30 in UTC+8: the business day's first shift.
	manila := time.FixedZone("UTC+8", 8*3600)
	ts := at(2024, 6, 10, 0, 30, 0, time.UTC)

	assert.Equal(t, Shift2, ClassifyShift(ts, time.UTC))
	assert.Equal(t, Shift1, ClassifyShift(ts, manila))
}

func TestPartitionShift(t *testing.T) {
	loc := time.UTC
	rng := DateRange{Start: date(2024, 6, 10), End: date(2024, 6, 10)}

	// In range, daytime.
	assert.Equal(t, Shift1, PartitionShift(at(2024, 6, 10, 9, 0, 0, loc), rng, loc))
	// 02:00 on the range day is conceptually the previous day's second shift,
	// but its calendar day matches the range, so it stays in scope.
	assert.Equal(t, Shift2, PartitionShift(at(2024, 6, 10, 2, 0, 0, loc), rng, loc))
	// Day before and day after are out of range entirely.
	assert.Equal(t, ShiftNone, PartitionShift(at(2024, 6, 9, 12, 0, 0, loc), rng, loc))
	assert.Equal(t, ShiftNone, PartitionShift(at(2024, 6, 11, 0, 0, 0, loc), rng, loc))
	// Last instant of the range day is still inside.
	assert.Equal(t, Shift2, PartitionShift(at(2024, 6, 10, 23, 59, 59, loc), rng, loc))
}

func TestDateRangeValidate(t *testing.T) {
	require.NoError(t, DateRange{Start: date(2024, 6, 5), End: date(2024, 6, 10)}.Validate())
	require.NoError(t, DateRange{Start: date(2024, 6, 10), End: date(2024, 6, 10)}.Validate())

	err := DateRange{Start: date(2024, 6, 10), End: date(2024, 6, 5)}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRange))

	assert.ErrorIs(t, DateRange{End: date(2024, 6, 10)}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, DateRange{Start: date(2024, 6, 10)}.Validate(), ErrInvalidRange)
	assert.ErrorIs(t, DateRange{}.Validate(), ErrInvalidRange)
}

func TestDateRangeContains(t *testing.T) {
	loc := time.UTC
	rng := DateRange{Start: date(2024, 6, 5), End: date(2024, 6, 10)}

	assert.True(t, rng.Contains(at(2024, 6, 5, 0, 0, 0, loc), loc))
	assert.True(t, rng.Contains(at(2024, 6, 10, 23, 59, 59, loc), loc))
	assert.False(t, rng.Contains(at(2024, 6, 4, 23, 59, 59, loc), loc))
	assert.False(t, rng.Contains(at(2024, 6, 11, 0, 0, 0, loc), loc))

	open := DateRange{}
	assert.True(t, open.Contains(at(1999, 1, 1, 0, 0, 0, loc), loc))

	from := DateRange{Start: date(2024, 6, 5)}
	assert.True(t, from.Contains(at(2030, 1, 1, 0, 0, 0, loc), loc))
	assert.False(t, from.Contains(at(2024, 6, 4, 12, 0, 0, loc), loc))
}

func TestParseShiftSelection(t *testing.T) {
	for input, want := range map[string]ShiftSelection{
		"":       SelectAll,
		"all":    SelectAll,
		"shift1": SelectShift1,
		"shift2": SelectShift2,
	} {
		got, err := ParseShiftSelection(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseShiftSelection("shift3")
	assert.Error(t, err)
}
