package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalizesToMidnightUTC(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Oslo")
	require.NoError(t, err)

	in := time.Date(2026, 6, 1, 15, 30, 0, 0, loc)
	out := time.Date(2026, 6, 4, 9, 0, 0, 0, loc)

	dr, err := New(in, out)
	require.NoError(t, err)

	assert.Equal(t, Midnight(in), dr.CheckIn)
	assert.Equal(t, Midnight(out), dr.CheckOut)
	assert.Equal(t, time.UTC, dr.CheckIn.Location())
	assert.Zero(t, dr.CheckIn.Hour())
}

func TestNewRejectsInvertedAndEqualRanges(t *testing.T) {
	_, err := New(date(2026, 6, 4), date(2026, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(date(2026, 6, 1), date(2026, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, date(2026, 6, 1))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestNights(t *testing.T) {
	dr, err := New(date(2026, 6, 1), date(2026, 6, 4))
	require.NoError(t, err)
	assert.Equal(t, 3, dr.Nights())

	single, err := New(date(2026, 6, 1), date(2026, 6, 2))
	require.NoError(t, err)
	assert.Equal(t, 1, single.Nights())
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	stay, err := New(date(2026, 6, 10), date(2026, 6, 15))
	require.NoError(t, err)

	cases := []struct {
		name     string
		in, out  time.Time
		overlaps bool
	}{
		{"identical", date(2026, 6, 10), date(2026, 6, 15), true},
		{"contained", date(2026, 6, 11), date(2026, 6, 13), true},
		{"straddles start", date(2026, 6, 8), date(2026, 6, 11), true},
		{"straddles end", date(2026, 6, 14), date(2026, 6, 18), true},
		{"surrounds", date(2026, 6, 5), date(2026, 6, 20), true},
		{"checkout on checkin day", date(2026, 6, 5), date(2026, 6, 10), false},
		{"checkin on checkout day", date(2026, 6, 15), date(2026, 6, 20), false},
		{"well before", date(2026, 6, 1), date(2026, 6, 4), false},
		{"well after", date(2026, 6, 20), date(2026, 6, 25), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			other, err := New(tc.in, tc.out)
			require.NoError(t, err)
			assert.Equal(t, tc.overlaps, stay.Overlaps(other))
			assert.Equal(t, tc.overlaps, other.Overlaps(stay))
		})
	}
}

func TestContainsDate(t *testing.T) {
	dr, err := New(date(2026, 6, 10), date(2026, 6, 12))
	require.NoError(t, err)

	assert.True(t, dr.ContainsDate(date(2026, 6, 10)))
	assert.True(t, dr.ContainsDate(date(2026, 6, 11)))
	assert.False(t, dr.ContainsDate(date(2026, 6, 12)))
	assert.False(t, dr.ContainsDate(date(2026, 6, 9)))
}
