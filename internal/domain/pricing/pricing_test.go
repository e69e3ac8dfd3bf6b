package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/daterange"
	"tripnest/internal/domain/shared/money"
)

func TestNightlyCalculatorQuote(t *testing.T) {
	listing := &listings.Listing{
		ID:          "lst-1",
		NightlyRate: money.Must(10000, "USD"),
	}
	dr, err := daterange.New(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	quote, err := NightlyCalculator{}.Quote(context.Background(), listing, dr, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, quote.Nights)
	assert.Equal(t, int64(30000), quote.Total.Amount)
	assert.Equal(t, "USD", quote.Total.Currency)
	assert.Equal(t, listing.NightlyRate, quote.Nightly)
}

func TestNightlyCalculatorGuardsInput(t *testing.T) {
	dr, err := daterange.New(
		time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	_, err = NightlyCalculator{}.Quote(context.Background(), nil, dr, 2)
	assert.ErrorIs(t, err, listings.ErrListingNotFound)

	_, err = NightlyCalculator{}.Quote(context.Background(), &listings.Listing{ID: "lst-1"}, dr, 2)
	assert.ErrorIs(t, err, ErrRateUnset)

	_, err = NightlyCalculator{}.Quote(context.Background(), &listings.Listing{ID: "lst-1", NightlyRate: money.Must(100, "USD")}, daterange.DateRange{}, 2)
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}
