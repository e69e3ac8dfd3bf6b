package pricing

import (
	"context"
	"errors"

	"tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/daterange"
	"tripnest/internal/domain/shared/money"
)

var ErrRateUnset = errors.New("pricing: listing nightly rate has no currency")

// Quote is the server-side price for a stay. The total is always derived
// here, never taken from a request body.
type Quote struct {
	Nights  int
	Nightly money.Money
	Total   money.Money
}

type Calculator interface {
	Quote(ctx context.Context, listing *listings.Listing, r daterange.DateRange, guests int) (Quote, error)
}

// NightlyCalculator prices a stay as nights times the listing rate.
type NightlyCalculator struct{}

func (NightlyCalculator) Quote(ctx context.Context, listing *listings.Listing, r daterange.DateRange, guests int) (Quote, error) {
	if listing == nil {
		return Quote{}, listings.ErrListingNotFound
	}
	if listing.NightlyRate.Currency == "" {
		return Quote{}, ErrRateUnset
	}
	if err := r.Validate(); err != nil {
		return Quote{}, err
	}
	nights := r.Nights()
	return Quote{
		Nights:  nights,
		Nightly: listing.NightlyRate,
		Total:   listing.NightlyRate.Multiply(int64(nights)),
	}, nil
}

var _ Calculator = NightlyCalculator{}
