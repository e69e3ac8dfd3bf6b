package listings

import (
	"context"
	"errors"
	"time"

	"tripnest/internal/domain/shared/money"
)

var ErrListingNotFound = errors.New("listings: not found")

type ListingID string
type OwnerID string

// Listing is the bookable property. The booking engine only reads it:
// the nightly rate feeds pricing and existence gates a reserve.
type Listing struct {
	ID          ListingID
	Owner       OwnerID
	Title       string
	Description string
	ImageURL    string
	Location    string
	Country     string
	Category    string
	NightlyRate money.Money
	CreatedAt   time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, listing *Listing) error
}
