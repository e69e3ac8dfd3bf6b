package dto

import (
	"time"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/money"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// ListingSnapshot carries the display fields joined onto a booking. When
// the listing has been deleted the snapshot keeps only the ID.
type ListingSnapshot struct {
	ID       string   `json:"id"`
	Title    string   `json:"title,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Location string   `json:"location,omitempty"`
	Country  string   `json:"country,omitempty"`
	Nightly  MoneyDTO `json:"nightly_rate"`
}

type BookingSummary struct {
	ID        string          `json:"id"`
	Listing   ListingSnapshot `json:"listing"`
	UserID    string          `json:"user_id"`
	CheckIn   time.Time       `json:"check_in"`
	CheckOut  time.Time       `json:"check_out"`
	Nights    int             `json:"nights"`
	Guests    int             `json:"guests"`
	Status    string          `json:"status"`
	Total     MoneyDTO        `json:"total"`
	CreatedAt time.Time       `json:"created_at"`
}

type BookingCollection struct {
	Items []BookingSummary `json:"items"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

func MapBookingSummary(booking *domainbooking.Booking, listing *domainlistings.Listing) BookingSummary {
	snapshot := ListingSnapshot{ID: string(booking.ListingID)}
	if listing != nil {
		snapshot.Title = listing.Title
		snapshot.ImageURL = listing.ImageURL
		snapshot.Location = listing.Location
		snapshot.Country = listing.Country
		snapshot.Nightly = MapMoney(listing.NightlyRate)
	}
	return BookingSummary{
		ID:        string(booking.ID),
		Listing:   snapshot,
		UserID:    booking.UserID,
		CheckIn:   booking.Range.CheckIn,
		CheckOut:  booking.Range.CheckOut,
		Nights:    booking.Range.Nights(),
		Guests:    booking.Guests,
		Status:    string(booking.Status),
		Total:     MapMoney(booking.Total),
		CreatedAt: booking.CreatedAt,
	}
}
