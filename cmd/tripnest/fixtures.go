package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"

	domainlistings "tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/money"
)

type listingFixture struct {
	ID          string `json:"id"`
	Owner       string `json:"owner"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	Category    string `json:"category"`
	NightlyRate int64  `json:"nightly_rate"`
	Currency    string `json:"currency"`
}

// seedListings fills the in-memory listing store, either from a JSON
// fixtures file or from a small built-in demo set.
func seedListings(ctx context.Context, repo domainlistings.Repository, path string, logger *slog.Logger) error {
	fixtures := defaultListings()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fixtures = nil
		if err := json.Unmarshal(data, &fixtures); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	for _, f := range fixtures {
		rate, err := money.New(f.NightlyRate, f.Currency)
		if err != nil {
			return err
		}
		listing := &domainlistings.Listing{
			ID:          domainlistings.ListingID(f.ID),
			Owner:       domainlistings.OwnerID(f.Owner),
			Title:       f.Title,
			Description: f.Description,
			ImageURL:    f.ImageURL,
			Location:    f.Location,
			Country:     f.Country,
			Category:    f.Category,
			NightlyRate: rate,
			CreatedAt:   now,
		}
		if err := repo.Save(ctx, listing); err != nil {
			return err
		}
	}
	if logger != nil {
		logger.Info("listings seeded", "count", len(fixtures))
	}
	return nil
}

func defaultListings() []listingFixture {
	return []listingFixture{
		{
			ID:          "lst-holmenkollen-cabin",
			Owner:       "usr-ingrid",
			Title:       "Hillside cabin near Holmenkollen",
			Description: "Timber cabin with a fireplace and a forest view.",
			Location:    "Oslo",
			Country:     "Norway",
			Category:    "Cabins",
			NightlyRate: 14500,
			Currency:    "USD",
		},
		{
			ID:          "lst-alfama-apartment",
			Owner:       "usr-mateus",
			Title:       "Sunlit apartment in Alfama",
			Description: "Two bedrooms, a balcony over the rooftops, steps from the tram.",
			Location:    "Lisbon",
			Country:     "Portugal",
			Category:    "City",
			NightlyRate: 9900,
			Currency:    "USD",
		},
		{
			ID:          "lst-gili-beachfront",
			Owner:       "usr-ayu",
			Title:       "Beachfront bungalow on Gili Air",
			Description: "Open-air bathroom, hammock, thirty meters to the water.",
			Location:    "Gili Air",
			Country:     "Indonesia",
			Category:    "Beachfront",
			NightlyRate: 7600,
			Currency:    "USD",
		},
	}
}
