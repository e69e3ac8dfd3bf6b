package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainlistings "tripnest/internal/domain/listings"
	"tripnest/internal/domain/shared/money"
)

type ListingRepository struct {
	col *mongo.Collection
}

func NewListingRepository(db *mongo.Database) *ListingRepository {
	return &ListingRepository{col: db.Collection("listings")}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlistings.ListingID) (*domainlistings.Listing, error) {
	var doc listingDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainlistings.ErrListingNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ListingRepository) Save(ctx context.Context, listing *domainlistings.Listing) error {
	doc := newListingDocument(listing)
	opts := options.Update().SetUpsert(true)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, opts)
	return err
}

type listingDocument struct {
	ID          string `bson:"_id"`
	Owner       string `bson:"owner"`
	Title       string `bson:"title"`
	Description string `bson:"description"`
	ImageURL    string `bson:"image_url"`
	Location    string `bson:"location"`
	Country     string `bson:"country"`
	Category    string `bson:"category"`
	Nightly     int64  `bson:"nightly_rate"`
	Currency    string `bson:"currency"`
	CreatedAt   int64  `bson:"created_at"`
}

func newListingDocument(l *domainlistings.Listing) listingDocument {
	return listingDocument{
		ID:          string(l.ID),
		Owner:       string(l.Owner),
		Title:       l.Title,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		Location:    l.Location,
		Country:     l.Country,
		Category:    l.Category,
		Nightly:     l.NightlyRate.Amount,
		Currency:    l.NightlyRate.Currency,
		CreatedAt:   l.CreatedAt.UnixMilli(),
	}
}

func (d listingDocument) toEntity() *domainlistings.Listing {
	return &domainlistings.Listing{
		ID:          domainlistings.ListingID(d.ID),
		Owner:       domainlistings.OwnerID(d.Owner),
		Title:       d.Title,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		Location:    d.Location,
		Country:     d.Country,
		Category:    d.Category,
		NightlyRate: money.Money{Amount: d.Nightly, Currency: d.Currency},
		CreatedAt:   time.UnixMilli(d.CreatedAt).UTC(),
	}
}
