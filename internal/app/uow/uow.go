package uow

import (
	"context"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
)

// UnitOfWork coordinates the booking and listing repositories inside one
// transaction boundary, so an availability check and the following insert
// observe the same state.
type UnitOfWork interface {
	Listings() domainlistings.Repository
	Bookings() domainbooking.Repository

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Factory starts unit of work instances.
type Factory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
