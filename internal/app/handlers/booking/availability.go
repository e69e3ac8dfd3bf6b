package booking

import (
	"context"
	"time"

	handlersupport "tripnest/internal/app/handlers/support"
	"tripnest/internal/app/queries"
	"tripnest/internal/app/uow"
	domainlistings "tripnest/internal/domain/listings"
	domainrange "tripnest/internal/domain/shared/daterange"
)

const checkAvailabilityKey = "booking.availability"

type CheckAvailabilityQuery struct {
	ListingID string
	CheckIn   time.Time
	CheckOut  time.Time
}

func (q CheckAvailabilityQuery) Key() string { return checkAvailabilityKey }

type CheckAvailabilityResult struct {
	Available bool `json:"available"`
}

// CheckAvailabilityHandler answers whether a range can be booked. It is a
// pure read: a positive answer carries no hold, the reserve path
// re-checks inside its own critical section.
type CheckAvailabilityHandler struct {
	UoWFactory uow.Factory
}

func (h *CheckAvailabilityHandler) Handle(ctx context.Context, q CheckAvailabilityQuery) (CheckAvailabilityResult, error) {
	dr, err := domainrange.New(q.CheckIn, q.CheckOut)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	taken, err := unit.Bookings().AnyOverlapping(execCtx, domainlistings.ListingID(q.ListingID), dr)
	if err != nil {
		return CheckAvailabilityResult{}, err
	}
	return CheckAvailabilityResult{Available: !taken}, nil
}

var _ queries.Handler[CheckAvailabilityQuery, CheckAvailabilityResult] = (*CheckAvailabilityHandler)(nil)
