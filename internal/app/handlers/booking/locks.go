package booking

import (
	"sync"

	domainlistings "tripnest/internal/domain/listings"
)

// ListingLocks serializes reservations per listing so the availability
// check and the booking insert form one critical section. Backing stores
// with real transactions (Mongo sessions) additionally re-validate inside
// the transaction; this registry closes the race for stores that do not.
type ListingLocks struct {
	mu    sync.Mutex
	locks map[domainlistings.ListingID]*sync.Mutex
}

func NewListingLocks() *ListingLocks {
	return &ListingLocks{locks: make(map[domainlistings.ListingID]*sync.Mutex)}
}

// Acquire locks the listing and returns the release function.
func (l *ListingLocks) Acquire(id domainlistings.ListingID) func() {
	l.mu.Lock()
	lock, ok := l.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[id] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
