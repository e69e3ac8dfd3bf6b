package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainbooking "tripnest/internal/domain/booking"
	domainlistings "tripnest/internal/domain/listings"
	domainrange "tripnest/internal/domain/shared/daterange"
)

// writeError maps the engine's failure taxonomy onto HTTP statuses. The
// engine's contract ends at a typed error; the translation lives here.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domainlistings.ErrListingNotFound),
		errors.Is(err, domainbooking.ErrBookingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domainrange.ErrInvalidRange),
		errors.Is(err, domainbooking.ErrPastDate),
		errors.Is(err, domainbooking.ErrInvalidGuestCount):
		status = http.StatusBadRequest
	case errors.Is(err, domainbooking.ErrUnavailable),
		errors.Is(err, domainbooking.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domainbooking.ErrUnauthorized):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
