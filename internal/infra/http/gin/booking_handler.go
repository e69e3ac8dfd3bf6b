package ginserver

import (
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tripnest/internal/app/commands"
	bookingapp "tripnest/internal/app/handlers/booking"
	"tripnest/internal/app/queries"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type reserveBookingRequest struct {
	ListingID string    `json:"listing_id" binding:"required"`
	CheckIn   time.Time `json:"check_in" binding:"required"`
	CheckOut  time.Time `json:"check_out" binding:"required"`
	Guests    int       `json:"guests" binding:"required"`
}

func (h BookingHandler) Reserve(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req reserveBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.ReserveBookingCommand{
		CommandID:       uuid.NewString(),
		ListingID:       req.ListingID,
		UserID:          user.UserID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		IdempotencyKeyV: c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[bookingapp.ReserveBookingCommand, *bookingapp.ReserveBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h BookingHandler) Approve(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	cmd := bookingapp.ApproveBookingCommand{BookingID: c.Param("id"), Actor: user}
	result, err := commands.Dispatch[bookingapp.ApproveBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Reject(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	cmd := bookingapp.RejectBookingCommand{BookingID: c.Param("id"), Actor: user}
	result, err := commands.Dispatch[bookingapp.RejectBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Cancel(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	cmd := bookingapp.CancelBookingCommand{BookingID: c.Param("id"), Actor: user}
	result, err := commands.Dispatch[bookingapp.CancelBookingCommand, *bookingapp.DecisionResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Availability(c *gin.Context) {
	checkIn, err := time.Parse(time.RFC3339, c.Query("check_in"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_in must be RFC3339"})
		return
	}
	checkOut, err := time.Parse(time.RFC3339, c.Query("check_out"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "check_out must be RFC3339"})
		return
	}
	q := bookingapp.CheckAvailabilityQuery{
		ListingID: c.Param("id"),
		CheckIn:   checkIn,
		CheckOut:  checkOut,
	}
	result, err := queries.Ask[bookingapp.CheckAvailabilityQuery, bookingapp.CheckAvailabilityResult](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ BookingHTTP = BookingHandler{}
