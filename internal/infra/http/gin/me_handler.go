package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tripnest/internal/app/dto"
	meapp "tripnest/internal/app/handlers/me"
	"tripnest/internal/app/queries"
)

type MeHandler struct {
	Queries queries.Bus
}

func (h MeHandler) ListBookings(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := meapp.ListMyBookingsQuery{UserID: user.UserID}
	result, err := queries.Ask[meapp.ListMyBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ MeHTTP = MeHandler{}
