package ginserver

import (
	"net/http"

	gin "github.com/gin-gonic/gin"

	"tripnest/internal/app/dto"
	adminapp "tripnest/internal/app/handlers/admin"
	"tripnest/internal/app/queries"
)

type AdminHandler struct {
	Queries queries.Bus
}

func (h AdminHandler) ListBookings(c *gin.Context) {
	user, ok := requirePrincipal(c)
	if !ok {
		return
	}
	q := adminapp.ListAllBookingsQuery{Actor: user}
	result, err := queries.Ask[adminapp.ListAllBookingsQuery, dto.BookingCollection](c.Request.Context(), h.Queries, q)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

var _ AdminHTTP = AdminHandler{}
