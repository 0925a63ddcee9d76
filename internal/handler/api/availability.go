package api

import (
	"errors"
	"net/http"

	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	q queries.AvailabilityQueries
}

func NewAvailabilityHandler(q queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{q: q}
}

// @Summary List open windows
// @Description List the free sub-intervals of a studio's operating day
// @Tags availability
// @Produce json
// @Param studio query string true "Studio identifier"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) ListOpenWindows(c *gin.Context) {
	studio := c.Query("studio")
	date := c.Query("date")
	if studio == "" || date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("studio or date query parameter missing"), "Studio and date are required", nil)
		return
	}

	windows, err := h.q.ListOpenWindows(c.Request.Context(), studio, date)
	if err != nil {
		if errors.Is(err, queries.ErrInvalidAvailabilityQuery) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid studio or date", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOpenWindows(studio, date, windows))
}
