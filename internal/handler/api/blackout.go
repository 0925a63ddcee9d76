package api

import (
	"errors"
	"net/http"

	reqdto "studio-booking/internal/handler/dto/request"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlackoutHandler struct {
	cmds commands.BlackoutCommands
}

func NewBlackoutHandler(cmds commands.BlackoutCommands) *BlackoutHandler {
	return &BlackoutHandler{cmds: cmds}
}

// @Summary Create blackout
// @Description Block a single studio slot from customer booking
// @Tags blackouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBlackoutRequest true "Blackout request"
// @Success 201 {object} resdto.BlackoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /blackouts [post]
func (h *BlackoutHandler) Create(c *gin.Context) {
	var req reqdto.CreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	staffID, _ := middleware.GetStaffID(c)
	slot, err := h.cmds.Create(c.Request.Context(), commands.CreateBlackoutInput{
		Studio:    req.Studio,
		Date:      req.Date,
		Start:     req.Start,
		End:       req.End,
		CreatedBy: staffID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBlackoutSlot(slot))
}

// @Summary Bulk create blackouts
// @Description Block the same slot across multiple dates. Past dates and dates with confirmed reservations are skipped; the response reports what survived.
// @Tags blackouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BulkCreateBlackoutRequest true "Bulk blackout request"
// @Success 201 {object} resdto.BulkBlackoutResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /blackouts/bulk [post]
func (h *BlackoutHandler) BulkCreate(c *gin.Context) {
	var req reqdto.BulkCreateBlackoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	staffID, _ := middleware.GetStaffID(c)
	result, err := h.cmds.BulkCreate(c.Request.Context(), commands.BulkCreateBlackoutInput{
		Studio:    req.Studio,
		Dates:     req.Dates,
		Start:     req.Start,
		End:       req.End,
		CreatedBy: staffID,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BulkBlackoutResponse{
		Created:        result.Created,
		SurvivingDates: result.SurvivingDates,
	})
}

// @Summary Delete blackout
// @Description Remove a blackout slot by ID
// @Tags blackouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Blackout ID"
// @Success 200 {object} resdto.DeletedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /blackouts/{id} [delete]
func (h *BlackoutHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	deleted, err := h.cmds.DeleteByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.DeletedResponse{Deleted: deleted})
}

// @Summary Delete blackout range
// @Description Remove every blackout for a studio within an inclusive date range
// @Tags blackouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.DeleteBlackoutRangeRequest true "Range delete request"
// @Success 200 {object} resdto.DeletedResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /blackouts [delete]
func (h *BlackoutHandler) DeleteRange(c *gin.Context) {
	var req reqdto.DeleteBlackoutRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	deleted, err := h.cmds.DeleteRange(c.Request.Context(), commands.DeleteBlackoutRangeInput{
		Studio: req.Studio,
		From:   req.From,
		To:     req.To,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.DeletedResponse{Deleted: deleted})
}

func (h *BlackoutHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrMissingFields):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Studio, dates, start and end are required", nil)
	case errors.Is(err, commands.ErrDuplicateBlackout):
		httperr.AbortWithError(c, http.StatusConflict, err, "Blackout already exists for this slot", nil)
	case errors.Is(err, commands.ErrAllDatesInPast):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "All requested dates are in the past", nil)
	case errors.Is(err, commands.ErrAllSlotsConflicted):
		httperr.AbortWithError(c, http.StatusConflict, err, "All surviving dates conflict with confirmed reservations", nil)
	case errors.Is(err, commands.ErrBlackoutNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Blackout not found", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
