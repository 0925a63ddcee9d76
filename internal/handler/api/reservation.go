package api

import (
	"errors"
	"net/http"

	reqdto "studio-booking/internal/handler/dto/request"
	resdto "studio-booking/internal/handler/dto/response"
	"studio-booking/internal/handler/httperr"
	"studio-booking/internal/handler/middleware"
	"studio-booking/internal/pkg/errs"
	"studio-booking/internal/usecase/commands"
	"studio-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a studio slot for a future date
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	res, err := h.cmds.Create(c.Request.Context(), req.ToInput())
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(res))
}

// @Summary Modify reservation
// @Description Reschedule an upcoming reservation; ownership is proven by phone
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.ModifyReservationRequest true "Modification request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id} [put]
func (h *ReservationHandler) Modify(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.ModifyReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	res, err := h.cmds.Modify(c.Request.Context(), req.ToInput(id))
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Cancel reservation
// @Description Cancel an upcoming reservation. Customers prove ownership by phone; staff tokens may cancel any reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest true "Cancellation request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.CancelReservationRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}

	staff := middleware.IsStaff(c)
	if !staff && req.Phone == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("phone missing on customer cancellation"), "Phone is required", nil)
		return
	}

	res, err := h.cmds.Cancel(c.Request.Context(), commands.CancelReservationInput{
		ReservationID: id,
		Phone:         req.Phone,
		StaffContext:  staff,
		Reason:        req.Reason,
	})
	if err != nil {
		h.writeCommandError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservation(res))
}

// @Summary Get reservation
// @Description Get reservation by ID
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List reservations by phone
// @Description List all reservations booked under a phone number
// @Tags reservations
// @Produce json
// @Param phone query string true "Customer phone number"
// @Success 200 {object} map[string][]resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Router /reservations [get]
func (h *ReservationHandler) ListByPhone(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("phone query parameter missing"), "Phone is required", nil)
		return
	}

	views, err := h.q.ListByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid phone number", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": resdto.FromReservationViews(views)})
}

// @Summary List reservations for a studio day
// @Description Staff view of every reservation on a studio's date
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param studio path string true "Studio identifier"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string][]resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /studios/{studio}/reservations [get]
func (h *ReservationHandler) ListStudioDay(c *gin.Context) {
	studio := c.Param("studio")
	date := c.Query("date")
	if date == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.New("date query parameter missing"), "Date is required", nil)
		return
	}

	views, err := h.q.ListByStudioDate(c.Request.Context(), studio, date)
	if err != nil {
		if errors.Is(err, queries.ErrReservationNotFound) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid studio or date", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reservations": resdto.FromReservationViews(views)})
}

func (h *ReservationHandler) writeCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrInvalidPhone):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Phone must contain exactly 10 digits", nil)
	case errors.Is(err, commands.ErrMissingFields):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Studio, date, start and end are required", nil)
	case errors.Is(err, commands.ErrDurationOutOfRange):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Duration is outside the allowed range", nil)
	case errors.Is(err, commands.ErrDateOutOfWindow):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Date is outside the booking window", nil)
	case errors.Is(err, commands.ErrSlotUnavailable):
		httperr.AbortWithError(c, http.StatusConflict, err, "Slot unavailable", nil)
	case errors.Is(err, commands.ErrNotFoundOrForbidden):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Not found", nil)
	case errors.Is(err, commands.ErrImmutableStatus):
		httperr.AbortWithError(c, http.StatusConflict, err, "Reservation status does not allow this operation", nil)
	case errors.Is(err, commands.ErrModificationWindowClosed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Modifications close 24 hours before the start time", nil)
	case errors.Is(err, commands.ErrBookingAlreadyElapsed):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Reservation start time has already passed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal error", nil)
	}
}
