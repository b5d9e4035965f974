package api

import (
	"net/http"

	reqdto "dorm-services/internal/handler/dto/request"
	resdto "dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/pkg/errs"
	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"

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

// @Summary List spaces
// @Description List reservable spaces and the bookable time slots
// @Tags reservations
// @Produce json
// @Success 200 {object} resdto.SpacesResponse
// @Router /reservations/spaces [get]
func (h *ReservationHandler) ListSpaces(c *gin.Context) {
	c.JSON(http.StatusOK, resdto.FromCatalogView(h.q.ListSpaces(c.Request.Context())))
}

// @Summary Get availability
// @Description Confirmed count and remaining seats per time slot for a space and date
// @Tags reservations
// @Produce json
// @Param spaceId query string true "Space ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/availability [get]
func (h *ReservationHandler) GetAvailability(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.q.GetAvailability(c.Request.Context(), query.SpaceID, query.Date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Create reservation
// @Description Book a time slot; the reservation is confirmed while seats remain and waitlisted otherwise
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.CreateReservation(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary My reservations
// @Description Active reservations of a student ordered by date and time slot
// @Tags reservations
// @Produce json
// @Param studentId query string true "Student ID"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Router /reservations/my [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	var query reqdto.MyReservationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	views, err := h.q.ListMyReservations(c.Request.Context(), query.StudentID)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Cancel reservation
// @Description Cancel a reservation and promote the oldest waitlisted one in the same slot
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.CancelReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [delete]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	result, err := h.cmds.CancelReservation(c.Request.Context(), id)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCancelResult(result))
}

// A malformed id can never name a stored reservation.
func parseReservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrReservationNotFound))
		return uuid.Nil, false
	}
	return id, true
}
