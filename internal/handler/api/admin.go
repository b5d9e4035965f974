package api

import (
	"net/http"

	reqdto "dorm-services/internal/handler/dto/request"
	resdto "dorm-services/internal/handler/dto/response"
	"dorm-services/internal/handler/httperr"
	"dorm-services/internal/usecase/commands"
	"dorm-services/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the routes behind RequireAuth.
type AdminHandler struct {
	reservationCmds commands.ReservationCommands
	reservationQ    queries.ReservationQueries
	complaintCmds   commands.ComplaintCommands
	complaintQ      queries.ComplaintQueries
}

func NewAdminHandler(
	reservationCmds commands.ReservationCommands,
	reservationQ queries.ReservationQueries,
	complaintCmds commands.ComplaintCommands,
	complaintQ queries.ComplaintQueries,
) *AdminHandler {
	return &AdminHandler{
		reservationCmds: reservationCmds,
		reservationQ:    reservationQ,
		complaintCmds:   complaintCmds,
		complaintQ:      complaintQ,
	}
}

// @Summary List reservations of a space and date
// @Description Every reservation including canceled ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param spaceId query string true "Space ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /admin/reservations [get]
func (h *AdminHandler) ListReservations(c *gin.Context) {
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	views, err := h.reservationQ.ListBySpaceDate(c.Request.Context(), query.SpaceID, query.Date)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary Purge reservation
// @Description Permanently delete a canceled reservation
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/purge [delete]
func (h *AdminHandler) PurgeReservation(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}
	if err := h.reservationCmds.PurgeReservation(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary List complaints
// @Description Complaints filtered by urgency and status, newest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param urgency query string false "urgent, normal or low"
// @Param status query string false "received, in_progress or resolved"
// @Success 200 {array} resdto.ComplaintResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/maintenance [get]
func (h *AdminHandler) ListComplaints(c *gin.Context) {
	var query reqdto.ComplaintListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	views, err := h.complaintQ.List(c.Request.Context(), queries.ComplaintFilters{
		Urgency: query.Urgency,
		Status:  query.Status,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromComplaintViews(views))
}

// @Summary Update complaint status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param request body reqdto.UpdateComplaintStatusRequest true "New status"
// @Success 200 {object} resdto.ComplaintResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/maintenance/{id}/status [patch]
func (h *AdminHandler) UpdateComplaintStatus(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}
	var req reqdto.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindBadRequest, err, "Invalid request", nil)
		return
	}
	view, err := h.complaintCmds.UpdateStatus(c.Request.Context(), id, req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromComplaintView(view))
}

// @Summary Delete complaint
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /admin/maintenance/{id} [delete]
func (h *AdminHandler) DeleteComplaint(c *gin.Context) {
	id, ok := parseComplaintID(c)
	if !ok {
		return
	}
	if err := h.complaintCmds.Delete(c.Request.Context(), id); err != nil {
		httperr.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
