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

type ComplaintHandler struct {
	cmds commands.ComplaintCommands
	q    queries.ComplaintQueries
}

func NewComplaintHandler(cmds commands.ComplaintCommands, q queries.ComplaintQueries) *ComplaintHandler {
	return &ComplaintHandler{cmds: cmds, q: q}
}

// @Summary Submit complaint
// @Description Submit a maintenance complaint
// @Tags maintenance
// @Accept json
// @Produce json
// @Param request body reqdto.SubmitComplaintRequest true "Complaint"
// @Success 201 {object} resdto.ComplaintResponse
// @Failure 400 {object} httperr.Response
// @Router /maintenance [post]
func (h *ComplaintHandler) Submit(c *gin.Context) {
	var req reqdto.SubmitComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, httperr.KindInvalidField, err, "Invalid request", nil)
		return
	}
	view, err := h.cmds.Submit(c.Request.Context(), req)
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromComplaintView(view))
}

// @Summary Student complaints
// @Description Complaints submitted by a student, newest first
// @Tags maintenance
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {array} resdto.ComplaintResponse
// @Router /maintenance/student/{studentId} [get]
func (h *ComplaintHandler) ListByStudent(c *gin.Context) {
	views, err := h.q.ListByStudent(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromComplaintViews(views))
}

func parseComplaintID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrComplaintNotFound))
		return uuid.Nil, false
	}
	return id, true
}
