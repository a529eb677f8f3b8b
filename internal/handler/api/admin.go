package api

import (
	"net/http"

	"activity-ledger/internal/domain/history"
	reqdto "activity-ledger/internal/handler/dto/request"
	resdto "activity-ledger/internal/handler/dto/response"
	"activity-ledger/internal/handler/httperr"
	"activity-ledger/internal/usecase/commands"
	"activity-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves routes guarded by RequireAdmin.
type AdminHandler struct {
	bookings commands.BookingCommands
	history  commands.HistoryCommands
}

func NewAdminHandler(bookings commands.BookingCommands, history commands.HistoryCommands) *AdminHandler {
	return &AdminHandler{bookings: bookings, history: history}
}

// @Summary Confirm booking
// @Description Admin moves a pending booking to confirmed.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "booking is not pending"
// @Router /api/admin/bookings/{id}/confirm [post]
func (h *AdminHandler) ConfirmBooking(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.bookings.ConfirmByAdmin(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromBookingView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Record outcome
// @Description Upsert the history entry of one booking.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecordOutcomeRequest true "Outcome"
// @Success 201 {object} resdto.RecordOutcomeResponse "inserted"
// @Success 200 {object} resdto.RecordOutcomeResponse "updated"
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /api/admin/history [post]
func (h *AdminHandler) RecordOutcome(c *gin.Context) {
	var req reqdto.RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.history.RecordOutcome(c.Request.Context(), req.UserID, req.ActivityID, req.BookingID, history.Outcome(req.Outcome))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromRecordOutcome(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	status := http.StatusOK
	if result.Inserted {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

// @Summary Reconcile activity
// @Description Classify every booking of an ended activity and record its outcome.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {object} resdto.ReconcileResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response "activity has not ended"
// @Router /api/admin/activities/{id}/reconcile [post]
func (h *AdminHandler) ReconcileActivity(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.history.ReconcileActivity(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithDomainError(c, err, map[error]int{queries.ErrActivityNotFound: http.StatusNotFound})
		return
	}
	c.JSON(http.StatusOK, resdto.FromReconcileResult(result))
}
