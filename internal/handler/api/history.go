package api

import (
	"net/http"

	reqdto "activity-ledger/internal/handler/dto/request"
	resdto "activity-ledger/internal/handler/dto/response"
	"activity-ledger/internal/handler/httperr"
	"activity-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var historyReadErrors = map[error]int{
	queries.ErrInvalidDateRange: http.StatusBadRequest,
	queries.ErrInvalidPage:      http.StatusBadRequest,
}

type HistoryHandler struct {
	q queries.HistoryQueries
}

func NewHistoryHandler(q queries.HistoryQueries) *HistoryHandler {
	return &HistoryHandler{q: q}
}

// @Summary List own activity history
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param outcome query string false "completed, cancelled or no-show"
// @Param from query string false "RFC3339 lower bound on participated_at"
// @Param to query string false "RFC3339 upper bound on participated_at"
// @Param offset query int false "Offset"
// @Param limit query int false "Max items (default 20, max 200)"
// @Success 200 {object} resdto.HistoryListResponse
// @Failure 400 {object} httperr.Response
// @Router /api/history [get]
func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var q reqdto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid query", nil)
		return
	}

	page, err := h.q.ListHistoryByUser(c.Request.Context(), userID, q.Filters(), q.Page())
	if err != nil {
		httperr.AbortWithDomainError(c, err, historyReadErrors)
		return
	}
	res, err := resdto.FromHistoryPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Own history statistics
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.HistoryStatsResponse
// @Router /api/history/stats [get]
func (h *HistoryHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.q.GetHistoryStats(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromHistoryStats(stats))
}

// @Summary Own history for one activity
// @Tags history
// @Produce json
// @Security BearerAuth
// @Param id path int true "Activity ID"
// @Success 200 {array} resdto.HistoryItemResponse
// @Router /api/activities/{id}/history [get]
func (h *HistoryHandler) ForActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activityID, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.q.GetHistoryForActivity(c.Request.Context(), userID, activityID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	res, err := resdto.FromHistoryItems(items)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
