//go:build unit

package api_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"activity-ledger/internal/domain/history"
	"activity-ledger/internal/handler/api"
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/mock/commandsmock"
	"activity-ledger/internal/mock/queriesmock"
	"activity-ledger/internal/mock/usecasemock"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/testsupport/builder"
	"activity-ledger/internal/testsupport/httptest"
	"activity-ledger/internal/usecase/commands"
	"activity-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HistoryHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockCtrl        *gomock.Controller
	mockQueries     *queriesmock.MockHistoryQueries
	mockHistoryCmds *commandsmock.MockHistoryCommands
	mockBookingCmds *commandsmock.MockBookingCommands
}

func (s *HistoryHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockHistoryQueries(s.mockCtrl)
	s.mockHistoryCmds = commandsmock.NewMockHistoryCommands(s.mockCtrl)
	s.mockBookingCmds = commandsmock.NewMockBookingCommands(s.mockCtrl)

	h := api.NewHistoryHandler(s.mockQueries)
	admin := api.NewAdminHandler(s.mockBookingCmds, s.mockHistoryCmds)
	// RequireAdmin only reads the principal, so the validator is never called
	authMw := middleware.NewAuthMiddleware(usecasemock.NewMockTokenValidator(s.mockCtrl))

	g := s.router.Group("", fakeAuth)
	g.GET("/history", h.List)
	g.GET("/history/stats", h.Stats)
	g.GET("/activities/:id/history", h.ForActivity)

	a := g.Group("/admin", authMw.RequireAdmin())
	a.POST("/bookings/:id/confirm", admin.ConfirmBooking)
	a.POST("/history", admin.RecordOutcome)
	a.POST("/activities/:id/reconcile", admin.ReconcileActivity)
}

func TestHistoryHandlerSuite(t *testing.T) {
	suite.Run(t, new(HistoryHandlerTestSuite))
}

func (s *HistoryHandlerTestSuite) TestList() {
	items := []*queries.HistoryItem{{ID: 1, UserID: testUserID, ActivityID: 1, ActivityName: "Morning Yoga", BookingID: 100, Outcome: "completed", ParticipatedAt: now}}

	s.Run("filters are parsed", func() {
		from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
		s.mockQueries.EXPECT().ListHistoryByUser(gomock.Any(), testUserID, gomock.Any(), queries.Page{Offset: 0, Limit: 5}).
			DoAndReturn(func(_ context.Context, _ int64, f queries.HistoryFilters, _ queries.Page) (*queries.HistoryPage, error) {
				s.Require().NotNil(f.Outcome)
				s.Equal("completed", *f.Outcome)
				s.Require().NotNil(f.From)
				s.True(f.From.Equal(from))
				s.Nil(f.To)
				return &queries.HistoryPage{Items: items, Total: 1}, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history?outcome=completed&from=2026-05-01T00:00:00Z&limit=5", nil, "token")

		var body struct {
			Items []map[string]any `json:"items"`
			Total int              `json:"total"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Total)
		s.Equal("Morning Yoga", body.Items[0]["activity_name"])
		s.Equal("completed", body.Items[0]["outcome"])
	})

	s.Run("400 on unknown outcome", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history?outcome=attended", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("400 on inverted range", func() {
		s.mockQueries.EXPECT().ListHistoryByUser(gomock.Any(), testUserID, gomock.Any(), gomock.Any()).
			Return(nil, errs.Wrap(queries.ErrInvalidDateRange, "from after to"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history?from=2026-06-01T00:00:00Z&to=2026-05-01T00:00:00Z", nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *HistoryHandlerTestSuite) TestStats() {
	s.mockQueries.EXPECT().GetHistoryStats(gomock.Any(), testUserID).
		Return(&queries.HistoryStats{UserID: testUserID, Completed: 2, Cancelled: 1, NoShow: 1, Total: 4}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/history/stats", nil, "token")

	var body map[string]int
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Equal(map[string]int{"completed": 2, "cancelled": 1, "no_show": 1, "total": 4}, body)
}

func (s *HistoryHandlerTestSuite) TestForActivity() {
	s.mockQueries.EXPECT().GetHistoryForActivity(gomock.Any(), testUserID, int64(3)).Return([]*queries.HistoryItem{}, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/activities/3/history", nil, "token")

	var body []map[string]any
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Empty(body)
}

func (s *HistoryHandlerTestSuite) TestAdminRoutesRequireAdmin() {
	for _, path := range []string{"/admin/bookings/1/confirm", "/admin/history", "/admin/activities/1/reconcile"} {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, nil, "member-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "")
	}
}

func (s *HistoryHandlerTestSuite) TestConfirmBooking() {
	s.Run("success", func() {
		confirmed := builder.NewBookingBuilder(now).BuildView()
		confirmed.Status = "confirmed"
		s.mockBookingCmds.EXPECT().ConfirmByAdmin(gomock.Any(), int64(100)).Return(confirmed, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/100/confirm", nil, "admin")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("confirmed", body["status"])
	})

	s.Run("409 when not pending", func() {
		s.mockBookingCmds.EXPECT().ConfirmByAdmin(gomock.Any(), int64(100)).Return(nil, errs.ErrInvalidState)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/bookings/100/confirm", nil, "admin")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_state")
	})
}

func (s *HistoryHandlerTestSuite) TestRecordOutcome() {
	reqBody := map[string]any{"user_id": 7, "activity_id": 1, "booking_id": 100, "outcome": "no-show"}
	rec := &history.Record{ID: 5, UserID: 7, ActivityID: 1, BookingID: 100, Outcome: history.OutcomeNoShow, ParticipatedAt: now}

	s.Run("201 on insert", func() {
		s.mockHistoryCmds.EXPECT().RecordOutcome(gomock.Any(), int64(7), int64(1), int64(100), history.OutcomeNoShow).
			Return(&commands.RecordOutcomeResult{Record: rec, Inserted: true}, nil)

		res := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/history", reqBody, "admin")

		var body struct {
			Record   map[string]any `json:"record"`
			Inserted bool           `json:"inserted"`
		}
		httptest.AssertSuccessResponse(s.T(), res, http.StatusCreated, &body)
		s.True(body.Inserted)
		s.Equal("no-show", body.Record["outcome"])
	})

	s.Run("200 on update", func() {
		s.mockHistoryCmds.EXPECT().RecordOutcome(gomock.Any(), int64(7), int64(1), int64(100), history.OutcomeNoShow).
			Return(&commands.RecordOutcomeResult{Record: rec, Inserted: false}, nil)

		res := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/history", reqBody, "admin")

		httptest.AssertSuccessResponse(s.T(), res, http.StatusOK, nil)
	})

	s.Run("400 on invalid outcome", func() {
		s.mockHistoryCmds.EXPECT().RecordOutcome(gomock.Any(), int64(7), int64(1), int64(100), history.Outcome("maybe")).
			Return(nil, errs.Wrap(errs.ErrInvalidOutcome, `"maybe"`))

		body := httptest.DtoMap(s.T(), reqBody, httptest.Field("outcome", "maybe"))
		res := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/history", body, "admin")

		httptest.AssertErrorResponse(s.T(), res, http.StatusBadRequest, "invalid_outcome")
	})
}

func (s *HistoryHandlerTestSuite) TestReconcileActivity() {
	s.Run("collects failures", func() {
		s.mockHistoryCmds.EXPECT().ReconcileActivity(gomock.Any(), int64(1)).Return(&commands.ReconcileResult{
			ActivityID: 1,
			Inserted:   2,
			Failures:   []commands.ReconcileFailure{{BookingID: 9, Err: errs.New("conn reset")}},
		}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/activities/1/reconcile", nil, "admin")

		var body struct {
			Inserted int `json:"inserted"`
			Failures []struct {
				BookingID int64  `json:"booking_id"`
				Error     string `json:"error"`
			} `json:"failures"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.Inserted)
		s.Require().Len(body.Failures, 1)
		s.Equal(int64(9), body.Failures[0].BookingID)
	})

	s.Run("409 before the activity ends", func() {
		s.mockHistoryCmds.EXPECT().ReconcileActivity(gomock.Any(), int64(1)).Return(nil, errs.ErrInvalidState)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/activities/1/reconcile", nil, "admin")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "invalid_state")
	})

	s.Run("404 for unknown activity", func() {
		s.mockHistoryCmds.EXPECT().ReconcileActivity(gomock.Any(), int64(2)).Return(nil, errs.Wrap(queries.ErrActivityNotFound, "activity 2"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/admin/activities/2/reconcile", nil, "admin")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
