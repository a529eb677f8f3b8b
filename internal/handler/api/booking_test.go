//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"activity-ledger/internal/domain/user"
	"activity-ledger/internal/handler/api"
	"activity-ledger/internal/handler/middleware"
	"activity-ledger/internal/mock/commandsmock"
	"activity-ledger/internal/mock/queriesmock"
	"activity-ledger/internal/pkg/errs"
	"activity-ledger/internal/testsupport/builder"
	"activity-ledger/internal/testsupport/httptest"
	"activity-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)

const testUserID int64 = 42

// fakeAuth stands in for RequireAuth: any bearer token authenticates as a
// member, the token "admin" as an admin.
func fakeAuth(c *gin.Context) {
	token := c.GetHeader("Authorization")
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	role := user.RoleMember
	if token == "Bearer admin" {
		role = user.RoleAdmin
	}
	p, err := user.NewPrincipal(testUserID, role)
	if err != nil {
		panic(err)
	}
	middleware.SetPrincipal(c, p)
	c.Next()
}

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	h := api.NewBookingHandler(s.mockCommands, s.mockQueries)

	g := s.router.Group("", fakeAuth)
	g.POST("/bookings", h.Create)
	g.GET("/bookings", h.List)
	g.GET("/bookings/:id", h.Get)
	g.POST("/bookings/:id/cancel", h.Cancel)
	g.POST("/bookings/:id/attendance", h.ConfirmAttendance)
	g.GET("/activities/:id/availability", h.Availability)
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreate() {
	view := builder.NewBookingBuilder(now).WithUser(testUserID).BuildView()
	reqBody := map[string]any{"activity_id": view.ActivityID}

	s.Run("success: 201 with Location", func() {
		s.mockCommands.EXPECT().RequestBooking(gomock.Any(), testUserID, view.ActivityID).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("pending", body["status"])
		s.EqualValues(view.ID, body["id"])
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/bookings/100"})
	})

	validation := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{name: "missing activity_id", mutate: httptest.Field("activity_id", nil)},
		{name: "zero activity_id", mutate: httptest.Field("activity_id", 0)},
		{name: "negative activity_id", mutate: httptest.Field("activity_id", -3)},
		{name: "string activity_id", mutate: httptest.Field("activity_id", "1")},
	}
	for _, tc := range validation {
		s.Run("400: "+tc.name, func() {
			body := httptest.DtoMap(s.T(), reqBody, tc.mutate)
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		})
	}

	domainErrors := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "activity full", err: errs.ErrActivityFull, status: http.StatusConflict, code: "activity_full"},
		{name: "duplicate", err: errs.ErrDuplicateBooking, status: http.StatusConflict, code: "duplicate_booking"},
		{name: "not bookable", err: errs.ErrActivityNotBookable, status: http.StatusUnprocessableEntity, code: "activity_not_bookable"},
		{name: "store unavailable", err: errs.Mark(errs.New("begin failed"), errs.ErrStoreUnavailable), status: http.StatusServiceUnavailable, code: "unavailable"},
		{name: "unexpected", err: errs.New("boom"), status: http.StatusInternalServerError},
	}
	for _, tc := range domainErrors {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().RequestBooking(gomock.Any(), testUserID, view.ActivityID).
				Return(nil, errs.Wrap(tc.err, "request booking"))

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "token")

			httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.code)
			if tc.status == http.StatusServiceUnavailable {
				httptest.AssertHeaders(s.T(), rec, map[string]string{"Retry-After": "1"})
			}
		})
	}

	s.Run("401 without token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", reqBody, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

func (s *BookingHandlerTestSuite) TestGet() {
	view := builder.NewBookingBuilder(now).WithUser(testUserID).BuildView()

	s.Run("success", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), testUserID, int64(100)).Return(view, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/100", nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.EqualValues(testUserID, body["user_id"])
	})

	s.Run("404 when not owned", func() {
		s.mockQueries.EXPECT().GetBooking(gomock.Any(), testUserID, int64(7)).Return(nil, errs.ErrBookingNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/7", nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking_not_found")
	})

	s.Run("400 on malformed id", func() {
		for _, id := range []string{"abc", "0", "-1"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+id, nil, "token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
		}
	})
}

func (s *BookingHandlerTestSuite) TestList() {
	views := []*queries.BookingView{
		builder.NewBookingBuilder(now).WithUser(testUserID).BuildView(),
	}

	s.Run("pagination is forwarded", func() {
		s.mockQueries.EXPECT().ListBookingsByUser(gomock.Any(), testUserID, queries.Page{Offset: 10, Limit: 5}).
			Return(views, 11, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?offset=10&limit=5", nil, "token")

		var body struct {
			Items []map[string]any `json:"items"`
			Total int              `json:"total"`
			Limit int              `json:"limit"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 1)
		s.Equal(11, body.Total)
		s.Equal(5, body.Limit)
	})

	s.Run("default limit", func() {
		s.mockQueries.EXPECT().ListBookingsByUser(gomock.Any(), testUserID, queries.Page{Limit: queries.DefaultListLimit}).
			Return(nil, 0, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "token")

		var body struct {
			Items []map[string]any `json:"items"`
		}
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotNil(body.Items)
	})

	s.Run("400 on oversized limit", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings?limit=500", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestCancel() {
	cancelled := builder.NewBookingBuilder(now).WithUser(testUserID).BuildView()
	cancelled.Status = "cancelled"
	cancelled.CancelledAt = &now

	s.Run("success", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), testUserID, int64(100)).Return(cancelled, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/100/cancel", nil, "token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("cancelled", body["status"])
		s.NotEmpty(body["cancelled_at"])
	})

	s.Run("409 when already cancelled", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), testUserID, int64(100)).Return(nil, errs.ErrAlreadyCancelled)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/100/cancel", nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already_cancelled")
	})
}

func (s *BookingHandlerTestSuite) TestConfirmAttendance() {
	testCases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "not started", err: errs.ErrActivityNotStarted, status: http.StatusUnprocessableEntity, code: "activity_not_started"},
		{name: "already attended", err: errs.ErrInvalidState, status: http.StatusConflict, code: "invalid_state"},
		{name: "not owner", err: errs.ErrBookingNotFound, status: http.StatusNotFound, code: "booking_not_found"},
	}
	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.mockCommands.EXPECT().ConfirmAttendance(gomock.Any(), testUserID, int64(100)).Return(nil, tc.err)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/100/attendance", nil, "token")

			httptest.AssertErrorResponse(s.T(), rec, tc.status, tc.code)
		})
	}
}

func (s *BookingHandlerTestSuite) TestAvailability() {
	s.Run("success", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), int64(1)).
			Return(&queries.Availability{ActivityID: 1, Capacity: 3, Live: 1, Remaining: 2}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/activities/1/availability", nil, "token")

		var body map[string]int
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body["remaining"])
	})

	s.Run("404 for unknown activity", func() {
		s.mockQueries.EXPECT().GetAvailability(gomock.Any(), int64(9)).
			Return(nil, errs.Wrap(queries.ErrActivityNotFound, "activity 9"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/activities/9/availability", nil, "token")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}
