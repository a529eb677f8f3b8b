package httperr

import (
	"log/slog"
	"net/http"
	"strconv"

	"activity-ledger/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// RetryAfterSeconds is advertised on 503 responses for transient store failures.
const RetryAfterSeconds = 1

const maxStackLines = 12

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Code    string `json:"code,omitempty"`
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		err = errs.New(msg)
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	abort(c, err, resp)
}

type mapping struct {
	target error
	status int
	code   string
	msg    string
}

var domainMappings = []mapping{
	{errs.ErrActivityNotBookable, http.StatusUnprocessableEntity, "activity_not_bookable", "Activity is not open for booking"},
	{errs.ErrActivityFull, http.StatusConflict, "activity_full", "Activity is full"},
	{errs.ErrDuplicateBooking, http.StatusConflict, "duplicate_booking", "A live booking for this activity already exists"},
	{errs.ErrBookingNotFound, http.StatusNotFound, "booking_not_found", "Booking not found"},
	{errs.ErrAlreadyCancelled, http.StatusConflict, "already_cancelled", "Booking is already cancelled"},
	{errs.ErrInvalidState, http.StatusConflict, "invalid_state", "Booking cannot make this transition"},
	{errs.ErrActivityNotStarted, http.StatusUnprocessableEntity, "activity_not_started", "Activity has not started yet"},
	{errs.ErrInvalidOutcome, http.StatusBadRequest, "invalid_outcome", "Unknown outcome status"},
}

// AbortWithDomainError maps booking-core errors to HTTP statuses. Extra
// mappings are consulted first so handlers can add read-side errors.
func AbortWithDomainError(c *gin.Context, err error, extra ...map[error]int) {
	for _, m := range extra {
		for target, status := range m {
			if errs.Is(err, target) {
				AbortWithError(c, status, err, target.Error(), nil)
				return
			}
		}
	}

	for _, m := range domainMappings {
		if errs.Is(err, m.target) {
			resp := Response{Status: m.status}
			resp.Error.Code = m.code
			resp.Error.Message = m.msg
			abort(c, err, resp)
			return
		}
	}

	if errs.IsTransient(err) {
		c.Header("Retry-After", strconv.Itoa(RetryAfterSeconds))
		resp := Response{Status: http.StatusServiceUnavailable}
		resp.Error.Code = "unavailable"
		resp.Error.Message = "Service temporarily unavailable, retry later"
		abort(c, err, resp)
		return
	}

	slog.ErrorContext(c.Request.Context(), "unexpected error",
		"path", c.Request.URL.Path,
		"error", err.Error(),
		"stack", errs.ExtractStackLines(err, maxStackLines))
	AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}
