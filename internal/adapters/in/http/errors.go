package http

import (
	"errors"
	"net/http"

	"fooddispatch/internal/core/application/usecases/commands"
	"fooddispatch/internal/core/domain/model/courier"
	"fooddispatch/internal/core/domain/model/order"
	"fooddispatch/internal/core/ports"
	"fooddispatch/internal/generated/servers"
	"fooddispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Operator-facing messages for dispatch outcomes.
const (
	MsgNoCourierAvailable = "no courier available, retry"
	MsgAssignmentFailed   = "assignment failed, try manual"
	MsgOrderChanged       = "order changed meanwhile, reload"
	MsgStorageUnavailable = "storage unavailable, retry later"
)

// writeError maps use case errors onto HTTP statuses. fallback is used for
// errors without a specific mapping.
func writeError(ctx echo.Context, err error, fallback string) error {
	code, message := classify(err, fallback)
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

func classify(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, ports.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, MsgStorageUnavailable
	case errors.Is(err, ports.ErrCapacityConflict):
		return http.StatusConflict, MsgAssignmentFailed
	case errors.Is(err, ports.ErrOrderStateConflict):
		return http.StatusConflict, MsgOrderChanged + ": " + err.Error()
	case errors.Is(err, courier.ErrCourierIsDeactivated),
		errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrUnknownOrderStep),
		errors.Is(err, commands.ErrUnknownAvailabilityAction):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, fallback
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{Code: http.StatusBadRequest, Message: message})
}

// errorHandler renders framework errors (unknown route, bad path parameter)
// in the API error shape.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}
