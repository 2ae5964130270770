package http

import (
	"errors"
	"net/http"

	"workplans/internal/core/application/usecases/queries"
	"workplans/internal/core/domain/model/workorder"
	"workplans/internal/core/domain/model/workplan"
	"workplans/internal/core/domain/services"
	"workplans/internal/core/ports"
	"workplans/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// renderError maps a use case error onto an HTTP response. Classification is
// by errors.Is against the error taxonomy of the core, so wrapped causes keep
// their status.
func renderError(ctx echo.Context, err error) error {
	code := statusOf(err)
	return ctx.JSON(code, Error{Code: code, Message: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, errNoIdentity):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, queries.ErrSetNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, workorder.ErrInvalidState),
		errors.Is(err, workplan.ErrPlanNotCancellable),
		errors.Is(err, workplan.ErrOrdersAlreadyAttached),
		errors.Is(err, services.ErrNoProductSelected),
		errors.Is(err, services.ErrInvalidProcessOptions),
		errors.Is(err, queries.ErrMaterialUnavailable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ports.ErrRemoteTimeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func renderForbidden(ctx echo.Context) error {
	return ctx.JSON(http.StatusForbidden, Error{
		Code:    http.StatusForbidden,
		Message: "you do not have write access to this work plan",
	})
}

func renderBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
