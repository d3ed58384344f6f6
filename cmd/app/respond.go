package main

import (
	"errors"
	"net/http"
	"strconv"

	"DripmenStore/internal/catalog"
	"DripmenStore/internal/events"
	"DripmenStore/internal/model"
	"DripmenStore/internal/repository"
	"DripmenStore/internal/services"

	"github.com/labstack/echo/v4"
)

// responder wraps every reply with the notifications the request raised.
type responder struct {
	notices *events.Recorder
}

func (r responder) drain() []events.Notification {
	n := r.notices.Drain()
	if n == nil {
		n = []events.Notification{}
	}
	return n
}

func (r responder) ok(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, echo.Map{
		"data":    data,
		"notices": r.drain(),
	})
}

func (r responder) fail(c echo.Context, err error) error {
	body := echo.Map{
		"error":   err.Error(),
		"notices": r.drain(),
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	return c.JSON(statusFor(err), body)
}

func statusFor(err error) int {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, services.ErrSizeRequired),
		errors.Is(err, services.ErrSizeUnavailable),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidCoupon),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordMismatch),
		errors.Is(err, repository.ErrOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrLoginRequired),
		errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, catalog.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, repository.ErrEmailTaken):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

// indexParam reads a non-negative integer path parameter.
func indexParam(c echo.Context, name string) (int, bool) {
	i, err := strconv.Atoi(c.Param(name))
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}
