package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"sweetshop/internal/errors"
)

// httpError translates a domain error into an echo HTTP error. Uncategorized
// failures are logged server-side and surfaced as a generic 500.
func httpError(err error) *echo.HTTPError {
	mapped := errors.MapErrorToHTTP(err)
	if mapped.StatusCode == http.StatusInternalServerError {
		logrus.WithError(err).Error("unhandled error")
	}
	return echo.NewHTTPError(mapped.StatusCode, mapped.Message)
}
