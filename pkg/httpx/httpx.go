// Package httpx holds the small echo helpers every controller shares.
package httpx

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fieldbook/pkg/apperr"
)

const DateLayout = "2006-01-02"

// ParseID reads a positive numeric path parameter.
func ParseID(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(v), nil
}

// Fail answers with the status code the error kind maps to.
func Fail(c echo.Context, err error) error {
	code := apperr.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(code, echo.Map{"error": err.Error()})
}

func BadRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// DateRange reads optional from/to query parameters (YYYY-MM-DD). to is
// inclusive, so it is returned as the start of the following day.
func DateRange(c echo.Context, loc *time.Location) (from, to *time.Time, err error) {
	if loc == nil {
		loc = time.UTC
	}
	if v := c.QueryParam("from"); v != "" {
		t, perr := time.ParseInLocation(DateLayout, v, loc)
		if perr != nil {
			return nil, nil, errors.New("invalid from date")
		}
		from = &t
	}
	if v := c.QueryParam("to"); v != "" {
		t, perr := time.ParseInLocation(DateLayout, v, loc)
		if perr != nil {
			return nil, nil, errors.New("invalid to date")
		}
		t = t.AddDate(0, 0, 1)
		to = &t
	}
	return from, to, nil
}
