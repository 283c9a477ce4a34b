package httpx

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/pkg/apperr"
)

func newCtx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	return e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec), rec
}

func TestParseID(t *testing.T) {
	for _, tc := range []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	} {
		c, _ := newCtx("/")
		c.SetParamNames("id")
		c.SetParamValues(tc.raw)
		got, err := ParseID(c, "id")
		if tc.ok {
			require.NoError(t, err, tc.raw)
			assert.Equal(t, tc.want, got)
		} else {
			assert.EqualError(t, err, "invalid id", tc.raw)
		}
	}
}

func TestFailMapsKind(t *testing.T) {
	c, rec := newCtx("/")
	require.NoError(t, Fail(c, fmt.Errorf("%w: field 9", apperr.ErrNotFound)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "field 9")
}

func TestDateRange(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)

	c, _ := newCtx("/?from=2024-03-01&to=2024-03-31")
	from, to, err := DateRange(c, loc)
	require.NoError(t, err)
	assert.True(t, from.Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, loc)))
	assert.True(t, to.Equal(time.Date(2024, 4, 1, 0, 0, 0, 0, loc)))

	c, _ = newCtx("/")
	from, to, err = DateRange(c, nil)
	require.NoError(t, err)
	assert.Nil(t, from)
	assert.Nil(t, to)

	c, _ = newCtx("/?to=31-03-2024")
	_, _, err = DateRange(c, loc)
	assert.EqualError(t, err, "invalid to date")
}
