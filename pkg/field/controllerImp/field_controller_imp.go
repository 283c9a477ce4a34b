package controllerImp

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldbook/pkg/field/service"
	"fieldbook/pkg/geomath"
	"fieldbook/pkg/httpx"
)

type FieldCtrl struct{ s service.FieldService }

func New(s service.FieldService) *FieldCtrl { return &FieldCtrl{s} }

func (h *FieldCtrl) Create(c echo.Context) error {
	var req service.Draft
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	f, err := h.s.CreateFromRing(c.Request().Context(), req)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

func (h *FieldCtrl) Get(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	f, err := h.s.Get(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *FieldCtrl) List(c echo.Context) error {
	list, err := h.s.List(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, list)
}

func (h *FieldCtrl) Patch(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	var req service.Patch
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	f, err := h.s.Patch(c.Request().Context(), id, req)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// Preview answers with the area and centroid of a ring without storing it.
func (h *FieldCtrl) Preview(c echo.Context) error {
	var req struct {
		Ring []geomath.Point `json:"ring"`
	}
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	g, err := h.s.Preview(req.Ring)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, g)
}
