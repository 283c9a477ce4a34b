package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"fieldbook/entities"
	"fieldbook/pkg/cost/service"
	fieldsvc "fieldbook/pkg/field/service"
	"fieldbook/pkg/httpx"
)

type CostCtrl struct {
	s      service.CostService
	fields fieldsvc.FieldService
	loc    *time.Location
}

// New builds the controller; loc is the zone from/to dates are read in.
func New(s service.CostService, fields fieldsvc.FieldService, loc *time.Location) *CostCtrl {
	return &CostCtrl{s: s, fields: fields, loc: loc}
}

type createReq struct {
	Category  entities.CostCategory `json:"category"`
	Amount    decimal.Decimal       `json:"amount"`
	Notes     string                `json:"notes"`
	CreatedAt *time.Time            `json:"created_at"`
}

func (h *CostCtrl) Create(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	var req createReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	ctx := c.Request().Context()
	if _, err := h.fields.Get(ctx, id); err != nil {
		return httpx.Fail(c, err)
	}
	rec := &entities.CostRecord{FieldID: id, Category: req.Category, Amount: req.Amount, Notes: req.Notes}
	if req.CreatedAt != nil {
		rec.CreatedAt = *req.CreatedAt
	}
	if err := h.s.Append(ctx, rec); err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, rec)
}

func (h *CostCtrl) List(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	from, to, err := httpx.DateRange(c, h.loc)
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	list, err := h.s.List(c.Request().Context(), id, from, to)
	if err != nil {
		return httpx.Fail(c, err)
	}
	if list == nil {
		list = []entities.CostRecord{}
	}
	return c.JSON(http.StatusOK, list)
}
