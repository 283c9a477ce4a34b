package controllerImp

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"fieldbook/entities"
	"fieldbook/pkg/apperr"
	fieldsvc "fieldbook/pkg/field/service"
	"fieldbook/pkg/harvest/service"
	"fieldbook/pkg/httpx"
	"fieldbook/pkg/report"
)

type HarvestCtrl struct {
	s      service.HarvestService
	fields fieldsvc.FieldService
}

func New(s service.HarvestService, fields fieldsvc.FieldService) *HarvestCtrl {
	return &HarvestCtrl{s: s, fields: fields}
}

type outcomeResp struct {
	service.Outcome
	Stale      bool   `json:"stale"`
	StaleError string `json:"stale_error,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Record answers 201 when every step landed, 202 when only the field's crop
// label lags, and the mapped error code with the partial outcome otherwise.
func (h *HarvestCtrl) Record(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	var req service.Request
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	req.FieldID = id
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.Request().Header.Get("Idempotency-Key")
	}
	out, err := h.s.RecordHarvest(c.Request().Context(), req)
	resp := outcomeResp{Outcome: out}
	if err != nil {
		if out.Yield == nil {
			return httpx.Fail(c, err)
		}
		resp.Error = err.Error()
		return c.JSON(apperr.HTTPStatus(err), resp)
	}
	if out.Stale != nil {
		resp.Stale = true
		resp.StaleError = out.Stale.Error()
		return c.JSON(http.StatusAccepted, resp)
	}
	code := http.StatusCreated
	if out.Replayed {
		code = http.StatusOK
	}
	return c.JSON(code, resp)
}

func (h *HarvestCtrl) List(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	list, err := h.s.Yields(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (h *HarvestCtrl) Orphans(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	list, err := h.s.Orphans(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

func (h *HarvestCtrl) AllOrphans(c echo.Context) error {
	list, err := h.s.Orphans(c.Request().Context(), 0)
	if err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusOK, nonNil(list))
}

// Export streams the field's yield history as an xlsx workbook.
func (h *HarvestCtrl) Export(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	ctx := c.Request().Context()
	f, err := h.fields.Get(ctx, id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	yields, err := h.s.Yields(ctx, id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	orphans, err := h.s.Orphans(ctx, id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	var buf bytes.Buffer
	if err := report.WriteHarvests(&buf, *f, yields, orphans); err != nil {
		return httpx.Fail(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="harvests-%d.xlsx"`, id))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func nonNil(l []entities.YieldRecord) []entities.YieldRecord {
	if l == nil {
		return []entities.YieldRecord{}
	}
	return l
}
