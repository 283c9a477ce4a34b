package controllerImp

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"fieldbook/entities"
	fieldsvc "fieldbook/pkg/field/service"
	"fieldbook/pkg/httpx"
	"fieldbook/pkg/status/service"
)

type StatusCtrl struct {
	s      service.StatusService
	fields fieldsvc.FieldService
}

func New(s service.StatusService, fields fieldsvc.FieldService) *StatusCtrl {
	return &StatusCtrl{s: s, fields: fields}
}

type appendReq struct {
	Status    entities.FieldStatus `json:"status"`
	Crop      string               `json:"crop"`
	Notes     string               `json:"notes"`
	CreatedAt *time.Time           `json:"created_at"` // optional, for backdated entries
}

func (h *StatusCtrl) Append(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	var req appendReq
	if err := c.Bind(&req); err != nil {
		return httpx.BadRequest(c, "bad json")
	}
	ctx := c.Request().Context()
	if _, err := h.fields.Get(ctx, id); err != nil {
		return httpx.Fail(c, err)
	}
	ev := &entities.StatusEvent{FieldID: id, Status: req.Status, Crop: req.Crop, Notes: req.Notes}
	if req.CreatedAt != nil {
		ev.CreatedAt = *req.CreatedAt
	}
	if _, err := h.s.Append(ctx, ev); err != nil {
		return httpx.Fail(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *StatusCtrl) Current(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	ev, ok, err := h.s.CurrentStatus(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	if !ok {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, ev)
}

func (h *StatusCtrl) History(c echo.Context) error {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		return httpx.BadRequest(c, err.Error())
	}
	list, err := h.s.History(c.Request().Context(), id)
	if err != nil {
		return httpx.Fail(c, err)
	}
	if list == nil {
		list = []entities.StatusEvent{}
	}
	return c.JSON(http.StatusOK, list)
}

// CurrentAll answers with the current status of every field that has one.
func (h *StatusCtrl) CurrentAll(c echo.Context) error {
	all, err := h.s.CurrentAll(c.Request().Context())
	if err != nil {
		return httpx.Fail(c, err)
	}
	out := make([]entities.StatusEvent, 0, len(all))
	for _, ev := range all {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FieldID < out[j].FieldID })
	return c.JSON(http.StatusOK, out)
}
