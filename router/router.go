package router

import (
	"github.com/labstack/echo/v4"

	costCtrl "fieldbook/pkg/cost/controllerImp"
	fieldCtrl "fieldbook/pkg/field/controller"
	harvestCtrl "fieldbook/pkg/harvest/controllerImp"
	healthCtrl "fieldbook/pkg/health/controllerImp"
	statusCtrl "fieldbook/pkg/status/controllerImp"
)

type Controllers struct {
	Field   fieldCtrl.FieldController
	Status  *statusCtrl.StatusCtrl
	Harvest *harvestCtrl.HarvestCtrl
	Cost    *costCtrl.CostCtrl
	Health  *healthCtrl.HealthCtrl
}

func New(e *echo.Echo, c Controllers) *echo.Echo {
	e.GET("/health", c.Health.Health)

	api := e.Group("")
	api.POST("/geometry/preview", c.Field.Preview)

	api.POST("/fields", c.Field.Create)
	api.GET("/fields", c.Field.List)
	api.GET("/fields/:id", c.Field.Get)
	api.PATCH("/fields/:id", c.Field.Patch)

	api.GET("/status/current", c.Status.CurrentAll)
	api.POST("/fields/:id/status", c.Status.Append)
	api.GET("/fields/:id/status", c.Status.Current)
	api.GET("/fields/:id/status/history", c.Status.History)

	api.POST("/fields/:id/harvests", c.Harvest.Record)
	api.GET("/fields/:id/harvests", c.Harvest.List)
	api.GET("/fields/:id/harvests/orphans", c.Harvest.Orphans)
	api.GET("/fields/:id/harvests/export", c.Harvest.Export)
	api.GET("/harvests/orphans", c.Harvest.AllOrphans)

	api.POST("/fields/:id/costs", c.Cost.Create)
	api.GET("/fields/:id/costs", c.Cost.List)
	return e
}
