// Package app wires repositories, services and controllers over one database.
package app

import (
	"time"

	"gorm.io/gorm"

	"fieldbook/config"
	"fieldbook/pkg/capture"
	"fieldbook/pkg/metrics"
	"fieldbook/router"

	costCtrlImp "fieldbook/pkg/cost/controllerImp"
	costRepoImp "fieldbook/pkg/cost/repositoryImp"
	costService "fieldbook/pkg/cost/service"
	costSvcImp "fieldbook/pkg/cost/serviceImp"

	fieldCtrlImp "fieldbook/pkg/field/controllerImp"
	fieldRepoImp "fieldbook/pkg/field/repositoryImp"
	fieldService "fieldbook/pkg/field/service"
	fieldSvcImp "fieldbook/pkg/field/serviceImp"

	harvestCtrlImp "fieldbook/pkg/harvest/controllerImp"
	harvestService "fieldbook/pkg/harvest/service"
	harvestSvcImp "fieldbook/pkg/harvest/serviceImp"

	healthCtrlImp "fieldbook/pkg/health/controllerImp"

	statusCtrlImp "fieldbook/pkg/status/controllerImp"
	statusRepoImp "fieldbook/pkg/status/repositoryImp"
	statusService "fieldbook/pkg/status/service"
	statusSvcImp "fieldbook/pkg/status/serviceImp"

	yieldRepoImp "fieldbook/pkg/yield/repositoryImp"
)

type App struct {
	Fields   fieldService.FieldService
	Status   statusService.StatusService
	Harvests harvestService.HarvestService
	Costs    costService.CostService

	CaptureOptions []capture.Option
	Controllers    router.Controllers
}

// New builds the service graph. m may be nil when metrics are disabled.
func New(cfg config.AppConfig, db *gorm.DB, m *metrics.Metrics) *App {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.UTC
	}

	eventRepo := statusRepoImp.New(db)
	fields := fieldSvcImp.NewFieldService(fieldRepoImp.New(db), fieldSvcImp.WithMetrics(m))
	status := statusSvcImp.NewStatusService(eventRepo,
		statusSvcImp.WithMetrics(m),
		statusSvcImp.WithCacheTTL(cfg.StatusCacheTTL),
	)
	harvests := harvestSvcImp.NewHarvestService(harvestSvcImp.Deps{
		Yields:  yieldRepoImp.New(db),
		Status:  status,
		Events:  eventRepo,
		Fields:  fields,
		Metrics: m,
	})
	costs := costSvcImp.New(costRepoImp.New(db), m)

	return &App{
		Fields:         fields,
		Status:         status,
		Harvests:       harvests,
		Costs:          costs,
		CaptureOptions: []capture.Option{capture.WithThreshold(cfg.CloseThresholdM)},
		Controllers: router.Controllers{
			Field:   fieldCtrlImp.New(fields),
			Status:  statusCtrlImp.New(status, fields),
			Harvest: harvestCtrlImp.New(harvests, fields),
			Cost:    costCtrlImp.New(costs, fields, loc),
			Health:  healthCtrlImp.NewHealthCtrl(db),
		},
	}
}
