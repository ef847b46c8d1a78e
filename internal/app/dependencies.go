package app

import (
	"github.com/almanak/almanak/internal/config"
	"github.com/almanak/almanak/internal/event_bus"
	"github.com/almanak/almanak/internal/utils"
	"github.com/almanak/almanak/pkg/event"
	"github.com/almanak/almanak/pkg/export"
	"github.com/almanak/almanak/pkg/filestore"
	"github.com/almanak/almanak/pkg/holiday"
	"github.com/almanak/almanak/pkg/settings"
)

// Dependencies holds all stores, services, and handlers for the application.
type Dependencies struct {
	Bus *event_bus.EventBus

	FileStore     filestore.Store
	SettingsStore settings.Store

	HolidayCalculator *holiday.Calculator
	HolidayHandler    *holiday.Handler

	EventService *event.Service
	EventHandler *event.Handler

	ExportHandler *export.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	files, err := filestore.NewDirStore(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}
	deps.FileStore = files

	settingsStore, err := settings.NewFileStore(cfg.Data.SettingsFile)
	if err != nil {
		return nil, err
	}
	deps.SettingsStore = settingsStore

	deps.HolidayCalculator = holiday.NewCalculator()
	deps.HolidayHandler = holiday.NewHandler(deps.HolidayCalculator, deps.Clock)

	deps.EventService = event.NewService(deps.FileStore, deps.SettingsStore, deps.HolidayCalculator, deps.Bus)
	deps.EventHandler = event.NewHandler(deps.EventService)

	deps.ExportHandler = export.NewHandler(deps.EventService, deps.Clock)

	return deps, nil
}
