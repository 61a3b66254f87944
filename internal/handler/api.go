package handler

import (
	"github.com/plannerpad/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	accounts  *service.AccountService
	calendars *service.CalendarService
	planner   *service.PlannerService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	return &API{
		accounts:  service.NewAccountService(gdb),
		calendars: service.NewCalendarService(gdb),
		planner:   service.NewPlannerService(gdb),
	}
}
