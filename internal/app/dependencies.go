package app

import (
	"database/sql"
	"time"

	"github.com/centavo/centavo/internal/config"
	"github.com/centavo/centavo/internal/event_bus"
	"github.com/centavo/centavo/internal/utils"
	"github.com/centavo/centavo/pkg/budget"
	"github.com/centavo/centavo/pkg/exclusion"
	"github.com/centavo/centavo/pkg/ledger"
	"github.com/centavo/centavo/pkg/spending"
	"github.com/centavo/centavo/pkg/wise"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	BudgetRepo    budget.BudgetRepo
	BudgetService budget.BudgetService
	BudgetHandler *budget.BudgetHandler

	ExclusionRepo    exclusion.ExclusionRepo
	ExclusionService exclusion.Service
	ExclusionHandler *exclusion.Handler

	LedgerRepo    ledger.LedgerRepo
	LedgerService ledger.Service
	LedgerHandler *ledger.Handler

	WiseClient wise.Client

	SpendingTracker  *spending.Tracker
	SpendingService  spending.Service
	DashboardHandler *spending.DashboardHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB, cfg config.Application, location *time.Location) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = utils.SystemClock{}

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.Clock, location, deps.EventBus)
	deps.BudgetHandler = budget.NewBudgetHandler(deps.BudgetService)

	deps.ExclusionRepo = exclusion.NewExclusionRepo(db)
	deps.ExclusionService = exclusion.NewService(deps.ExclusionRepo, deps.EventBus)
	deps.ExclusionHandler = exclusion.NewHandler(deps.ExclusionService)

	deps.LedgerRepo = ledger.NewLedgerRepo(db)
	deps.LedgerService = ledger.NewService(deps.LedgerRepo, deps.Clock, location, deps.EventBus)
	deps.LedgerHandler = ledger.NewHandler(deps.LedgerService)

	deps.WiseClient = wise.NewClient(cfg.Wise, cfg.Currency)

	deps.SpendingTracker = spending.NewTracker(deps.EventBus)
	deps.SpendingService = spending.NewService(
		deps.WiseClient,
		deps.BudgetRepo,
		deps.ExclusionRepo,
		deps.LedgerRepo,
		deps.SpendingTracker,
		cfg.Currency,
		location,
	)
	deps.DashboardHandler = spending.NewDashboardHandler(deps.BudgetService, deps.SpendingService, deps.ExclusionService, deps.WiseClient)

	return deps
}
