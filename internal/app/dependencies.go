package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/cashflow/internal/config"
	"github.com/klokku/cashflow/internal/event_bus"
	"github.com/klokku/cashflow/internal/utils"
	"github.com/klokku/cashflow/pkg/account"
	"github.com/klokku/cashflow/pkg/stats"
	"github.com/klokku/cashflow/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AccountRepo    account.Repository
	AccountService account.Service
	AccountHandler *account.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AccountRepo = account.NewRepository(db)
	account.RegisterPersister(deps.EventBus, deps.AccountRepo)
	deps.AccountService = account.NewService(
		deps.AccountRepo,
		deps.EventBus,
		deps.Clock,
		stats.NewCsvLedgerRenderer(),
		cfg.Projection,
	)
	deps.AccountHandler = account.NewHandler(deps.AccountService)

	return deps
}
