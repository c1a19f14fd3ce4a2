// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"gorm.io/gorm"

	"github.com/psp-treasury/backend/config"
	"github.com/psp-treasury/backend/internal/application/adapter"
	"github.com/psp-treasury/backend/internal/application/usecase/alias"
	"github.com/psp-treasury/backend/internal/application/usecase/ledger"
	"github.com/psp-treasury/backend/internal/application/usecase/override"
	"github.com/psp-treasury/backend/internal/application/usecase/rate"
	"github.com/psp-treasury/backend/internal/infra/server/router"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/controller"
	"github.com/psp-treasury/backend/internal/integration/entrypoint/middleware"
	"github.com/psp-treasury/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
// The rate cache is passed in because its backend (Redis or in-process)
// is chosen at startup from configuration.
func NewInjector(cfg *config.Config, db *gorm.DB, rateCache adapter.RateCache) *Injector {
	// Create repositories
	transactionRepo := persistence.NewTransactionRepository(db)
	rateRepo := persistence.NewRateRepository(db)
	overrideRepo := persistence.NewOverrideRepository(db)
	devirRepo := persistence.NewComputedDevirRepository(db)
	aliasRepo := persistence.NewAliasRepository(db)

	// Create resolvers
	rateResolver := rate.NewResolver(rateRepo, rateCache)
	aliasResolver := alias.NewResolver(aliasRepo)

	// Create ledger use cases
	computeRangeUseCase := ledger.NewComputeRangeUseCase(transactionRepo, overrideRepo, devirRepo, rateResolver, aliasResolver)
	computeMonthlyUseCase := ledger.NewComputeMonthlyUseCase(computeRangeUseCase)
	reconcileBatchUseCase := ledger.NewReconcileBatchUseCase(computeRangeUseCase, transactionRepo, aliasResolver, cfg.Ledger.ReconcileWorkers)
	importTransactionsUseCase := ledger.NewImportTransactionsUseCase(transactionRepo)

	// Create rate use cases
	createRateUseCase := rate.NewCreateRateUseCase(rateRepo, rateResolver)
	updateRateUseCase := rate.NewUpdateRateUseCase(rateRepo, rateResolver)
	listRatesUseCase := rate.NewListRatesUseCase(rateRepo)
	setLegacyRateUseCase := rate.NewSetLegacyRateUseCase(rateRepo, rateResolver)

	// Create override use cases
	upsertOverrideUseCase := override.NewUpsertOverrideUseCase(overrideRepo)
	listOverridesUseCase := override.NewListOverridesUseCase(overrideRepo)
	deleteOverrideUseCase := override.NewDeleteOverrideUseCase(overrideRepo)

	// Create alias use cases
	createAliasUseCase := alias.NewCreateAliasUseCase(aliasRepo)
	listAliasesUseCase := alias.NewListAliasesUseCase(aliasRepo)
	deleteAliasUseCase := alias.NewDeleteAliasUseCase(aliasRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	ledgerController := controller.NewLedgerController(
		computeRangeUseCase,
		computeMonthlyUseCase,
		reconcileBatchUseCase,
	)

	transactionController := controller.NewTransactionController(
		importTransactionsUseCase,
		ledgerController,
	)

	rateController := controller.NewRateController(
		createRateUseCase,
		updateRateUseCase,
		listRatesUseCase,
		setLegacyRateUseCase,
	)

	overrideController := controller.NewOverrideController(
		upsertOverrideUseCase,
		listOverridesUseCase,
		deleteOverrideUseCase,
	)

	aliasController := controller.NewAliasController(
		createAliasUseCase,
		listAliasesUseCase,
		deleteAliasUseCase,
	)

	// Create middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var reconcileRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		reconcileRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		reconcileRateLimiter = middleware.NewRateLimiter()
	}

	// Create router
	r := router.NewRouter(
		healthController,
		ledgerController,
		transactionController,
		rateController,
		overrideController,
		aliasController,
		reconcileRateLimiter,
	)

	return &Injector{
		Config: cfg,
		DB:     db,
		Router: r,
	}
}
