package app

import (
	"context"
	"fmt"
	"net/http"

	"expenses-app-go/internal/config"
	"expenses-app-go/internal/db"
	expensesdomain "expenses-app-go/internal/domain/expenses"
	reportdomain "expenses-app-go/internal/domain/report"
	"expenses-app-go/internal/repository/inmemory"
	postgresexpenses "expenses-app-go/internal/repository/postgres/expenses"
	postgresreport "expenses-app-go/internal/repository/postgres/report"
	"expenses-app-go/internal/transport/httpserver"
	"expenses-app-go/internal/transport/httpserver/handler"
	"expenses-app-go/pkg/logger"
	"expenses-app-go/web"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	log        logger.Logger
	db         *gorm.DB
	expenses   *expensesdomain.Service
	report     *reportdomain.Service
	httpServer *http.Server
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg, log)
}

func NewWithConfig(cfg config.Config, log logger.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	var (
		expensesRepo expensesdomain.Repository
		reportRepo   reportdomain.Repository
	)
	switch cfg.Storage {
	case config.StorageMemory:
		log.Info("app: using in-memory storage")
		store := inmemory.NewStore()
		expensesRepo = inmemory.NewExpensesRepository(store)
		reportRepo = inmemory.NewReportRepository(store)
	default:
		log.Info("app: initializing database")
		dbConn, err := db.NewPostgres(cfg.DB, log)
		if err != nil {
			return nil, err
		}
		a.db = dbConn
		expensesRepo = postgresexpenses.NewPostgres(dbConn)
		reportRepo = postgresreport.NewPostgres(dbConn)
	}

	a.expenses = expensesdomain.NewServiceWithCache(expensesRepo, inmemory.NewInMemoryCategoriesCache(), cfg.CategoriesCacheTTL)
	a.report = reportdomain.NewService(reportRepo)

	views, err := handler.LoadViews(web.TemplatesFS)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load views: %w", err)
	}

	log.Info("app: initializing router")
	handlers := handler.New(a.expenses, a.report, views, log)
	router := httpserver.NewRouter(cfg, handlers, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)

	return a, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Migrate applies pending schema migrations. In-memory storage has no schema.
func (a *App) Migrate() error {
	if a.db == nil {
		a.log.Info("app: no database configured, skipping migrations")
		return nil
	}
	return db.Migrate(a.db, a.log)
}

func (a *App) Seed(ctx context.Context) (expensesdomain.SeedResult, error) {
	result, err := a.expenses.SeedSampleData(ctx)
	if err != nil {
		return expensesdomain.SeedResult{}, err
	}
	a.log.Info("app: sample data seeded", "categories", result.Categories, "expenses", result.Expenses)
	return result, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
