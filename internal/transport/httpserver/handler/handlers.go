package handler

import (
	expensesdomain "expenses-app-go/internal/domain/expenses"
	reportdomain "expenses-app-go/internal/domain/report"
	"expenses-app-go/pkg/logger"
)

type Handlers struct {
	Expenses *expensesdomain.Service
	Report   *reportdomain.Service
	views    *Views
	log      logger.Logger
}

func New(expenses *expensesdomain.Service, report *reportdomain.Service, views *Views, log logger.Logger) *Handlers {
	return &Handlers{
		Expenses: expenses,
		Report:   report,
		views:    views,
		log:      log,
	}
}
