package httpserver

import (
	"net/http"
	"time"

	"expenses-app-go/internal/config"
	"expenses-app-go/internal/transport/httpserver/handler"
	"expenses-app-go/internal/transport/httpserver/middleware"
	"expenses-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.NewRequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/", handlers.Index)

	r.Get("/add_expense", handlers.AddExpensePage)
	r.Post("/add_expense", handlers.AddExpense)

	r.Route("/expense/{id}", func(r chi.Router) {
		r.Get("/edit/", handlers.EditExpensePage)
		r.Post("/edit/", handlers.EditExpense)
		r.Post("/delete/", handlers.DeleteExpense)
	})

	r.Get("/report", handlers.ReportPage)

	r.Get("/edit_category", handlers.CategoriesPage)
	r.Post("/edit_category", handlers.EditCategory)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.NewCORS(cfg.AllowedOrigins))

		r.Get("/health", handlers.Health)
		r.Get("/report", handlers.ReportJSON)
	})

	return r
}
