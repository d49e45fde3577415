package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/finan-bff/internal/handlers"
	"github.com/GregMSThompson/finan-bff/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	hc := handlers.NewHealthHandlers(deps)
	r.Get("/healthz", hc.GetHealth)

	dh := handlers.NewDashboardHandlers(deps)
	hh := handlers.NewHistoryHandlers(deps)
	rh := handlers.NewReportHandlers(deps)
	ch := handlers.NewCardHandlers(deps)
	sh := handlers.NewSelectionHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	ph := handlers.NewPlannerHandlers(deps)
	th := handlers.NewTaskHandlers(deps)

	r.Mount("/dashboard", dh.DashboardRoutes())
	r.Mount("/history", hh.HistoryRoutes())
	r.Mount("/reports", rh.ReportRoutes())
	r.Mount("/cards", ch.CardRoutes())
	r.Mount("/selection", sh.SelectionRoutes())
	r.Mount("/goals", gh.GoalRoutes())
	r.Mount("/planner", ph.PlannerRoutes())
	r.Mount("/tasks", th.TaskRoutes())
	return r
}
