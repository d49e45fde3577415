package handlers

import (
	"log/slog"

	"github.com/GregMSThompson/finan-bff/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    DashboardService
	HistorySvc      HistoryService
	ReportSvc       ReportService
	CardSvc         CardService
	SelectionSvc    SelectionService
	GoalSvc         GoalService
	PlannerSvc      PlannerService
	TaskSvc         TaskService
	Feeds           []FeedStatus
	Cache           CacheKeyLister
}
