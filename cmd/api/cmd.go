package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/analytics"
	"github.com/GregMSThompson/finan-bff/internal/bootstrap"
	"github.com/GregMSThompson/finan-bff/internal/config"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/feed"
	"github.com/GregMSThompson/finan-bff/internal/handlers"
	"github.com/GregMSThompson/finan-bff/internal/models"
	"github.com/GregMSThompson/finan-bff/internal/poller"
	"github.com/GregMSThompson/finan-bff/internal/response"
	"github.com/GregMSThompson/finan-bff/internal/router"
	"github.com/GregMSThompson/finan-bff/internal/selection"
	"github.com/GregMSThompson/finan-bff/internal/services"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	src := bs.Source

	// feeds
	txFeed := feed.New("transactions", func(ctx context.Context) ([]models.Transaction, error) {
		raw, err := src.ListTransactions(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.Normalize(raw, bs.Clock()), nil
	})
	cardFeed := feed.New("cards", func(ctx context.Context) ([]models.Card, error) {
		raw, err := src.ListCards(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.NormalizeCards(raw), nil
	})
	historyFeed := feed.New[models.HistoryRecord]("planner-history", src.PlannerHistory)
	txFeed.Follow(bs.Bus, events.TransactionCreated)
	cardFeed.Follow(bs.Bus, events.TransactionCreated)
	historyFeed.Follow(bs.Bus, events.TransactionCreated)

	// services
	selsvc := selection.NewService(src)
	dashsvc := services.NewDashboardService(txFeed, cardFeed, src, bs.Clock)
	histsvc := services.NewHistoryService(txFeed, src, bs.Bus, bs.Clock)
	repsvc := services.NewReportService(txFeed, src, cfg.Budgets, cfg.ReportTopCategories, bs.Clock)
	cardsvc := services.NewCardService(src, cardFeed, bs.Bus, selsvc, bs.Clock)
	goalsvc := services.NewGoalService(src, bs.Clock)
	tasksvc := services.NewTaskService(src, bs.Cache)
	plansvc := services.NewPlannerService(tasksvc, historyFeed, src, bs.Cache, bs.Bus, bs.Clock)

	// background refresh
	poll, err := poller.New(cfg.PollSchedule, bs.Log, txFeed, cardFeed, historyFeed, tasksvc)
	exitOnError("poller setup failed", err, bs.Log)
	go poll.Run(ctx)

	if bs.Bridge != nil {
		go func() {
			if err := bs.Bridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				bs.Log.Error("event bridge stopped", "error", err)
			}
		}()
	}

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.DashboardSvc = dashsvc
	deps.HistorySvc = histsvc
	deps.ReportSvc = repsvc
	deps.CardSvc = cardsvc
	deps.SelectionSvc = selsvc
	deps.GoalSvc = goalsvc
	deps.PlannerSvc = plansvc
	deps.TaskSvc = tasksvc
	deps.Feeds = []handlers.FeedStatus{txFeed, cardFeed, historyFeed}
	deps.Cache = bs.Cache

	// router
	r := router.NewRouter(deps)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			bs.Log.Warn("server shutdown", "error", err)
		}
	}()

	bs.Log.Info("listening", "addr", srv.Addr)
	err = srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	exitOnError("server start failed", err, bs.Log)
}
