package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"

	financeclient "github.com/GregMSThompson/finan-bff/internal/client/finance"
	"github.com/GregMSThompson/finan-bff/internal/config"
	"github.com/GregMSThompson/finan-bff/internal/datasource"
	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/services"
	"github.com/GregMSThompson/finan-bff/internal/store"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

type Bootstrap struct {
	Log       *slog.Logger
	Clock     services.Clock
	Firestore *firestore.Client
	Cache     store.Cache
	Source    datasource.Source
	Bus       *events.Bus
	Bridge    *events.Bridge
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.HandlerFor(cfg.LogFormat))
	if err = cfg.Validate(); err != nil {
		return bs, err
	}
	bs.Clock = services.NewClock(cfg.Location)

	if cfg.CacheBackend == store.BackendFirestore {
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, fmt.Errorf("firestore: %w", err)
		}
	}
	bs.Cache, err = initCache(cfg, bs.Firestore)
	if err != nil {
		return bs, err
	}

	bs.Source, err = initSource(cfg, bs.Clock)
	if err != nil {
		return bs, err
	}

	bs.Bus = events.NewBus(uuid.NewString())
	if cfg.AMQPURL != "" {
		bs.Bridge, err = events.NewBridge(cfg.AMQPURL, cfg.AMQPExchange, bs.Bus, bs.Log)
		if err != nil {
			return bs, fmt.Errorf("event bridge: %w", err)
		}
		bs.Bus.AddForwarder(bs.Bridge)
	}

	bs.Log.Info("bootstrap complete",
		"data_source", cfg.DataSource,
		"cache_backend", cfg.CacheBackend,
		"event_bridge", bs.Bridge != nil,
		"timezone", cfg.Location.String())
	return bs, nil
}

func initCache(cfg *config.Config, client *firestore.Client) (store.Cache, error) {
	switch cfg.CacheBackend {
	case store.BackendFirestore:
		return store.NewFirestoreCache(client), nil
	default:
		c, err := store.NewSQLiteCache(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite cache: %w", err)
		}
		return c, nil
	}
}

// initSource serves the bundled fixtures in static mode. In remote mode the
// fixtures back card, transaction and goal reads while the API is down.
func initSource(cfg *config.Config, now services.Clock) (datasource.Source, error) {
	static, err := datasource.NewStatic(now)
	if err != nil {
		return nil, err
	}
	if cfg.DataSource == datasource.KindStatic {
		return static, nil
	}
	remote := financeclient.NewAdapter(cfg.FinanceAPIURL, cfg.FinanceAPITimeout)
	return datasource.NewFallback(remote, static), nil
}

func (bs *Bootstrap) Close() {
	if bs.Bridge != nil {
		if err := bs.Bridge.Close(); err != nil {
			bs.Log.Warn("closing event bridge", "error", err)
		}
	}
	if bs.Cache != nil {
		if err := bs.Cache.Close(); err != nil {
			bs.Log.Warn("closing cache", "error", err)
		}
	}
	if bs.Firestore != nil {
		bs.Firestore.Close()
	}
}
