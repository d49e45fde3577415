package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/response"
	"github.com/GregMSThompson/finan-bff/pkg/logger"
)

// FeedStatus is a cached upstream listing whose freshness /healthz reports.
type FeedStatus interface {
	Name() string
	FetchedAt() time.Time
}

type CacheKeyLister interface {
	Keys(ctx context.Context) ([]string, error)
}

type healthHandlers struct {
	ResponseHandler response.ResponseHandler
	Feeds           []FeedStatus
	Cache           CacheKeyLister
}

func NewHealthHandlers(deps *Deps) *healthHandlers {
	return &healthHandlers{
		ResponseHandler: deps.ResponseHandler,
		Feeds:           deps.Feeds,
		Cache:           deps.Cache,
	}
}

type healthView struct {
	Status    string                `json:"status"`
	Feeds     map[string]*time.Time `json:"feeds"`
	CacheKeys []string              `json:"cacheKeys"`
}

// GetHealth always answers 200 while the process is up. A feed that has
// never fetched reports null; an unreadable cache marks the status degraded.
func (h *healthHandlers) GetHealth(w http.ResponseWriter, r *http.Request) {
	view := healthView{
		Status:    "ok",
		Feeds:     make(map[string]*time.Time, len(h.Feeds)),
		CacheKeys: []string{},
	}
	for _, f := range h.Feeds {
		var at *time.Time
		if t := f.FetchedAt(); !t.IsZero() {
			at = &t
		}
		view.Feeds[f.Name()] = at
	}
	if h.Cache != nil {
		keys, err := h.Cache.Keys(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).Warn("cache keys unavailable", "error", err)
			view.Status = "degraded"
		} else {
			view.CacheKeys = keys
		}
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, view)
}
