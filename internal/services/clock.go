package services

import (
	"context"
	"time"

	"github.com/GregMSThompson/finan-bff/internal/events"
	"github.com/GregMSThompson/finan-bff/internal/models"
)

// Clock returns the current instant in the zone used for calendar days.
type Clock func() time.Time

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}

// transactionFeed is the last-known-good normalized transaction listing.
type transactionFeed interface {
	Get(ctx context.Context) ([]models.Transaction, error)
}

type cardFeed interface {
	Get(ctx context.Context) ([]models.Card, error)
	Invalidate()
}

type publisher interface {
	Publish(ctx context.Context, e events.Event)
}
