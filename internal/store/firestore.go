package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/finan-bff/internal/errs"
)

const cacheCollection = "bff_cache"

type cacheDoc struct {
	Value     string    `firestore:"value"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

type firestoreCache struct {
	client *firestore.Client
}

func NewFirestoreCache(client *firestore.Client) *firestoreCache {
	return &firestoreCache{client: client}
}

func (c *firestoreCache) collection() *firestore.CollectionRef {
	return c.client.Collection(cacheCollection)
}

func (c *firestoreCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	snap, err := c.collection().Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return false, nil
		}
		return false, errs.NewDatabaseError("read", "failed to read cache entry "+key, err)
	}
	var doc cacheDoc
	if err := snap.DataTo(&doc); err != nil {
		return false, errs.NewDatabaseError("read", "failed to parse cache entry "+key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), dst); err != nil {
		return false, errs.NewDatabaseError("read", "failed to decode cache entry "+key, err)
	}
	return true, nil
}

func (c *firestoreCache) Put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errs.NewDatabaseError("write", "failed to encode cache entry "+key, err)
	}
	_, err = c.collection().Doc(key).Set(ctx, cacheDoc{Value: string(b), UpdatedAt: time.Now().UTC()})
	if err != nil {
		return errs.NewDatabaseError("write", "failed to store cache entry "+key, err)
	}
	return nil
}

func (c *firestoreCache) Keys(ctx context.Context) ([]string, error) {
	it := c.collection().DocumentRefs(ctx)
	keys := make([]string, 0)
	for {
		ref, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to list cache keys", err)
		}
		keys = append(keys, ref.ID)
	}
	return keys, nil
}

// Close is a no-op; the client belongs to bootstrap.
func (c *firestoreCache) Close() error { return nil }
