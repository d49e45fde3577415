package store

import "context"

// Keys of the offline cache. They match what older clients wrote to device
// storage so an exported cache can be loaded as-is.
const (
	TasksKey   = "finan_tasks_v1"
	HistoryKey = "finan_task_history_v1"
	ClaimsKey  = "finan_task_claims_v1"
)

const (
	BackendSQLite    = "sqlite"
	BackendFirestore = "firestore"
)

// Cache is a small JSON key/value store used as the offline fallback for
// planner data. It is never the system of record, except for claims.
type Cache interface {
	// Get decodes the value at key into dst and reports whether it existed.
	Get(ctx context.Context, key string, dst any) (bool, error)
	Put(ctx context.Context, key string, v any) error
	// Keys lists the stored keys; /healthz reports them.
	Keys(ctx context.Context) ([]string, error)
	Close() error
}
