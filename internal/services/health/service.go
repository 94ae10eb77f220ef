package health

import (
	"context"
	"database/sql"
	"time"

	"resume-matcher/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Service reports liveness and dependency reachability.
type Service struct {
	DB          *sql.DB
	ObjectStore string
}

// NewService constructs a new health service. sqlDB may be nil when documents
// live in memory.
func NewService(sqlDB *sql.DB, objectStore string) *Service {
	return &Service{DB: sqlDB, ObjectStore: objectStore}
}

// Status returns the health payload and whether every dependency responded.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	payload := map[string]any{
		"ok":          true,
		"database":    "memory",
		"objectStore": s.ObjectStore,
	}
	if s.DB == nil {
		return payload, true
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		payload["ok"] = false
		payload["database"] = "unreachable"
		return payload, false
	}
	payload["database"] = "postgres"
	payload["pool"] = db.PoolStats(s.DB)
	return payload, true
}
