package documents

import (
	"context"
	"time"
)

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	GetCurrentByUser(ctx context.Context, userID string) (Document, error)
	GetByID(ctx context.Context, userID, documentID string) (Document, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error)
	// UpdateExtraction records the cached text key once; later calls keep the first value.
	UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error
}
