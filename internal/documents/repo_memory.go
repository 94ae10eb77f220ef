package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo keeps documents in process memory. It backs dev runs without
// DATABASE_URL and the handler tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[string]*Document
	byOwner map[string][]string // document IDs in upload order
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[string]*Document),
		byOwner: make(map[string][]string),
	}
}

func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := doc
	r.byID[doc.ID] = &stored
	r.byOwner[doc.UserID] = append(r.byOwner[doc.UserID], doc.ID)
	return nil
}

// lookup returns the caller's document. Documents of other users are
// reported as missing. Callers hold r.mu.
func (r *MemoryRepo) lookup(userID, documentID string) (*Document, bool) {
	doc, ok := r.byID[documentID]
	if !ok || !doc.OwnedBy(userID) {
		return nil, false
	}
	return doc, true
}

func (r *MemoryRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byOwner[userID]
	if len(ids) == 0 {
		return Document{}, ErrNotFound
	}
	return *r.byID[ids[len(ids)-1]], nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.lookup(userID, documentID)
	if !ok {
		return Document{}, ErrNotFound
	}
	return *doc, nil
}

// UpdateExtraction records the cached text key. The first recorded key wins.
func (r *MemoryRepo) UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.lookup(userID, documentID)
	if !ok {
		return ErrNotFound
	}
	if doc.ExtractedTextKey == "" {
		at := extractedAt
		doc.ExtractedTextKey = extractedKey
		doc.ExtractedAt = &at
	}
	return nil
}

// ListByUser returns documents newest first. Later uploads win CreatedAt
// ties. A non-positive limit returns everything after offset.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	ids := r.byOwner[userID]
	docs := make([]Document, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		docs = append(docs, *r.byID[ids[i]])
	}
	r.mu.RUnlock()

	if offset >= len(docs) {
		return []Document{}, nil
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})

	end := len(docs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return docs[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
