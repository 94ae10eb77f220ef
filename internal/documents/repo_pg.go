package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const maxListLimit = 100

// PGRepo stores documents in the Postgres "documents" table. Soft-deleted
// rows (deleted_at set) are invisible to every read.
type PGRepo struct {
	DB *sql.DB
}

const selectDocuments = `
SELECT id, user_id, file_name, mime_type, size_bytes, checksum, storage_provider,
       storage_key, extracted_text_key, extracted_at, created_at
FROM documents`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var (
		doc                                   Document
		checksum, provider, key, extractedKey sql.NullString
		extractedAt                           sql.NullTime
	)
	err := row.Scan(&doc.ID, &doc.UserID, &doc.FileName, &doc.MimeType, &doc.SizeBytes,
		&checksum, &provider, &key, &extractedKey, &extractedAt, &doc.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, ErrNotFound
	}
	if err != nil {
		return Document{}, fmt.Errorf("scan document: %w", err)
	}
	doc.Checksum = checksum.String
	doc.StorageProvider = provider.String
	doc.StorageKey = key.String
	doc.ExtractedTextKey = extractedKey.String
	if extractedAt.Valid {
		at := extractedAt.Time
		doc.ExtractedAt = &at
	}
	return doc, nil
}

func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (id, user_id, file_name, original_filename, mime_type, size_bytes,
                       checksum, storage_provider, storage_key, created_at)
VALUES ($1, $2, $3, $3, $4, $5, $6, $7, $8, $9)`

	provider := doc.StorageProvider
	if provider == "" {
		provider = "local"
	}
	_, err := r.DB.ExecContext(ctx, query,
		doc.ID, doc.UserID, doc.FileName, doc.MimeType, doc.SizeBytes,
		optional(doc.Checksum), provider, optional(doc.StorageKey), doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *PGRepo) GetCurrentByUser(ctx context.Context, userID string) (Document, error) {
	const query = selectDocuments + `
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT 1`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID))
}

func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = selectDocuments + `
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL`
	return scanDocument(r.DB.QueryRowContext(ctx, query, userID, documentID))
}

// ListByUser pages through a user's documents newest first. The page size
// is capped at maxListLimit; a non-positive limit means the full cap.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	offset = max(offset, 0)
	const query = selectDocuments + `
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	docs := make([]Document, 0, limit)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// UpdateExtraction sets the cached text key only while it is still empty.
// When no row changes, an existence check tells "already cached" (nil)
// apart from "no such document" (ErrNotFound).
func (r *PGRepo) UpdateExtraction(ctx context.Context, userID, documentID, extractedKey string, extractedAt time.Time) error {
	const update = `
UPDATE documents
SET extracted_text_key = $1, extracted_at = $2
WHERE user_id = $3 AND id = $4 AND extracted_text_key IS NULL AND deleted_at IS NULL`
	res, err := r.DB.ExecContext(ctx, update, extractedKey, extractedAt, userID, documentID)
	if err != nil {
		return fmt.Errorf("update extraction: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		return nil
	}

	const exists = `
SELECT EXISTS (SELECT 1 FROM documents WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL)`
	var found bool
	if err := r.DB.QueryRowContext(ctx, exists, userID, documentID).Scan(&found); err != nil {
		return fmt.Errorf("check document: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
