package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/metrics"
	"resume-matcher/internal/shared/storage/object"
	"resume-matcher/internal/shared/telemetry"
	"resume-matcher/internal/shared/util"
)

const discardTimeout = 10 * time.Second

// Service contains business logic for documents.
type Service struct {
	Store           object.ObjectStore
	Repo            Repo
	StorageProvider string
	// MaxBytes caps an upload; zero means unlimited.
	MaxBytes int64
	Now      func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Upload saves the file to object storage and records the document.
func (s *Service) Upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	doc, err := s.upload(ctx, userID, fileName, r)
	switch {
	case err == nil:
		metrics.IncDocumentUpload("ok")
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTooLarge):
		metrics.IncDocumentUpload("rejected")
	default:
		metrics.IncDocumentUpload("error")
	}
	return doc, err
}

func (s *Service) upload(ctx context.Context, userID, fileName string, r io.Reader) (Document, error) {
	fileName = strings.TrimSpace(fileName)
	if userID == "" || fileName == "" {
		return Document{}, ErrInvalidInput
	}

	body := r
	if s.MaxBytes > 0 {
		body = io.LimitReader(r, s.MaxBytes+1)
	}
	obj, err := s.Store.Save(ctx, userID, fileName, body)
	if err != nil {
		if errors.Is(err, util.ErrInvalidFileName) {
			return Document{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		return Document{}, fmt.Errorf("store document: %w", err)
	}
	if s.MaxBytes > 0 && obj.SizeBytes > s.MaxBytes {
		s.discard(obj.Key)
		return Document{}, ErrTooLarge
	}
	if obj.SizeBytes == 0 {
		s.discard(obj.Key)
		return Document{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	provider := s.StorageProvider
	if provider == "" {
		provider = "local"
	}
	doc := Document{
		ID:              uuid.NewString(),
		UserID:          userID,
		FileName:        fileName,
		MimeType:        extract.DetectMimeType(obj.MimeType, fileName, nil),
		SizeBytes:       obj.SizeBytes,
		Checksum:        obj.Checksum,
		StorageProvider: provider,
		StorageKey:      obj.Key,
		CreatedAt:       s.now(),
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		s.discard(obj.Key)
		return Document{}, fmt.Errorf("record document: %w", err)
	}

	telemetry.Info("document.uploaded", map[string]any{
		"document_id": doc.ID,
		"user_id":     userID,
		"mime_type":   doc.MimeType,
		"extension":   doc.Extension(),
		"size_bytes":  doc.SizeBytes,
	})
	return doc, nil
}

// discard removes an object written for an upload that was then rejected.
// It runs on a fresh context so a cancelled request still cleans up.
func (s *Service) discard(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), discardTimeout)
	defer cancel()
	if err := s.Store.Delete(ctx, key); err != nil {
		telemetry.Warn("document.discard_failed", map[string]any{
			"storage_key": key,
			"error":       err,
		})
	}
}

// Current returns the most recent document for a user.
func (s *Service) Current(ctx context.Context, userID string) (Document, error) {
	if userID == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetCurrentByUser(ctx, userID)
}

// Get returns one of the user's documents.
func (s *Service) Get(ctx context.Context, userID, documentID string) (Document, error) {
	if userID == "" || strings.TrimSpace(documentID) == "" {
		return Document{}, ErrInvalidInput
	}
	return s.Repo.GetByID(ctx, userID, documentID)
}

// List returns the user's documents, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Text returns the document's plain text. The first call extracts and caches
// it; later calls read the cached copy.
func (s *Service) Text(ctx context.Context, doc Document) (string, error) {
	if doc.HasExtractedText() {
		text, err := extract.ReadExtracted(ctx, s.Store, doc.ExtractedTextKey)
		if err == nil {
			return text, nil
		}
		log := telemetry.Warn
		if errors.Is(err, object.ErrNotFound) {
			log = telemetry.Info
		}
		log("document.cache_miss", map[string]any{
			"document_id": doc.ID,
			"error":       err,
		})
	}

	text, err := extract.ExtractText(ctx, s.Store, doc.StorageKey, doc.MimeType, doc.FileName)
	if err != nil {
		return "", err
	}
	if err := s.Repo.UpdateExtraction(ctx, doc.UserID, doc.ID, extract.ExtractedKey(doc.StorageKey), s.now()); err != nil && !errors.Is(err, ErrNotFound) {
		return "", fmt.Errorf("record extraction: %w", err)
	}
	return text, nil
}
