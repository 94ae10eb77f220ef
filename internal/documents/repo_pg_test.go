package documents

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var columns = []string{"id", "user_id", "file_name", "mime_type", "size_bytes", "checksum", "storage_provider", "storage_key", "extracted_text_key", "extracted_at", "created_at"}

func TestPGRepoCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO documents")).
		WithArgs("doc-1", "guest:a", "cv.pdf", "application/pdf", int64(42), sql.NullString{String: "abc", Valid: true}, "local", sql.NullString{String: "k/cv.pdf", Valid: true}, created).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := &PGRepo{DB: db}
	err = repo.Create(context.Background(), Document{
		ID:         "doc-1",
		UserID:     "guest:a",
		FileName:   "cv.pdf",
		MimeType:   "application/pdf",
		SizeBytes:  42,
		Checksum:   "abc",
		StorageKey: "k/cv.pdf",
		CreatedAt:  created,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetCurrentByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	extracted := created.Add(time.Minute)
	rows := sqlmock.NewRows(columns).
		AddRow("doc-1", "guest:a", "cv.pdf", "application/pdf", int64(42), "abc", "s3", "k/cv.pdf", "k/cv.pdf.extracted.txt", extracted, created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM documents\nWHERE user_id = $1 AND deleted_at IS NULL\nORDER BY created_at DESC\nLIMIT 1")).
		WithArgs("guest:a").
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	doc, err := repo.GetCurrentByUser(context.Background(), "guest:a")
	if err != nil {
		t.Fatalf("GetCurrentByUser: %v", err)
	}
	if doc.ID != "doc-1" || doc.StorageProvider != "s3" || doc.ExtractedTextKey != "k/cv.pdf.extracted.txt" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.ExtractedAt == nil || !doc.ExtractedAt.Equal(extracted) {
		t.Fatalf("unexpected extractedAt: %v", doc.ExtractedAt)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND id = $2")).
		WithArgs("guest:a", "nope").
		WillReturnRows(sqlmock.NewRows(columns))

	repo := &PGRepo{DB: db}
	_, err = repo.GetByID(context.Background(), "guest:a", "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListByUserClampsLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows(columns).
		AddRow("doc-2", "guest:a", "b.txt", "text/plain", int64(1), nil, "local", "k/b", nil, nil, created.Add(time.Hour)).
		AddRow("doc-1", "guest:a", "a.txt", "text/plain", int64(1), nil, "local", "k/a", nil, nil, created)
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("guest:a", 100, 0).
		WillReturnRows(rows)

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByUser(context.Background(), "guest:a", 500, -3)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "doc-2" || docs[1].ExtractedAt != nil {
		t.Fatalf("unexpected docs: %+v", docs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoUpdateExtraction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("SET extracted_text_key = $1, extracted_at = $2\nWHERE user_id = $3 AND id = $4 AND extracted_text_key IS NULL")).
		WithArgs("k.extracted.txt", at, "guest:a", "doc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := &PGRepo{DB: db}
	if err := repo.UpdateExtraction(context.Background(), "guest:a", "doc-1", "k.extracted.txt", at); err != nil {
		t.Fatalf("UpdateExtraction: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestPGRepoUpdateExtractionNoRowChanged(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	cases := []struct {
		name    string
		exists  bool
		wantErr error
	}{
		{name: "already cached", exists: true},
		{name: "missing document", exists: false, wantErr: ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("sqlmock: %v", err)
			}
			defer db.Close()

			mock.ExpectExec(regexp.QuoteMeta("UPDATE documents")).
				WithArgs("k.extracted.txt", at, "guest:a", "doc-1").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).
				WithArgs("guest:a", "doc-1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tc.exists))

			repo := &PGRepo{DB: db}
			err = repo.UpdateExtraction(context.Background(), "guest:a", "doc-1", "k.extracted.txt", at)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestPGRepoListByUserDefaultsToCap(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs("guest:a", maxListLimit, 5).
		WillReturnRows(sqlmock.NewRows(columns))

	repo := &PGRepo{DB: db}
	docs, err := repo.ListByUser(context.Background(), "guest:a", 0, 5)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", docs)
	}
}
