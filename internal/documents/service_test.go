package documents

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-matcher/internal/extract"
	"resume-matcher/internal/shared/storage/object/local"
)

func newService(t *testing.T) (*Service, *MemoryRepo) {
	t.Helper()
	repo := NewMemoryRepo()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &Service{
		Store:    local.New(t.TempDir()),
		Repo:     repo,
		MaxBytes: 64,
		Now:      func() time.Time { return now },
	}, repo
}

func TestServiceUploadRecordsDocument(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "guest:a", " cv.txt ", strings.NewReader("Go developer"))
	require.NoError(t, err)
	assert.Equal(t, "cv.txt", doc.FileName)
	assert.Equal(t, "text/plain", doc.MimeType)
	assert.Equal(t, "local", doc.StorageProvider)
	assert.Equal(t, int64(12), doc.SizeBytes)
	assert.NotEmpty(t, doc.Checksum)

	current, err := repo.GetCurrentByUser(ctx, "guest:a")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, current.ID)
}

func TestServiceUploadRejects(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "", "cv.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Upload(ctx, "guest:a", "  ", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Upload(ctx, "guest:a", "empty.txt", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.Upload(ctx, "guest:a", "big.txt", strings.NewReader(strings.Repeat("a", 65)))
	assert.ErrorIs(t, err, ErrTooLarge)
	_, err = svc.Upload(ctx, "guest:a", "../cv.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestServiceTextExtractsOnce(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "guest:a", "cv.txt", strings.NewReader("Go developer"))
	require.NoError(t, err)

	text, err := svc.Text(ctx, doc)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)

	stored, err := repo.GetByID(ctx, "guest:a", doc.ID)
	require.NoError(t, err)
	assert.Equal(t, extract.ExtractedKey(doc.StorageKey), stored.ExtractedTextKey)
	require.NotNil(t, stored.ExtractedAt)

	// The cached copy is served even if the original disappears from the repo view.
	stored.StorageKey = "missing/original"
	text, err = svc.Text(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "Go developer", text)
}

func TestServiceTextExtractionFailure(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "guest:a", "img.png", strings.NewReader("\x89PNG\r\n\x1a\n"))
	require.NoError(t, err)
	_, err = svc.Text(ctx, doc)
	assert.True(t, errors.Is(err, extract.ErrExtraction))
}

func TestServiceGetAndList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Current(ctx, "guest:a")
	assert.ErrorIs(t, err, ErrNotFound)

	a, err := svc.Upload(ctx, "guest:a", "a.txt", strings.NewReader("a"))
	require.NoError(t, err)
	b, err := svc.Upload(ctx, "guest:a", "b.txt", strings.NewReader("b"))
	require.NoError(t, err)

	got, err := svc.Get(ctx, "guest:a", a.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", got.FileName)

	_, err = svc.Get(ctx, "guest:other", a.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	docs, err := svc.List(ctx, "guest:a", 1, 0)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, b.ID, docs[0].ID)

	docs, err = svc.List(ctx, "guest:a", 0, 5)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

type failingCreateRepo struct{ *MemoryRepo }

func (failingCreateRepo) Create(context.Context, Document) error {
	return errors.New("db down")
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

func TestServiceUploadRejectedLeavesNoObject(t *testing.T) {
	tests := []struct {
		name    string
		max     int64
		body    string
		repo    Repo
		wantErr error
	}{
		{name: "too large", max: 10, body: strings.Repeat("a", 1000), wantErr: ErrTooLarge},
		{name: "empty", max: 10, body: "", wantErr: ErrInvalidInput},
		{name: "repo failure", max: 64, body: "Go developer", repo: failingCreateRepo{NewMemoryRepo()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			repo := tt.repo
			if repo == nil {
				repo = NewMemoryRepo()
			}
			svc := &Service{Store: local.New(dir), Repo: repo, MaxBytes: tt.max}

			_, err := svc.Upload(context.Background(), "guest:a", "cv.txt", strings.NewReader(tt.body))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.Empty(t, storedFiles(t, dir))
		})
	}
}
