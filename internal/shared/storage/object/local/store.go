package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"resume-matcher/internal/shared/storage/object"
)

// Store keeps objects as files under a base directory, one subdirectory
// per owner. Writes go to a temp file first so readers never see a partial
// object.
type Store struct {
	baseDir string
}

// New returns a Store rooted at baseDir. The directory is created lazily.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(key))
}

// Save sniffs the content type, writes the upload under a generated key
// and reports its size and checksum.
func (s *Store) Save(ctx context.Context, owner string, fileName string, r io.Reader) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}
	key, err := object.NewKey(owner, fileName)
	if err != nil {
		return object.Object{}, err
	}

	mimeType, body, err := object.Sniff(r)
	if err != nil {
		return object.Object{}, err
	}
	meter := object.NewMeter(body)
	if err := s.writeAtomic(ctx, key, meter); err != nil {
		return object.Object{}, err
	}
	return object.Object{
		Key:       key,
		SizeBytes: meter.Size(),
		MimeType:  mimeType,
		Checksum:  meter.Checksum(),
	}, nil
}

// SaveWithKey replaces the object at key. The content type is not kept on
// disk.
func (s *Store) SaveWithKey(ctx context.Context, key string, _ string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return 0, err
	}
	meter := object.NewMeter(r)
	if err := s.writeAtomic(ctx, clean, meter); err != nil {
		return 0, err
	}
	return meter.Size(), nil
}

// Open returns the stored file. A missing file maps to object.ErrNotFound.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(clean))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("open object: %w", err)
	}
	return f, nil
}

// Delete removes the file at key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return err
	}
	if err := os.Remove(s.path(clean)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}

func (s *Store) writeAtomic(ctx context.Context, key string, r io.Reader) (err error) {
	target := s.path(key)
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	if err = ctx.Err(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

var _ object.ObjectStore = (*Store)(nil)
