package object

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resume-matcher/internal/shared/util"
)

var (
	// ErrInvalidKey is returned for storage keys that escape the store root.
	ErrInvalidKey = errors.New("invalid storage key")
	// ErrNotFound is returned by Open when no object exists at the key.
	ErrNotFound = errors.New("object not found")
)

// Object describes a stored upload.
type Object struct {
	Key       string
	SizeBytes int64
	MimeType  string
	Checksum  string
}

// ObjectStore defines the contract for saving and retrieving binary objects.
type ObjectStore interface {
	// Save stores an upload under the owner's namespace with a generated key.
	Save(ctx context.Context, owner string, fileName string, r io.Reader) (Object, error)
	// SaveWithKey stores data at an exact key, replacing any previous object.
	SaveWithKey(ctx context.Context, key string, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// NewKey builds "<owner hash>/<uuid>_<file name>".
func NewKey(owner, fileName string) (string, error) {
	sanitized, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join(util.HashUserKey(owner), uuid.NewString()+"_"+sanitized), nil
}

// CleanKey rejects absolute keys and keys that climb out of the root.
func CleanKey(key string) (string, error) {
	clean := filepath.ToSlash(filepath.Clean(strings.TrimSpace(key)))
	if clean == "." || clean == "" || strings.HasPrefix(clean, "..") || path.IsAbs(clean) {
		return "", ErrInvalidKey
	}
	return clean, nil
}

// Sniff reads the first 512 bytes to detect the content type and returns a
// reader that replays them.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	return http.DetectContentType(head[:n]), io.MultiReader(bytes.NewReader(head[:n]), r), nil
}

// Meter counts and hashes bytes as they are read.
type Meter struct {
	r    io.Reader
	n    int64
	hash hash.Hash
}

func NewMeter(r io.Reader) *Meter {
	return &Meter{r: r, hash: sha256.New()}
}

func (m *Meter) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	if n > 0 {
		m.n += int64(n)
		_, _ = m.hash.Write(p[:n])
	}
	return n, err
}

// Size reports the bytes read so far.
func (m *Meter) Size() int64 { return m.n }

// Checksum is the hex sha256 of the bytes read so far.
func (m *Meter) Checksum() string { return hex.EncodeToString(m.hash.Sum(nil)) }
