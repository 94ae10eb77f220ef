package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-matcher/internal/shared/storage/object"
)

func TestApplyPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		key    string
		want   string
	}{
		{name: "no prefix", prefix: "", key: "user/file.pdf", want: "user/file.pdf"},
		{name: "simple prefix", prefix: "root", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "prefix trailing slash", prefix: "root/", key: "user/file.pdf", want: "root/user/file.pdf"},
		{name: "prefix and key slashes", prefix: "/root/", key: "/user/file.pdf", want: "root/user/file.pdf"},
		{name: "nested prefix", prefix: "root/sub", key: "user/file.pdf", want: "root/sub/user/file.pdf"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := applyPrefix(tt.prefix, tt.key); got != tt.want {
				t.Fatalf("applyPrefix(%q, %q) = %q, want %q", tt.prefix, tt.key, got, tt.want)
			}
		})
	}
}

type fakeS3 struct {
	puts     map[string][]byte
	types    map[string]string
	lastSSE  s3types.ServerSideEncryption
	lastMeta map[string]string
	lastLen  int64
}

func newFakeS3() *fakeS3 {
	return &fakeS3{puts: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Key)] = body
	f.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	f.lastSSE = in.ServerSideEncryption
	f.lastMeta = in.Metadata
	f.lastLen = aws.ToInt64(in.ContentLength)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.puts[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.puts, aws.ToString(in.Key))
	delete(f.types, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStoreSaveAndOpen(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "/resumes/", "")
	ctx := context.Background()

	obj, err := store.Save(ctx, "guest:abc", "cv.txt", strings.NewReader("Go developer"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if obj.SizeBytes != 12 || obj.Checksum == "" {
		t.Fatalf("unexpected object: %+v", obj)
	}
	if _, ok := fake.puts["resumes/"+obj.Key]; !ok {
		t.Fatalf("expected prefixed key, got %v", fake.puts)
	}
	if fake.lastSSE != s3types.ServerSideEncryptionAes256 {
		t.Fatalf("expected AES256 default, got %q", fake.lastSSE)
	}
	if fake.lastMeta["sha256"] != obj.Checksum || fake.lastLen != 12 {
		t.Fatalf("unexpected metadata %v length %d", fake.lastMeta, fake.lastLen)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "Go developer" {
		t.Fatalf("unexpected body %q", got)
	}

	if _, err := store.Open(ctx, "guest_abc/missing.txt"); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStoreSaveWithKeyUsesKMS(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "", "kms-key")

	n, err := store.SaveWithKey(context.Background(), "a/b.extracted.txt", "text/plain; charset=utf-8", strings.NewReader("text"))
	if err != nil {
		t.Fatalf("SaveWithKey: %v", err)
	}
	if n != 4 {
		t.Fatalf("expected 4 bytes, got %d", n)
	}
	if fake.lastSSE != s3types.ServerSideEncryptionAwsKms {
		t.Fatalf("expected aws:kms, got %q", fake.lastSSE)
	}
	if fake.types["a/b.extracted.txt"] != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", fake.types["a/b.extracted.txt"])
	}
	if _, err := store.SaveWithKey(context.Background(), "../escape", "text/plain", strings.NewReader("x")); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestStoreDelete(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "resumes", "")
	ctx := context.Background()

	obj, err := store.Save(ctx, "guest:abc", "cv.txt", strings.NewReader("Go developer"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, obj.Key); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(fake.puts) != 0 {
		t.Fatalf("expected bucket to be empty, got %v", fake.puts)
	}
	if _, err := store.Open(ctx, obj.Key); !errors.Is(err, object.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, "../escape"); !errors.Is(err, object.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}
