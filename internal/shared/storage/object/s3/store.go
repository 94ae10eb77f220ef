package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"resume-matcher/internal/shared/storage/object"
)

const checksumMetadataKey = "sha256"

// API is the subset of the S3 client the store uses.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Store implements ObjectStore using Amazon S3.
type Store struct {
	client   API
	bucket   string
	prefix   string
	kmsKeyID string
}

// New loads the default AWS config and creates an S3-backed object store.
func New(ctx context.Context, region, bucket, prefix, kmsKeyID string) (*Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewWithClient(s3.NewFromConfig(cfg), bucket, prefix, kmsKeyID), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client API, bucket, prefix, kmsKeyID string) *Store {
	return &Store{
		client:   client,
		bucket:   bucket,
		prefix:   normalizePrefix(prefix),
		kmsKeyID: strings.TrimSpace(kmsKeyID),
	}
}

// Save buffers the upload, then puts it under the owner's namespace with
// its SHA-256 recorded as object metadata. Uploads are bounded by the
// caller, so buffering lets the SDK sign a known content length.
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
	data, err := io.ReadAll(meter)
	if err != nil {
		return object.Object{}, fmt.Errorf("read upload: %w", err)
	}
	checksum := meter.Checksum()
	if err := s.put(ctx, key, mimeType, data, map[string]string{checksumMetadataKey: checksum}); err != nil {
		return object.Object{}, err
	}
	return object.Object{
		Key:       key,
		SizeBytes: meter.Size(),
		MimeType:  mimeType,
		Checksum:  checksum,
	}, nil
}

// Open streams an object. NoSuchKey maps to object.ErrNotFound.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return nil, err
	}
	objectKey := applyPrefix(s.prefix, clean)
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	var missing *s3types.NoSuchKey
	switch {
	case errors.As(err, &missing):
		return nil, fmt.Errorf("%w: %s", object.ErrNotFound, objectKey)
	case err != nil:
		return nil, fmt.Errorf("s3 get %s/%s: %w", s.bucket, objectKey, err)
	}
	return out.Body, nil
}

// SaveWithKey replaces the object at key, used for cached extracted text.
func (s *Store) SaveWithKey(ctx context.Context, key string, contentType string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return 0, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}
	if err := s.put(ctx, clean, contentType, data, nil); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Delete removes the object at key. S3 reports success for missing keys.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	clean, err := object.CleanKey(key)
	if err != nil {
		return err
	}
	objectKey := applyPrefix(s.prefix, clean)
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	}); err != nil {
		return fmt.Errorf("s3 delete %s/%s: %w", s.bucket, objectKey, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, key, contentType string, data []byte, metadata map[string]string) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(applyPrefix(s.prefix, key)),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
		Metadata:      metadata,
	}
	if s.kmsKeyID != "" {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAwsKms
		input.SSEKMSKeyId = aws.String(s.kmsKeyID)
	} else {
		input.ServerSideEncryption = s3types.ServerSideEncryptionAes256
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("s3 put %s/%s: %w", s.bucket, aws.ToString(input.Key), err)
	}
	return nil
}

func normalizePrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func applyPrefix(prefix, key string) string {
	cleanPrefix := strings.Trim(prefix, "/")
	cleanKey := strings.TrimLeft(key, "/")
	if cleanPrefix == "" {
		return cleanKey
	}
	if cleanKey == "" {
		return cleanPrefix
	}
	return cleanPrefix + "/" + cleanKey
}

var _ object.ObjectStore = (*Store)(nil)
