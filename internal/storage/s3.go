// Package storage wraps the S3-compatible object store holding the
// original uploaded context files. Extracted text lives in Postgres;
// the object store only keeps the source bytes for download.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Options carries the connection settings for an S3-compatible
// endpoint. Path-style addressing is always used, Wasabi and MinIO
// both require it for arbitrary bucket names.
type Options struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
}

// ObjectStore is a thin client over one bucket.
type ObjectStore struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// NewObjectStore connects to the configured endpoint. It does not
// probe the bucket; a misconfigured store surfaces on first use.
func NewObjectStore(opts Options, logger *slog.Logger) (*ObjectStore, error) {
	endpoint, secure := splitEndpoint(opts.Endpoint)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure:       secure,
		Region:       opts.Region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, fmt.Errorf("object store client: %w", err)
	}

	return &ObjectStore{client: client, bucket: opts.Bucket, logger: logger}, nil
}

// splitEndpoint strips an optional scheme from the endpoint URL. A
// bare host defaults to TLS.
func splitEndpoint(endpoint string) (host string, secure bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimPrefix(endpoint, "http://"), false
	default:
		return endpoint, true
	}
}

// Upload stores the file bytes under key.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("upload object %s: %w", key, err)
	}
	s.logger.Debug("object uploaded", "key", key, "bytes", len(data))
	return nil
}

// Get streams the object at key. The caller must close the reader.
func (s *ObjectStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	// GetObject is lazy; Stat forces the first request so a missing
	// object errors here instead of on first Read.
	if _, err := obj.Stat(); err != nil {
		_ = obj.Close()
		return nil, fmt.Errorf("get object %s: %w", key, err)
	}
	return obj, nil
}

// Delete removes the object at key. Deleting a missing object is not
// an error.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete object %s: %w", key, err)
	}
	return nil
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// BuildObjectKey derives the storage key for an upload:
// {folder}/{unixMilli}_{sanitized filename}. Folder defaults to
// "context". Every character outside [A-Za-z0-9.-] in the filename
// becomes an underscore, so the key is safe in URLs and log lines.
func BuildObjectKey(filename, folder string, now time.Time) string {
	if folder == "" {
		folder = "context"
	}
	sanitized := unsafeKeyChars.ReplaceAllString(filename, "_")
	return fmt.Sprintf("%s/%d_%s", folder, now.UnixMilli(), sanitized)
}
