// Package gcsstore implements a Google Cloud Storage backend.
package gcsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/absfs/objpack/internal/store"
)

// ContentType is set on every uploaded artifact.
const ContentType = "application/vnd.objpack"

var _ store.Store = (*Store)(nil)

// Store is a Google Cloud Storage backend. Uploads become visible only when
// the writer closes successfully; a failed Put cancels the upload.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string

	clientOpts []option.ClientOption
}

// New creates a new GCS store.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, opt := range opts {
		opt(s)
	}

	client, err := storage.NewClient(ctx, s.clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}
	s.client = client
	s.bucket = client.Bucket(bucketName)
	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets a key prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = strings.TrimSuffix(prefix, "/")
		if s.prefix != "" {
			s.prefix += "/"
		}
	}
}

// WithClientOptions passes options to the underlying storage client.
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(s *Store) {
		s.clientOpts = append(s.clientOpts, opts...)
	}
}

// WithEndpoint points the store at a GCS-compatible endpoint such as
// fake-gcs-server. Requests are sent without credentials.
func WithEndpoint(endpoint string) Option {
	return WithClientOptions(option.WithEndpoint(endpoint), option.WithoutAuthentication())
}

// Get downloads the artifact stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := store.Canceled(ctx); err != nil {
		return nil, err
	}
	objectKey, err := s.objectKey(key)
	if err != nil {
		return nil, err
	}

	reader, err := s.bucket.Object(objectKey).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("creating reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}
	return data, nil
}

// Put uploads data under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	if err := store.Canceled(ctx); err != nil {
		return err
	}
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := s.bucket.Object(objectKey).NewWriter(ctx)
	w.ContentType = ContentType
	if _, err := w.Write(data); err != nil {
		// Canceling the context discards the partial upload.
		cancel()
		w.Close()
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finishing upload: %w", err)
	}
	return nil
}

// Delete removes the artifact stored under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := store.Canceled(ctx); err != nil {
		return err
	}
	objectKey, err := s.objectKey(key)
	if err != nil {
		return err
	}

	if err := s.bucket.Object(objectKey).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return store.ErrNotFound
		}
		return fmt.Errorf("deleting artifact: %w", err)
	}
	return nil
}

// Close releases resources.
func (s *Store) Close() error {
	return s.client.Close()
}

// objectKey returns the full object name for an artifact key.
func (s *Store) objectKey(key string) (string, error) {
	if err := store.ValidateKey(key); err != nil {
		return "", err
	}
	return s.prefix + "artifacts/" + key, nil
}
