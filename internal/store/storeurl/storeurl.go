// Package storeurl opens a store.Store from a location string.
//
// Supported forms:
//
//	./artifacts, /var/lib/objpack   disk store rooted at the path
//	file:///var/lib/objpack         disk store
//	mem://                          in-memory store
//	s3://bucket/prefix              S3; query keys: region, endpoint
//	gs://bucket/prefix              GCS; query key: endpoint
package storeurl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/absfs/objpack/internal/store"
	"github.com/absfs/objpack/internal/store/diskstore"
	"github.com/absfs/objpack/internal/store/gcsstore"
	"github.com/absfs/objpack/internal/store/memstore"
	"github.com/absfs/objpack/internal/store/s3store"
)

var (
	// ErrUnsupportedScheme is returned for a URL scheme with no backend.
	ErrUnsupportedScheme = errors.New("storeurl: unsupported scheme")

	// ErrMissingBucket is returned for s3:// or gs:// URLs without a host.
	ErrMissingBucket = errors.New("storeurl: missing bucket")
)

// Open returns the store named by location.
func Open(ctx context.Context, location string) (store.Store, error) {
	if location == "" {
		return nil, errors.New("storeurl: empty location")
	}
	if !strings.Contains(location, "://") {
		return diskstore.New(location)
	}

	u, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("storeurl: %w", err)
	}
	q := u.Query()
	prefix := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "file":
		return diskstore.New(u.Path)
	case "mem":
		return memstore.New(), nil
	case "s3":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingBucket, location)
		}
		opts := []s3store.Option{s3store.WithPrefix(prefix)}
		if region := q.Get("region"); region != "" {
			opts = append(opts, s3store.WithRegion(region))
		}
		if endpoint := q.Get("endpoint"); endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(endpoint))
		}
		return s3store.New(ctx, u.Host, opts...)
	case "gs":
		if u.Host == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingBucket, location)
		}
		opts := []gcsstore.Option{gcsstore.WithPrefix(prefix)}
		if endpoint := q.Get("endpoint"); endpoint != "" {
			opts = append(opts, gcsstore.WithEndpoint(endpoint))
		}
		return gcsstore.New(ctx, u.Host, opts...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
}
