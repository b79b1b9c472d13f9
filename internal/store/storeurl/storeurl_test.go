package storeurl

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absfs/objpack/internal/store/diskstore"
	"github.com/absfs/objpack/internal/store/gcsstore"
	"github.com/absfs/objpack/internal/store/memstore"
	"github.com/absfs/objpack/internal/store/s3store"
)

func TestOpen_Disk(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	for _, location := range []string{
		filepath.Join(dir, "plain"),
		"file://" + filepath.Join(dir, "url"),
	} {
		st, err := Open(ctx, location)
		require.NoError(t, err, location)
		disk, ok := st.(*diskstore.Store)
		require.True(t, ok, "%s opened %T", location, st)
		assert.DirExists(t, disk.Root())

		require.NoError(t, st.Put(ctx, "k", []byte("v")))
		got, err := st.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("v"), got)
	}
}

func TestOpen_Mem(t *testing.T) {
	st, err := Open(context.Background(), "mem://")
	require.NoError(t, err)
	assert.IsType(t, &memstore.Store{}, st)
}

func TestOpen_S3(t *testing.T) {
	st, err := Open(context.Background(), "s3://bucket/team/objpack?region=us-east-2&endpoint=http://127.0.0.1:9000")
	require.NoError(t, err)
	assert.IsType(t, &s3store.Store{}, st)
}

func TestOpen_GCS(t *testing.T) {
	st, err := Open(context.Background(), "gs://bucket/objpack?endpoint=http://127.0.0.1:4443/storage/v1/")
	require.NoError(t, err)
	assert.IsType(t, &gcsstore.Store{}, st)
	assert.NoError(t, st.Close())
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		location string
		errIs    error
	}{
		{"", nil},
		{"ftp://host/dir", ErrUnsupportedScheme},
		{"s3:///prefix", ErrMissingBucket},
		{"gs://", ErrMissingBucket},
	}
	for _, tt := range tests {
		_, err := Open(context.Background(), tt.location)
		if assert.Error(t, err, tt.location) && tt.errIs != nil {
			assert.True(t, errors.Is(err, tt.errIs), "Open(%q) error = %v", tt.location, err)
		}
	}
}
