package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/absfs/objpack/internal/store"
)

func TestStore_PutGetDelete(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "b", []byte("two")))
	require.NoError(t, s.Put(ctx, "a", []byte("one")))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	got, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), got)

	require.NoError(t, s.Delete(ctx, "a"))
	_, err = s.Get(ctx, "a")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "a"), store.ErrNotFound)
}

func TestStore_CopiesData(t *testing.T) {
	s := New()
	ctx := context.Background()

	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", data))
	data[0] = 'X'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)

	got[1] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestStore_InvalidKey(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Put(context.Background(), "../x", nil), store.ErrInvalidKey)
}
