package storage_test

import (
    "context"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "pawmart-storefront-api/storage"
)

func TestMemoryKVAbsentKey(t *testing.T) {
    t.Parallel()

    kv := storage.NewMemoryKV()
    _, err := kv.Get(context.Background(), "missing")
    assert.Equal(t, storage.ErrNotFound, err)
}

func TestMemoryKVSetGetRemove(t *testing.T) {
    t.Parallel()

    kv := storage.NewMemoryKV()
    ctx := context.Background()

    require.NoError(t, kv.Set(ctx, "k", "v1"))
    require.NoError(t, kv.Set(ctx, "k", "v2"))

    val, err := kv.Get(ctx, "k")
    require.NoError(t, err)
    assert.Equal(t, "v2", val)

    require.NoError(t, kv.Remove(ctx, "k"))
    _, err = kv.Get(ctx, "k")
    assert.Equal(t, storage.ErrNotFound, err)
}
