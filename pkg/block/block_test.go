package block_test

import (
	"context"
	"crypto/sha256"
	"testing"

	// Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	block "github.com/mutablelogic/go-cdp/pkg/block"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

func newTestStore(t *testing.T) *block.Store {
	t.Helper()
	store, err := block.New(context.Background(), "mem://", schema.DefaultFanoutLevel)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func hashOf(data []byte) schema.Hash {
	return schema.Hash(sha256.Sum256(data))
}

func TestPutGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte("hello world")
	h := hashOf(data)

	require.NoError(t, store.Put(ctx, schema.Block{
		Hash:     h,
		Data:     data,
		Cmptype:  schema.CompressNone,
		Uncmplen: int64(len(data)),
	}))

	got, err := store.Get(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, data, got.Data)
	assert.Equal(t, schema.CompressNone, got.Cmptype)
	assert.Equal(t, int64(len(data)), got.Uncmplen)
	assert.Equal(t, uint64(len(data)), got.Size)
}

func TestPutIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte("repeat me")
	h := hashOf(data)
	block1 := schema.Block{Hash: h, Data: data, Cmptype: schema.CompressNone, Uncmplen: int64(len(data))}

	require.NoError(t, store.Put(ctx, block1))
	require.NoError(t, store.Put(ctx, block1))

	exists, err := store.Exists(ctx, h)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := store.Get(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, data, got.Data)
}

func TestGetUnknownHashNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, schema.Hash{0xff})
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := []byte("exists test")
	h := hashOf(data)

	exists, err := store.Exists(ctx, h)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, schema.Block{Hash: h, Data: data, Uncmplen: int64(len(data))}))

	exists, err = store.Exists(ctx, h)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestNeededSubsetPreservesOrderAndDedup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	present := hashOf([]byte("present"))
	missingA := hashOf([]byte("missing-a"))
	missingB := hashOf([]byte("missing-b"))

	require.NoError(t, store.Put(ctx, schema.Block{Hash: present, Data: []byte("present")}))

	input := []schema.Hash{missingA, present, missingB, missingA, missingB}
	needed, err := store.Needed(ctx, input)
	require.NoError(t, err)

	assert.Equal(t, []schema.Hash{missingA, missingB}, needed)
}

func TestNeededAllPresent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	h := hashOf([]byte("only one"))
	require.NoError(t, store.Put(ctx, schema.Block{Hash: h, Data: []byte("only one")}))

	needed, err := store.Needed(ctx, []schema.Hash{h, h})
	require.NoError(t, err)
	assert.Empty(t, needed)
}

func TestInitIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Init(ctx))
	require.NoError(t, store.Init(ctx))
}

func TestNewRejectsBadFanoutLevel(t *testing.T) {
	_, err := block.New(context.Background(), "mem://", 1)
	require.Error(t, err)

	_, err = block.New(context.Background(), "mem://", 5)
	require.Error(t, err)
}
