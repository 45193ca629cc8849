package manager_test

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	block "github.com/mutablelogic/go-cdp/pkg/block"
	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	manager "github.com/mutablelogic/go-cdp/pkg/manager"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

func newTestManager(t *testing.T) (*manager.Manager, context.Context, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	store, err := block.New(ctx, "mem://", schema.DefaultFanoutLevel)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	j, err := journal.NewFileJournal(t.TempDir())
	require.NoError(t, err)

	m, err := manager.New(ctx, store, j)
	require.NoError(t, err)

	go func() { _ = m.Run(ctx) }()

	return m, ctx, cancel
}

func hashOf(data []byte) schema.Hash {
	return schema.Hash(sha256.Sum256(data))
}

func TestPutBlockThenGetBlock(t *testing.T) {
	m, ctx, cancel := newTestManager(t)
	defer cancel()

	data := []byte("block payload")
	h := hashOf(data)

	require.NoError(t, m.PutBlock(ctx, schema.Block{Hash: h, Data: data, Uncmplen: int64(len(data))}))

	got, err := m.GetBlock(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, data, got.Data)
}

func TestNeededHashesExcludesStoredBlocks(t *testing.T) {
	m, ctx, cancel := newTestManager(t)
	defer cancel()

	present := []byte("present")
	h1 := hashOf(present)
	h2 := hashOf([]byte("absent"))

	require.NoError(t, m.PutBlock(ctx, schema.Block{Hash: h1, Data: present, Uncmplen: int64(len(present))}))

	needed, err := m.NeededHashes(ctx, []schema.Hash{h1, h2})
	require.NoError(t, err)
	assert.Equal(t, []schema.Hash{h2}, needed)
}

func TestGetConcatenatedHashesPayload(t *testing.T) {
	m, ctx, cancel := newTestManager(t)
	defer cancel()

	a, b := []byte("hello "), []byte("world")
	ha, hb := hashOf(a), hashOf(b)
	require.NoError(t, m.PutBlock(ctx, schema.Block{Hash: ha, Data: a, Uncmplen: int64(len(a))}))
	require.NoError(t, m.PutBlock(ctx, schema.Block{Hash: hb, Data: b, Uncmplen: int64(len(b))}))

	got, err := m.GetConcatenated(ctx, []schema.Hash{ha, hb})
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(got.Data))
	assert.Equal(t, hashOf([]byte("hello world")), got.Hash)
	assert.Equal(t, uint64(len("hello world")), got.Size)
}

func TestAppendMetaThenQueryFiles(t *testing.T) {
	m, ctx, cancel := newTestManager(t)
	defer cancel()

	record := schema.FileMetaRecord{
		FileType: 1,
		Mode:     0o644,
		Mtime:    uint64(time.Now().Unix()),
		Size:     42,
		Owner:    "root",
		Group:    "root",
		Name:     "/etc/hosts",
	}

	needed, err := m.AppendMeta(ctx, "host-a", record)
	require.NoError(t, err)
	assert.Empty(t, needed)

	resp, err := m.QueryFiles(ctx, schema.Query{Hostname: "host-a", Filename: ".*"})
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	assert.Equal(t, "/etc/hosts", resp.FileList[0].Name)
}

func TestStatsReflectActivity(t *testing.T) {
	m, ctx, cancel := newTestManager(t)
	defer cancel()

	m.CountGet("/Version.json")
	m.CountPost("/Meta.json")

	data := []byte("x")
	h := hashOf(data)
	require.NoError(t, m.PutBlock(ctx, schema.Block{Hash: h, Data: data, Uncmplen: 1}))

	snap := m.Stats()
	assert.Equal(t, uint64(1), snap.GetCount)
	assert.Equal(t, uint64(1), snap.PostCount)
	assert.Equal(t, uint64(1), snap.DataBytes)
}
