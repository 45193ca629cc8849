// Package manager ties the block store (C1/C4), metadata journal (C2),
// writer workers (C3), query engine (C5) and statistics (C7) together
// behind one facade, tracing every operation.
package manager

import (
	"context"
	"crypto/sha256"
	"fmt"

	// Packages
	otel "github.com/mutablelogic/go-client/pkg/otel"
	block "github.com/mutablelogic/go-cdp/pkg/block"
	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	query "github.com/mutablelogic/go-cdp/pkg/query"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	stats "github.com/mutablelogic/go-cdp/pkg/stats"
	writer "github.com/mutablelogic/go-cdp/pkg/writer"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Manager is the server's single point of contact with storage: every HTTP
// handler calls through it rather than touching pkg/block, pkg/journal or
// pkg/writer directly.
type Manager struct {
	opts
	store   *block.Store
	journal journal.Journal
	pool    *writer.Pool
	stats   *stats.Stats
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a manager over an already-open block store and journal,
// along with its writer pool. The pool is not started here: callers should
// run (*Manager).Run in a goroutine (or via errgroup) to drive it.
func New(ctx context.Context, store *block.Store, j journal.Journal, opts ...Opt) (*Manager, error) {
	o, err := applyOpts(opts)
	if err != nil {
		return nil, err
	}

	return &Manager{
		opts:    o,
		store:   store,
		journal: j,
		pool:    writer.New(j, store, o.queueDepth),
		stats:   stats.New(),
	}, nil
}

// Run drives the writer pool until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	return m.pool.Run(ctx)
}

// Close releases the block store.
func (m *Manager) Close() error {
	return m.store.Close()
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Stats returns a snapshot of the request/byte counters.
func (m *Manager) Stats() schema.StatsResponse {
	return m.stats.Snapshot()
}

// CountGet/CountPost/CountUnknown attribute one request to path, for the
// dispatcher to call on every request regardless of outcome.
func (m *Manager) CountGet(path string)     { m.stats.Get(path) }
func (m *Manager) CountPost(path string)    { m.stats.Post(path) }
func (m *Manager) CountUnknown(path string) { m.stats.Unknown(path) }

// NeededHashes runs the hash-set oracle (C4) against hashes, without any
// storage side effect.
func (m *Manager) NeededHashes(ctx context.Context, hashes []schema.Hash) ([]schema.Hash, error) {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("NeededHashes"))
	defer func() { endFunc(result) }()

	needed, err := m.store.Needed(child, hashes)
	result = err
	return needed, err
}

// GetBlock retrieves one block by hash.
func (m *Manager) GetBlock(ctx context.Context, h schema.Hash) (schema.Block, error) {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("GetBlock"))
	defer func() { endFunc(result) }()

	b, err := m.store.Get(child, h)
	result = err
	return b, err
}

// GetConcatenated retrieves every hash in order, concatenates their stored
// payloads, and returns the concatenation as a single synthetic block whose
// hash is computed over the concatenated bytes (§4.6's
// `/Data/Hash_Array.json`). Payloads are concatenated as stored: no
// decompression is applied, whatever each block's cmptype.
func (m *Manager) GetConcatenated(ctx context.Context, hashes []schema.Hash) (schema.Block, error) {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("GetConcatenated"))
	defer func() { endFunc(result) }()

	var buf []byte
	for _, h := range hashes {
		b, err := m.store.Get(child, h)
		if err != nil {
			result = err
			return schema.Block{}, err
		}
		buf = append(buf, b.Data...)
	}

	sum := sha256.Sum256(buf)
	return schema.Block{
		Hash:     schema.Hash(sum),
		Data:     buf,
		Size:     uint64(len(buf)),
		Cmptype:  schema.CompressNone,
		Uncmplen: int64(len(buf)),
	}, nil
}

// PutBlock enqueues a block with the data writer and waits for it to be
// durably stored before returning.
func (m *Manager) PutBlock(ctx context.Context, b schema.Block) error {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("PutBlock"))
	defer func() { endFunc(result) }()

	done, err := m.pool.PutData(child, b)
	if err != nil {
		result = err
		return err
	}
	result = <-done
	if result == nil {
		m.stats.AddDataBytes(uint64(len(b.Data)))
	}
	return result
}

// AppendMeta computes the needed-hash subset for record's hash list,
// enqueues record with the metadata writer, waits for it to be durably
// appended, and returns the needed subset for the caller to report back to
// the client.
func (m *Manager) AppendMeta(ctx context.Context, hostname string, record schema.FileMetaRecord) ([]schema.Hash, error) {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("AppendMeta"))
	defer func() { endFunc(result) }()

	needed, err := m.store.Needed(child, record.HashList)
	if err != nil {
		result = err
		return nil, err
	}

	done, err := m.pool.AppendMeta(child, hostname, record)
	if err != nil {
		result = err
		return nil, err
	}
	if err := <-done; err != nil {
		result = err
		return nil, err
	}

	m.stats.AddMetaBytes(approxMetaSize(record))
	m.stats.AddSavedFile(record.Size)

	return needed, nil
}

// QueryFiles runs the query engine (C5) against the named host's journal.
func (m *Manager) QueryFiles(ctx context.Context, q schema.Query) (schema.FileListResponse, error) {
	var result error
	child, endFunc := otel.StartSpan(m.tracer, ctx, spanName("QueryFiles"))
	defer func() { endFunc(result) }()

	resp, err := query.Run(child, m.journal, q, func(line string, warnErr error) {
		if m.logger != nil {
			m.logger.Printf(ctx, "query: skipping malformed journal line: %v", warnErr)
		}
	})
	result = err
	return resp, err
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func spanName(op string) string {
	return schema.SchemaName + ".manager." + op
}

// approxMetaSize estimates the on-wire byte cost of one metadata record for
// statistics purposes (§4.7 does not mandate an exact accounting method).
func approxMetaSize(r schema.FileMetaRecord) uint64 {
	return uint64(len(fmt.Sprintf("%d,%d,%d,%d,%d,%d,%d,%s,%s,%d,%d,%s,%s",
		r.FileType, r.Inode, r.Mode, r.Atime, r.Ctime, r.Mtime, r.Size,
		r.Owner, r.Group, r.Uid, r.Gid, r.Name, r.Link)))
}
