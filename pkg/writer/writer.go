// Package writer implements the two long-lived MPSC writer workers (C3)
// that decouple the HTTP dispatcher from durable disk I/O: one metadata
// writer serializing appends to the journal, one data writer serializing
// puts to the block store.
package writer

import (
	"context"
	"fmt"

	block "github.com/mutablelogic/go-cdp/pkg/block"
	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	"golang.org/x/sync/errgroup"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// metaJob is one FileMetaRecord queued for append to a host's journal.
type metaJob struct {
	hostname string
	record   schema.FileMetaRecord
	done     chan<- error
}

// dataJob is one Block queued for the block store.
type dataJob struct {
	block schema.Block
	done  chan<- error
}

// Pool owns the metadata and data queues and the two workers draining
// them. There is at most one of each worker for the lifetime of the
// process, which is what serializes all filesystem writes to each
// subtree (§4.3).
type Pool struct {
	journal journal.Journal
	store   *block.Store

	metaQueue chan metaJob
	dataQueue chan dataJob
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a writer pool with the given queue depth.
func New(j journal.Journal, s *block.Store, queueDepth int) *Pool {
	if queueDepth <= 0 {
		queueDepth = 64
	}
	return &Pool{
		journal:   j,
		store:     s,
		metaQueue: make(chan metaJob, queueDepth),
		dataQueue: make(chan dataJob, queueDepth),
	}
}

// Run starts both workers and blocks until ctx is cancelled. Each worker
// exits as soon as it observes cancellation, with no explicit wake beyond
// process/context shutdown (§4.3, §5's cancellation contract: a worker MAY
// terminate immediately rather than draining, since an acknowledged POST
// was never promised as a durable commit).
func (p *Pool) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return p.runMetaWriter(ctx)
	})
	g.Go(func() error {
		return p.runDataWriter(ctx)
	})

	return g.Wait()
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// AppendMeta enqueues record for the metadata writer and returns as soon as
// it is queued (or ctx is done). The returned channel receives the result of
// the append once the writer has run it; a job still queued when the pool
// shuts down never receives one. manager.AppendMeta waits on this channel,
// so the HTTP dispatcher replies only after the append has completed and
// reports a failed append to the client.
func (p *Pool) AppendMeta(ctx context.Context, hostname string, record schema.FileMetaRecord) (<-chan error, error) {
	done := make(chan error, 1)
	select {
	case p.metaQueue <- metaJob{hostname: hostname, record: record, done: done}:
		return done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// PutData enqueues a block for the data writer.
func (p *Pool) PutData(ctx context.Context, b schema.Block) (<-chan error, error) {
	done := make(chan error, 1)
	select {
	case p.dataQueue <- dataJob{block: b, done: done}:
		return done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (p *Pool) runMetaWriter(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-p.metaQueue:
			err := p.journal.Append(ctx, job.hostname, job.record)
			if err != nil {
				err = fmt.Errorf("writer: metadata append failed: %w", err)
			}
			job.done <- err
			close(job.done)
		}
	}
}

func (p *Pool) runDataWriter(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case job := <-p.dataQueue:
			err := p.store.Put(ctx, job.block)
			if err != nil {
				err = fmt.Errorf("writer: block put failed: %w", err)
			}
			job.done <- err
			close(job.done)
		}
	}
}
