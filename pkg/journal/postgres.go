package journal

import (
	"context"
	"fmt"

	// Packages
	pg "github.com/mutablelogic/go-pg"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// PostgresJournal is an alternate Journal backend (§11.2 DOMAIN STACK) that
// appends records to a Postgres table instead of a flat file, for
// deployments that already run a database for the rest of their stack.
type PostgresJournal struct {
	conn pg.PoolConn
}

var _ Journal = (*PostgresJournal)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewPostgresJournal bootstraps the cdp schema and file_meta table, if
// they do not already exist, and returns a Journal backed by conn.
func NewPostgresJournal(ctx context.Context, conn pg.PoolConn) (*PostgresJournal, error) {
	self := new(PostgresJournal)
	self.conn = conn.With(
		"schema", pgSchemaName,
	).(pg.PoolConn)

	if exists, err := pg.SchemaExists(ctx, self.conn, pgSchemaName); err != nil {
		return nil, err
	} else if !exists {
		if err := pg.SchemaCreate(ctx, self.conn, pgSchemaName); err != nil {
			return nil, err
		}
	}

	if err := self.conn.Tx(ctx, func(conn pg.Conn) error {
		return bootstrapFileMeta(ctx, conn)
	}); err != nil {
		return nil, err
	}

	return self, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append inserts one row into file_meta, stamped with the next global
// sequence value so Scan can later replay a host's rows in append order.
func (j *PostgresJournal) Append(ctx context.Context, hostname string, record schema.FileMetaRecord) error {
	if !types.IsIdentifier(hostname) {
		return fmt.Errorf("journal: invalid hostname %q", hostname)
	}

	var row fileMetaRow
	meta := fileMetaInsert{hostname: hostname, record: record}
	if err := j.conn.Insert(ctx, &row, meta); err != nil {
		return fmt.Errorf("journal: failed to append to %q: %w", hostname, err)
	}
	return nil
}

// Scan replays every row for hostname, oldest first, paging through the
// table so no single query has to hold the whole host's history in memory.
// Postgres rows are never malformed, so onWarning is never invoked; it is
// accepted only to satisfy the Journal interface.
func (j *PostgresJournal) Scan(ctx context.Context, hostname string, fn func(schema.FileMetaRecord) error, onWarning func(line string, err error)) error {
	const pageSize = uint64(1000)

	offset := uint64(0)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		limit := pageSize
		var page fileMetaList
		req := fileMetaListRequest{
			Hostname:    hostname,
			OffsetLimit: pg.OffsetLimit{Offset: offset, Limit: &limit},
		}
		if err := j.conn.List(ctx, &page, req); err != nil {
			return fmt.Errorf("journal: failed to scan %q: %w", hostname, err)
		}

		for _, record := range page.Body {
			if err := fn(record); err != nil {
				return err
			}
		}

		if uint64(len(page.Body)) < pageSize {
			return nil
		}
		offset += pageSize
	}
}
