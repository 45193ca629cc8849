// Package journal implements the per-host append-only metadata log (C2):
// encoding and decoding of FileMetaRecord lines, a streaming parser that
// tolerates records split across arbitrary read boundaries, and a file-based
// backend satisfying the Journal interface.
package journal

import (
	"context"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Journal is the per-host metadata log interface. A file-based
// implementation is the default and only one exercised end-to-end; an
// alternate Postgres-backed implementation may satisfy the same interface.
type Journal interface {
	// Append writes one record to the named host's log.
	Append(ctx context.Context, hostname string, record schema.FileMetaRecord) error

	// Scan streams every record in the named host's log to fn, in journal
	// order. A malformed line is reported to onWarning (if non-nil) and
	// skipped; it never aborts the scan. Scan returns when the log is fully
	// read or fn returns a non-nil error, in which case that error is
	// returned.
	Scan(ctx context.Context, hostname string, fn func(schema.FileMetaRecord) error, onWarning func(line string, err error)) error
}
