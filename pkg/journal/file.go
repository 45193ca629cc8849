package journal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// FileJournal is the default, on-disk Journal implementation (§4.2 File
// backend): one flat file per host under <prefix>/meta/<hostname>, appended
// to with a single write call per record and scanned with the streaming
// line parser.
type FileJournal struct {
	dir string
}

var _ Journal = (*FileJournal)(nil)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewFileJournal opens a file-based journal rooted at dir (the "meta"
// subdirectory of the server's prefix).
func NewFileJournal(dir string) (*FileJournal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("journal: failed to create %q: %w", dir, err)
	}
	return &FileJournal{dir: dir}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append opens the host's journal in append mode, writes record as a single
// line in one call, and closes it. Only the metadata writer (§4.3) calls
// this, so no additional locking is required.
func (j *FileJournal) Append(ctx context.Context, hostname string, record schema.FileMetaRecord) error {
	if !types.IsIdentifier(hostname) {
		return fmt.Errorf("journal: invalid hostname %q", hostname)
	}

	f, err := os.OpenFile(j.path(hostname), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("journal: failed to open %q: %w", hostname, err)
	}
	defer f.Close()

	if _, err := f.WriteString(encodeLine(record)); err != nil {
		return fmt.Errorf("journal: failed to append to %q: %w", hostname, err)
	}
	return nil
}

// Scan streams every record of the host's journal to fn in order. A host
// with no journal file yet is treated as an empty log, not an error.
func (j *FileJournal) Scan(ctx context.Context, hostname string, fn func(schema.FileMetaRecord) error, onWarning func(line string, err error)) error {
	f, err := os.Open(j.path(hostname))
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("journal: failed to open %q: %w", hostname, err)
	}
	defer f.Close()

	scanner := newLineScanner(f)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := scanner.next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return fmt.Errorf("journal: failed to read %q: %w", hostname, err)
		}

		record, err := decodeLine(line)
		if err != nil {
			if onWarning != nil {
				onWarning(line, err)
			}
			continue
		}

		if err := fn(record); err != nil {
			return err
		}
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (j *FileJournal) path(hostname string) string {
	return filepath.Join(j.dir, hostname)
}
