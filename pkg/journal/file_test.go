package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

func TestFileJournalAppendAndScan(t *testing.T) {
	j, err := NewFileJournal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	first := sampleRecord()
	second := sampleRecord()
	second.Name = "/etc/hostname"
	second.Mtime = sampleRecord().Mtime + 1

	require.NoError(t, j.Append(ctx, "host-a", first))
	require.NoError(t, j.Append(ctx, "host-a", second))

	var got []schema.FileMetaRecord
	err = j.Scan(ctx, "host-a", func(r schema.FileMetaRecord) error {
		got = append(got, r)
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, []schema.FileMetaRecord{first, second}, got)
}

func TestFileJournalScanUnknownHostIsEmpty(t *testing.T) {
	j, err := NewFileJournal(t.TempDir())
	require.NoError(t, err)

	var got []schema.FileMetaRecord
	err = j.Scan(context.Background(), "never-seen", func(r schema.FileMetaRecord) error {
		got = append(got, r)
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileJournalScanSkipsMalformedLineAndWarns(t *testing.T) {
	dir := t.TempDir()
	j, err := NewFileJournal(dir)
	require.NoError(t, err)

	ctx := context.Background()
	good := sampleRecord()
	require.NoError(t, j.Append(ctx, "host-b", good))

	// Inject a malformed record between two valid ones directly on disk.
	f, err := os.OpenFile(filepath.Join(dir, "host-b"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("a, b, c, d, e, f, g, h, i, j, k, l, m\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, j.Append(ctx, "host-b", good))

	var warnings int
	var got []schema.FileMetaRecord
	err = j.Scan(ctx, "host-b", func(r schema.FileMetaRecord) error {
		got = append(got, r)
		return nil
	}, func(line string, err error) {
		warnings++
	})
	require.NoError(t, err)
	assert.Equal(t, 1, warnings)
	assert.Equal(t, []schema.FileMetaRecord{good, good}, got)
}

func TestFileJournalRejectsInvalidHostname(t *testing.T) {
	j, err := NewFileJournal(t.TempDir())
	require.NoError(t, err)

	err = j.Append(context.Background(), "../escape", sampleRecord())
	assert.Error(t, err)
}
