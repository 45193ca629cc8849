package query_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	query "github.com/mutablelogic/go-cdp/pkg/query"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

func newTestJournal(t *testing.T) journal.Journal {
	t.Helper()
	j, err := journal.NewFileJournal(t.TempDir())
	require.NoError(t, err)
	return j
}

func record(name string, mtime uint64) schema.FileMetaRecord {
	return schema.FileMetaRecord{
		FileType: 1,
		Mode:     0o644,
		Mtime:    mtime,
		Size:     100,
		Owner:    "root",
		Group:    "root",
		Name:     name,
	}
}

func TestRunFiltersByFilenameRegex(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, "h1", record("/etc/passwd", 100)))
	require.NoError(t, j.Append(ctx, "h1", record("/etc/hosts", 200)))
	require.NoError(t, j.Append(ctx, "h1", record("/var/log/syslog", 300)))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: "^/etc/"}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 2)
	assert.Equal(t, "/etc/hosts", resp.FileList[0].Name)
	assert.Equal(t, "/etc/passwd", resp.FileList[1].Name)
}

func TestRunFilenameMatchIsCaseInsensitive(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	require.NoError(t, j.Append(ctx, "h1", record("/ETC/PASSWD", 100)))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: "etc/passwd"}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
}

func TestRunLatestKeepsMaxMtimePerName(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	require.NoError(t, j.Append(ctx, "h1", record("/a", 100)))
	require.NoError(t, j.Append(ctx, "h1", record("/a", 300)))
	require.NoError(t, j.Append(ctx, "h1", record("/a", 200)))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", Latest: true}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	assert.Equal(t, uint64(300), resp.FileList[0].Mtime)
}

func TestRunLatestTiesBrokenByJournalPosition(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	first := record("/a", 100)
	first.Size = 1
	second := record("/a", 100)
	second.Size = 2

	require.NoError(t, j.Append(ctx, "h1", first))
	require.NoError(t, j.Append(ctx, "h1", second))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", Latest: true}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	require.NotNil(t, resp.FileList[0].Fsize)
	assert.Equal(t, uint64(2), *resp.FileList[0].Fsize)
}

func TestRunReducedProjectsCompactFields(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()
	require.NoError(t, j.Append(ctx, "h1", record("/a", 100)))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", Reduced: true}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	item := resp.FileList[0]
	assert.Nil(t, item.Owner)
	assert.Nil(t, item.Inode)
	require.NotNil(t, item.FileType)
	require.NotNil(t, item.Fsize)
}

func TestRunDatePredicateIsUTCDayEquality(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	within := record("/a", uint64(day.Add(5*time.Hour).Unix()))
	outside := record("/b", uint64(day.Add(-5*time.Hour).Unix()))

	require.NoError(t, j.Append(ctx, "h1", within))
	require.NoError(t, j.Append(ctx, "h1", outside))

	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", Date: &day}, nil)
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	assert.Equal(t, "/a", resp.FileList[0].Name)
}

func TestRunAfterAndBeforeDateAreExclusive(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	require.NoError(t, j.Append(ctx, "h1", record("/a", uint64(base.Unix()))))

	after := base
	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", AfterDate: &after}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.FileList)

	before := base
	resp, err = query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*", BeforeDate: &before}, nil)
	require.NoError(t, err)
	assert.Empty(t, resp.FileList)
}

func TestRunSkipsMalformedLinesAndWarns(t *testing.T) {
	dir := t.TempDir()
	j, err := journal.NewFileJournal(dir)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, j.Append(ctx, "h1", record("/a", 100)))

	// Inject a malformed record after the valid one directly on disk.
	f, err := os.OpenFile(filepath.Join(dir, "h1"), os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("a, b, c, d, e, f, g, h, i, j, k, l, m\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var warnings int
	resp, err := query.Run(ctx, j, schema.Query{Hostname: "h1", Filename: ".*"}, func(line string, err error) {
		warnings++
	})
	require.NoError(t, err)
	require.Len(t, resp.FileList, 1)
	assert.Equal(t, 1, warnings)
}

func TestRunInvalidRegexReturnsError(t *testing.T) {
	j := newTestJournal(t)
	_, err := query.Run(context.Background(), j, schema.Query{Hostname: "h1", Filename: "("}, nil)
	assert.Error(t, err)
}
