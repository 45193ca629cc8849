package journal

import (
	"context"
	"encoding/json"

	// Packages
	pg "github.com/mutablelogic/go-pg"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
	httpresponse "github.com/mutablelogic/go-server/pkg/httpresponse"
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	pgSchemaName     = "cdp"
	fileMetaListSize = 1000
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// fileMetaInsert binds one Append call's arguments for the writer interface.
type fileMetaInsert struct {
	hostname string
	record   schema.FileMetaRecord
}

// fileMetaRow is both the reader for a single row and the RETURNING target
// of an insert.
type fileMetaRow struct {
	id       uint64
	hostname string
	record   schema.FileMetaRecord
}

// fileMetaListRequest selects every row for one host, oldest first, a page
// at a time.
type fileMetaListRequest struct {
	Hostname string
	pg.OffsetLimit
}

type fileMetaList struct {
	Body []schema.FileMetaRecord
}

////////////////////////////////////////////////////////////////////////////////
// WRITER

func (m fileMetaInsert) Insert(bind *pg.Bind) (string, error) {
	if !types.IsIdentifier(m.hostname) {
		return "", httpresponse.ErrBadRequest.Withf("invalid hostname: %q", m.hostname)
	}

	hashList, err := json.Marshal(m.record.HashList)
	if err != nil {
		return "", httpresponse.ErrBadRequest.Withf("error marshalling hash_list: %v", err)
	}

	bind.Set("hostname", m.hostname)
	bind.Set("filetype", m.record.FileType)
	bind.Set("inode", m.record.Inode)
	bind.Set("mode", m.record.Mode)
	bind.Set("atime", m.record.Atime)
	bind.Set("ctime", m.record.Ctime)
	bind.Set("mtime", m.record.Mtime)
	bind.Set("fsize", m.record.Size)
	bind.Set("owner", m.record.Owner)
	bind.Set("group", m.record.Group)
	bind.Set("uid", m.record.Uid)
	bind.Set("gid", m.record.Gid)
	bind.Set("name", m.record.Name)
	bind.Set("link", m.record.Link)
	bind.Set("hash_list", json.RawMessage(hashList))

	return fileMetaInsertSQL, nil
}

////////////////////////////////////////////////////////////////////////////////
// READER

func (r *fileMetaRow) Scan(row pg.Row) error {
	return row.Scan(&r.id, &r.hostname, &r.record.FileType, &r.record.Inode, &r.record.Mode,
		&r.record.Atime, &r.record.Ctime, &r.record.Mtime, &r.record.Size,
		&r.record.Owner, &r.record.Group, &r.record.Uid, &r.record.Gid,
		&r.record.Name, &r.record.Link, &r.record.HashList)
}

func (f fileMetaListRequest) Select(bind *pg.Bind, op pg.Op) (string, error) {
	bind.Set("hostname", f.Hostname)
	f.OffsetLimit.Bind(bind, fileMetaListSize)

	switch op {
	case pg.List:
		return fileMetaListSQL, nil
	default:
		return "", httpresponse.ErrNotImplemented.Withf("fileMetaListRequest operation: %q", op)
	}
}

func (l *fileMetaList) Scan(row pg.Row) error {
	var r fileMetaRow
	if err := r.Scan(row); err != nil {
		return err
	}
	l.Body = append(l.Body, r.record)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// SQL

func bootstrapFileMeta(ctx context.Context, conn pg.Conn) error {
	q := []string{
		fileMetaCreateTable,
		fileMetaCreateIndex,
	}
	for _, query := range q {
		if err := conn.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

const (
	fileMetaCreateTable = `
		CREATE TABLE IF NOT EXISTS ${"schema"}."file_meta" (
			"id"         BIGSERIAL NOT NULL,                        -- append order
			"hostname"   TEXT NOT NULL,                              -- originating client
			"filetype"   SMALLINT NOT NULL,                          -- S_ISxxx kind
			"inode"      BIGINT NOT NULL,
			"mode"       INTEGER NOT NULL,
			"atime"      BIGINT NOT NULL,
			"ctime"      BIGINT NOT NULL,
			"mtime"      BIGINT NOT NULL,
			"fsize"      BIGINT NOT NULL,
			"owner"      TEXT,
			"group"      TEXT,
			"uid"        INTEGER NOT NULL,
			"gid"        INTEGER NOT NULL,
			"name"       TEXT NOT NULL,                               -- absolute path
			"link"       TEXT,                                        -- symlink target
			"hash_list"  JSONB NOT NULL DEFAULT '[]'::JSONB,          -- ordered block hashes
			PRIMARY KEY ("id")
		)
	`
	fileMetaCreateIndex = `
		CREATE INDEX IF NOT EXISTS "file_meta_hostname_id_idx" ON ${"schema"}."file_meta" ("hostname", "id")
	`
	fileMetaInsertSQL = `
		INSERT INTO ${"schema"}."file_meta" (
			"hostname", "filetype", "inode", "mode", "atime", "ctime", "mtime", "fsize",
			"owner", "group", "uid", "gid", "name", "link", "hash_list"
		) VALUES (
			@hostname, @filetype, @inode, @mode, @atime, @ctime, @mtime, @fsize,
			@owner, @group, @uid, @gid, @name, @link, @hash_list::JSONB
		) RETURNING
			"id", "hostname", "filetype", "inode", "mode", "atime", "ctime", "mtime", "fsize",
			"owner", "group", "uid", "gid", "name", "link", "hash_list"
	`
	fileMetaSelect = `
		SELECT
			"id", "hostname", "filetype", "inode", "mode", "atime", "ctime", "mtime", "fsize",
			"owner", "group", "uid", "gid", "name", "link", "hash_list"
		FROM
			${"schema"}."file_meta"
	`
	fileMetaListSQL = fileMetaSelect + `WHERE "hostname" = @hostname ORDER BY "id" ASC OFFSET @offset LIMIT @limit`
)
