package journal

import (
	"fmt"
	"strconv"
	"strings"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// RECORD CODEC
//
// One record per line:
//
//	file_type, inode, mode, atime, ctime, mtime, size,
//	"owner", "group", uid, gid, "name64", "link64"[, "hash64", "hash64", ...]
//
// name64/link64 are base64-encoded so the journal's naive comma splitting of
// the first 13 fields never sees a comma or quote character from a path.

// encodeLine renders record as one journal line, including the trailing
// newline, matching the single-write append path.
func encodeLine(record schema.FileMetaRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d, %d, %d, %d, %d, %d, %d, %q, %q, %d, %d, %s, %s",
		record.FileType, record.Inode, record.Mode,
		record.Atime, record.Ctime, record.Mtime, record.Size,
		record.Owner, record.Group, record.Uid, record.Gid,
		quote(schema.EncodeString(record.Name)),
		quote(schema.EncodeString(record.Link)),
	)
	for _, h := range record.HashList {
		b.WriteString(", ")
		b.WriteString(quote(h.Base64()))
	}
	b.WriteByte('\n')
	return b.String()
}

// quote wraps s in double quotes without further escaping: name64/link64 are
// base64 and never contain '"', and the %q verb above already quotes owner
// and group.
func quote(s string) string {
	return "\"" + s + "\""
}

// decodeLine parses one journal line (without its trailing newline) into a
// FileMetaRecord.
func decodeLine(line string) (schema.FileMetaRecord, error) {
	fields := strings.SplitN(line, ",", 14)
	if len(fields) < 13 {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: record has %d fields, want at least 13", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	fileType, err := strconv.ParseUint(fields[0], 10, 8)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: file_type: %w", err)
	}
	inode, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: inode: %w", err)
	}
	mode, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: mode: %w", err)
	}
	atime, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: atime: %w", err)
	}
	ctime, err := strconv.ParseUint(fields[4], 10, 64)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: ctime: %w", err)
	}
	mtime, err := strconv.ParseUint(fields[5], 10, 64)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: mtime: %w", err)
	}
	size, err := strconv.ParseUint(fields[6], 10, 64)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: size: %w", err)
	}
	uid, err := strconv.ParseUint(fields[9], 10, 32)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: uid: %w", err)
	}
	gid, err := strconv.ParseUint(fields[10], 10, 32)
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: gid: %w", err)
	}

	name, err := schema.DecodeString(unquote(fields[11]))
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: name: %w", err)
	}
	link, err := schema.DecodeString(unquote(fields[12]))
	if err != nil {
		return schema.FileMetaRecord{}, fmt.Errorf("journal: link: %w", err)
	}

	var hashList []schema.Hash
	if len(fields) > 13 && strings.TrimSpace(fields[13]) != "" {
		for _, tok := range strings.Split(fields[13], ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			h, err := schema.HashFromBase64(unquote(tok))
			if err != nil {
				return schema.FileMetaRecord{}, fmt.Errorf("journal: hash_list: %w", err)
			}
			hashList = append(hashList, h)
		}
	}

	return schema.FileMetaRecord{
		FileType: uint8(fileType),
		Inode:    inode,
		Mode:     uint32(mode),
		Atime:    atime,
		Ctime:    ctime,
		Mtime:    mtime,
		Size:     size,
		Owner:    unquote(fields[7]),
		Group:    unquote(fields[8]),
		Uid:      uint32(uid),
		Gid:      uint32(gid),
		Name:     name,
		Link:     link,
		HashList: hashList,
	}, nil
}

// unquote strips a single leading and trailing '"', if both are present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
