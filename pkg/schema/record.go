package schema

import "github.com/mutablelogic/go-server/pkg/types"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// FileMetaRecord is a single version of a single file on one host, as
// appended to that host's journal.
type FileMetaRecord struct {
	FileType uint8
	Inode    uint64
	Mode     uint32
	Atime    uint64
	Ctime    uint64
	Mtime    uint64
	Size     uint64
	Owner    string
	Group    string
	Uid      uint32
	Gid      uint32
	Name     string // absolute path, decoded
	Link     string // symlink target, decoded (may be empty)
	HashList []Hash
}

// FileListItem is the wire projection of a FileMetaRecord. In reduced mode
// only FileType, Name, Mtime and Fsize are populated; the rest are left nil
// and elided from the JSON body by omitempty.
type FileListItem struct {
	FileType *uint8  `json:"filetype,omitempty"`
	Inode    *uint64 `json:"inode,omitempty"`
	Mode     *uint32 `json:"mode,omitempty"`
	Atime    *uint64 `json:"atime,omitempty"`
	Ctime    *uint64 `json:"ctime,omitempty"`
	Mtime    uint64  `json:"mtime"`
	Fsize    *uint64 `json:"fsize,omitempty"`
	Owner    *string `json:"owner,omitempty"`
	Group    *string `json:"group,omitempty"`
	Uid      *uint32 `json:"uid,omitempty"`
	Gid      *uint32 `json:"gid,omitempty"`
	Name     string  `json:"name"`
	Link     *string `json:"link,omitempty"`
	HashList []Hash  `json:"hash_list,omitempty"`
}

// FileListResponse is the body of GET /File/List.json.
type FileListResponse struct {
	FileList []FileListItem `json:"file_list"`
}

// MetaRequest is the body of POST /Meta.json: a FileMetaRecord flattened
// into one JSON object alongside the hostname of the originating client,
// mirroring the wire shape of the source implementation.
type MetaRequest struct {
	Hostname string  `json:"hostname"`
	FileType uint8   `json:"filetype"`
	Inode    uint64  `json:"inode"`
	Mode     uint32  `json:"mode"`
	Atime    uint64  `json:"atime"`
	Ctime    uint64  `json:"ctime"`
	Mtime    uint64  `json:"mtime"`
	Fsize    uint64  `json:"fsize"`
	Owner    string  `json:"owner"`
	Group    string  `json:"group"`
	Uid      uint32  `json:"uid"`
	Gid      uint32  `json:"gid"`
	Name     string  `json:"name"`
	Link     string  `json:"link,omitempty"`
	HashList []Hash  `json:"hash_list,omitempty"`
}

// Record converts the wire request into the FileMetaRecord it describes.
func (r MetaRequest) Record() FileMetaRecord {
	return FileMetaRecord{
		FileType: r.FileType,
		Inode:    r.Inode,
		Mode:     r.Mode,
		Atime:    r.Atime,
		Ctime:    r.Ctime,
		Mtime:    r.Mtime,
		Size:     r.Fsize,
		Owner:    r.Owner,
		Group:    r.Group,
		Uid:      r.Uid,
		Gid:      r.Gid,
		Name:     r.Name,
		Link:     r.Link,
		HashList: r.HashList,
	}
}

func (r MetaRequest) String() string {
	return types.Stringify(r)
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Full projects a FileMetaRecord into a FileListItem with every field
// populated.
func (r FileMetaRecord) Full() FileListItem {
	return FileListItem{
		FileType: types.Ptr(r.FileType),
		Inode:    types.Ptr(r.Inode),
		Mode:     types.Ptr(r.Mode),
		Atime:    types.Ptr(r.Atime),
		Ctime:    types.Ptr(r.Ctime),
		Mtime:    r.Mtime,
		Fsize:    types.Ptr(r.Size),
		Owner:    types.Ptr(r.Owner),
		Group:    types.Ptr(r.Group),
		Uid:      types.Ptr(r.Uid),
		Gid:      types.Ptr(r.Gid),
		Name:     r.Name,
		Link:     types.Ptr(r.Link),
		HashList: r.HashList,
	}
}

// Reduced projects a FileMetaRecord into the compact
// {file_type, name, mtime, size} form required when a query sets reduced=true.
func (r FileMetaRecord) Reduced() FileListItem {
	return FileListItem{
		FileType: types.Ptr(r.FileType),
		Mtime:    r.Mtime,
		Fsize:    types.Ptr(r.Size),
		Name:     r.Name,
	}
}

func (r FileMetaRecord) String() string {
	return types.Stringify(r)
}

func (r FileListItem) String() string {
	return types.Stringify(r)
}
