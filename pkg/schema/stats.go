package schema

import "github.com/mutablelogic/go-server/pkg/types"

// StatsResponse is the body of GET /Stats.json.
type StatsResponse struct {
	GetCount      uint64            `json:"get_count"`
	PostCount     uint64            `json:"post_count"`
	UnknownCount  uint64            `json:"unknown_count"`
	UrlCount      map[string]uint64 `json:"url_count"`
	MetaBytes     uint64            `json:"meta_bytes"`
	DataBytes     uint64            `json:"data_bytes"`
	SavedFiles    uint64            `json:"saved_files"`
	TotalFileSize uint64            `json:"total_file_size"`
}

func (r StatsResponse) String() string {
	return types.Stringify(r)
}
