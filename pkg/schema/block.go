package schema

import "github.com/mutablelogic/go-server/pkg/types"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Block is a content-addressed payload, possibly compressed. When
// Cmptype is CompressNone, Uncmplen must equal len(Data).
type Block struct {
	Hash     Hash   `json:"hash"`
	Data     []byte `json:"data"`
	Size     uint64 `json:"size"`
	Cmptype  int16  `json:"cmptype"`
	Uncmplen int64  `json:"uncmplen"`
}

// DataArrayRequest is the body of POST /Data_Array.json.
type DataArrayRequest struct {
	DataArray []Block `json:"data_array"`
}

// HashArrayRequest is the body of POST /Hash_Array.json and the decoded
// form of the X-Get-Hash-Array header.
type HashArrayRequest struct {
	HashList []Hash `json:"hash_list"`
}

// HashArrayResponse is the needed-hash response shared by POST /Meta.json
// and POST /Hash_Array.json.
type HashArrayResponse struct {
	HashList []Hash `json:"hash_list"`
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (b Block) String() string {
	return types.Stringify(b)
}

func (r HashArrayResponse) String() string {
	return types.Stringify(r)
}
