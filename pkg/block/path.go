package block

import (
	"strings"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PATH CONSTRUCTION
//
// The path of a block with hex hash H = h0h1 h2h3 ... h63 at fan-out level L
// is data/h0h1/h2h3/.../hL*2..h63 — each directory level is one byte of the
// hash rendered as two lowercase hex digits, and the filename is whatever
// hex remains after the first L bytes.

const (
	dataPrefix = "data"
	metaPrefix = "meta"
	doneKey    = dataPrefix + "/.done"
	metaSuffix = ".meta"
)

// dataKey returns the blob storage key for a block's payload.
func dataKey(h schema.Hash, level int) string {
	hex := h.Hex()
	parts := make([]string, 0, level+2)
	parts = append(parts, dataPrefix)
	for i := 0; i < level; i++ {
		parts = append(parts, hex[i*2:i*2+2])
	}
	parts = append(parts, hex[level*2:])
	return strings.Join(parts, "/")
}

// metaKey returns the blob storage key for a block's sidecar metadata.
func metaKey(h schema.Hash, level int) string {
	return dataKey(h, level) + metaSuffix
}

// fanoutDirs enumerates every leaf directory path of the tree (e.g. "00/ff/"
// at level 2), for backends (file://) that benefit from pre-created
// directories; creating the leaves also creates the levels above them.
func fanoutDirs(level int) []string {
	if level <= 0 {
		return nil
	}
	const hexDigits = "0123456789abcdef"
	dirs := []string{""}
	for l := 0; l < level; l++ {
		next := make([]string, 0, len(dirs)*256)
		for _, d := range dirs {
			for _, hi := range hexDigits {
				for _, lo := range hexDigits {
					next = append(next, d+string(hi)+string(lo)+"/")
				}
			}
		}
		dirs = next
	}
	return dirs
}
