package block

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// SIDECAR META CODEC
//
// The .meta sidecar is a small key=value text file (the Go analogue of the
// original GKeyFile group), holding the two pieces of codec metadata that
// travel alongside an opaque block payload: cmptype and uncmplen.

const (
	keyCmptype  = "cmptype"
	keyUncmplen = "uncmplen"
)

// encodeMeta renders cmptype/uncmplen as sidecar text.
func encodeMeta(cmptype int16, uncmplen int64) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s=%d\n", keyCmptype, cmptype)
	fmt.Fprintf(&buf, "%s=%d\n", keyUncmplen, uncmplen)
	return buf.Bytes()
}

// decodeMeta parses sidecar text, defaulting cmptype to CompressNone and
// uncmplen to 0 whenever the data is missing, malformed, or the stored
// cmptype falls outside the allowed set.
func decodeMeta(data []byte) (cmptype int16, uncmplen int64) {
	cmptype = schema.CompressNone
	uncmplen = 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch k {
		case keyCmptype:
			if n, err := strconv.ParseInt(v, 10, 16); err == nil && isCompressTypeAllowed(int16(n)) {
				cmptype = int16(n)
			}
		case keyUncmplen:
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				uncmplen = n
			}
		}
	}
	return cmptype, uncmplen
}

// isCompressTypeAllowed reports whether cmptype is a value this server will
// trust from a sidecar file. The compression codec itself is out of scope
// (§1); CompressNone is the only value guaranteed to be interpreted here,
// but other non-negative codes are passed through opaquely.
func isCompressTypeAllowed(cmptype int16) bool {
	return cmptype >= 0
}
