package api

import (
	"encoding/json"
	"io"
	"net/http"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// readBody assembles r.Body with a single allocation sized from
// r.ContentLength when it is known and positive, falling back to
// io.ReadAll otherwise (§4.6's idiomatic rendering of the original's
// streaming body assembly).
func readBody(r *http.Request) ([]byte, error) {
	if r.ContentLength > 0 {
		buf := make([]byte, r.ContentLength)
		if _, err := io.ReadFull(r.Body, buf); err != nil {
			return nil, err
		}
		return buf, nil
	}
	return io.ReadAll(r.Body)
}

// decodeBody reads and JSON-decodes the request body into v.
func decodeBody(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}
