package api

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strconv"
	"time"

	// Packages
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// parseQuery decodes the §4.6 query-string arguments for GET /File/List.json
// into a schema.Query. filename/date/afterdate/beforedate arrive
// base64-encoded so they survive URL escaping of "/" and whitespace.
func parseQuery(v url.Values) (schema.Query, error) {
	q := schema.Query{
		Hostname: v.Get("hostname"),
		Latest:   v.Get("latest") == "True",
		Reduced:  v.Get("reduced") == "True",
	}
	if q.Hostname == "" {
		return q, fmt.Errorf("missing required argument: hostname")
	}

	filename, err := decodeArg(v, "filename")
	if err != nil {
		return q, err
	}
	q.Filename = filename
	if q.Filename == "" {
		q.Filename = ".*"
	}

	if uid := v.Get("uid"); uid != "" {
		n, err := strconv.ParseUint(uid, 10, 32)
		if err != nil {
			return q, fmt.Errorf("invalid uid: %w", err)
		}
		u32 := uint32(n)
		q.Uid = &u32
	}
	if gid := v.Get("gid"); gid != "" {
		n, err := strconv.ParseUint(gid, 10, 32)
		if err != nil {
			return q, fmt.Errorf("invalid gid: %w", err)
		}
		g32 := uint32(n)
		q.Gid = &g32
	}
	if owner := v.Get("owner"); owner != "" {
		q.Owner = &owner
	}
	if group := v.Get("group"); group != "" {
		q.Group = &group
	}

	if q.Date, err = decodeDateArg(v, "date"); err != nil {
		return q, err
	}
	if q.AfterDate, err = decodeDateArg(v, "afterdate"); err != nil {
		return q, err
	}
	if q.BeforeDate, err = decodeDateArg(v, "beforedate"); err != nil {
		return q, err
	}

	return q, nil
}

func decodeArg(v url.Values, key string) (string, error) {
	raw := v.Get(key)
	if raw == "" {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base64 for %s: %w", key, err)
	}
	return string(b), nil
}

func decodeDateArg(v url.Values, key string) (*time.Time, error) {
	s, err := decodeArg(v, key)
	if err != nil || s == "" {
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &t, nil
}
