// Package query implements the query engine (C5): predicate filtering,
// latest-version reduction, stable ordering and field projection over a
// host's metadata journal.
package query

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"time"

	journal "github.com/mutablelogic/go-cdp/pkg/journal"
	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run scans j for q.Hostname and returns the matching, ordered, optionally
// reduced and latest-only filtered file list. A malformed journal line is
// skipped (never aborts the scan); onWarning, if non-nil, is called for
// each one.
func Run(ctx context.Context, j journal.Journal, q schema.Query, onWarning func(line string, err error)) (schema.FileListResponse, error) {
	re, err := regexp.Compile("(?i)" + q.Filename)
	if err != nil {
		return schema.FileListResponse{}, fmt.Errorf("query: invalid filename pattern %q: %w", q.Filename, err)
	}

	type entry struct {
		record schema.FileMetaRecord
		pos    int
	}

	var matched []entry
	pos := 0
	err = j.Scan(ctx, q.Hostname, func(r schema.FileMetaRecord) error {
		if matches(r, re, q) {
			matched = append(matched, entry{record: r, pos: pos})
		}
		pos++
		return nil
	}, onWarning)
	if err != nil {
		return schema.FileListResponse{}, err
	}

	if q.Latest {
		latest := make(map[string]entry, len(matched))
		for _, e := range matched {
			cur, ok := latest[e.record.Name]
			if !ok || e.record.Mtime > cur.record.Mtime || (e.record.Mtime == cur.record.Mtime && e.pos > cur.pos) {
				latest[e.record.Name] = e
			}
		}
		matched = matched[:0]
		for _, e := range latest {
			matched = append(matched, e)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].record.Name != matched[j].record.Name {
			return matched[i].record.Name < matched[j].record.Name
		}
		return matched[i].record.Mtime < matched[j].record.Mtime
	})

	items := make([]schema.FileListItem, 0, len(matched))
	for _, e := range matched {
		if q.Reduced {
			items = append(items, e.record.Reduced())
		} else {
			items = append(items, e.record.Full())
		}
	}

	return schema.FileListResponse{FileList: items}, nil
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// matches applies every predicate in q to r. All predicates are ANDed.
func matches(r schema.FileMetaRecord, re *regexp.Regexp, q schema.Query) bool {
	if !re.MatchString(r.Name) {
		return false
	}

	mtime := time.Unix(int64(r.Mtime), 0).UTC()

	if q.Date != nil && !sameUTCDay(mtime, *q.Date) {
		return false
	}
	if q.AfterDate != nil && !mtime.After(*q.AfterDate) {
		return false
	}
	if q.BeforeDate != nil && !mtime.Before(*q.BeforeDate) {
		return false
	}

	return true
}

// sameUTCDay reports whether a and b fall on the same calendar day in UTC.
func sameUTCDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
