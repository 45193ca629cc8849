// Package stats implements the statistics aggregator (C7): process-lifetime
// atomic counters exposed as a JSON snapshot.
package stats

import (
	"sync"
	"sync/atomic"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Stats holds process-lifetime atomic counters. The scalar counters use
// atomic operations; the per-URL map is guarded by a mutex, held briefly on
// every request to look up (or, on first sighting, create) that URL's
// atomic counter.
type Stats struct {
	getCount      atomic.Uint64
	postCount     atomic.Uint64
	unknownCount  atomic.Uint64
	metaBytes     atomic.Uint64
	dataBytes     atomic.Uint64
	savedFiles    atomic.Uint64
	totalFileSize atomic.Uint64

	urlMu    sync.Mutex
	urlCount map[string]*atomic.Uint64
}

// New returns a zeroed Stats.
func New() *Stats {
	return &Stats{urlCount: make(map[string]*atomic.Uint64)}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Get records one GET request against path.
func (s *Stats) Get(path string) {
	s.getCount.Add(1)
	s.countURL(path)
}

// Post records one POST request against path.
func (s *Stats) Post(path string) {
	s.postCount.Add(1)
	s.countURL(path)
}

// Unknown records one request whose method matched no handler.
func (s *Stats) Unknown(path string) {
	s.unknownCount.Add(1)
	s.countURL(path)
}

// AddMetaBytes accounts n bytes of metadata ingested.
func (s *Stats) AddMetaBytes(n uint64) {
	s.metaBytes.Add(n)
}

// AddDataBytes accounts n bytes of deduplicated block payload ingested.
func (s *Stats) AddDataBytes(n uint64) {
	s.dataBytes.Add(n)
}

// AddSavedFile accounts one ingested file-metadata record of the given
// declared size.
func (s *Stats) AddSavedFile(size uint64) {
	s.savedFiles.Add(1)
	s.totalFileSize.Add(size)
}

// Snapshot renders the current counters as the wire response. The snapshot
// is not required to be a consistent instant across fields (§4.7).
func (s *Stats) Snapshot() schema.StatsResponse {
	s.urlMu.Lock()
	urlCount := make(map[string]uint64, len(s.urlCount))
	for url, n := range s.urlCount {
		urlCount[url] = n.Load()
	}
	s.urlMu.Unlock()

	return schema.StatsResponse{
		GetCount:      s.getCount.Load(),
		PostCount:     s.postCount.Load(),
		UnknownCount:  s.unknownCount.Load(),
		UrlCount:      urlCount,
		MetaBytes:     s.metaBytes.Load(),
		DataBytes:     s.dataBytes.Load(),
		SavedFiles:    s.savedFiles.Load(),
		TotalFileSize: s.totalFileSize.Load(),
	}
}

////////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (s *Stats) countURL(path string) {
	s.urlMu.Lock()
	counter, ok := s.urlCount[path]
	if !ok {
		counter = new(atomic.Uint64)
		s.urlCount[path] = counter
	}
	s.urlMu.Unlock()
	counter.Add(1)
}
