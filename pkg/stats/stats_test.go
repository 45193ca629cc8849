package stats_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	stats "github.com/mutablelogic/go-cdp/pkg/stats"
)

func TestSnapshotCountsRequestsByMethod(t *testing.T) {
	s := stats.New()
	s.Get("/Version.json")
	s.Get("/File/List.json")
	s.Post("/Meta.json")
	s.Unknown("/nope")

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.GetCount)
	assert.Equal(t, uint64(1), snap.PostCount)
	assert.Equal(t, uint64(1), snap.UnknownCount)
	assert.Equal(t, uint64(1), snap.UrlCount["/Version.json"])
	assert.Equal(t, uint64(1), snap.UrlCount["/nope"])
}

func TestSnapshotAccumulatesByteAndFileCounters(t *testing.T) {
	s := stats.New()
	s.AddMetaBytes(100)
	s.AddMetaBytes(50)
	s.AddDataBytes(200)
	s.AddSavedFile(1024)
	s.AddSavedFile(2048)

	snap := s.Snapshot()
	assert.Equal(t, uint64(150), snap.MetaBytes)
	assert.Equal(t, uint64(200), snap.DataBytes)
	assert.Equal(t, uint64(2), snap.SavedFiles)
	assert.Equal(t, uint64(3072), snap.TotalFileSize)
}

func TestCountersAreSafeForConcurrentUse(t *testing.T) {
	s := stats.New()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Get("/Version.json")
			s.Post("/Meta.json")
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, uint64(100), snap.GetCount)
	assert.Equal(t, uint64(100), snap.PostCount)
	assert.Equal(t, uint64(100), snap.UrlCount["/Version.json"])
	assert.Equal(t, uint64(100), snap.UrlCount["/Meta.json"])
}
