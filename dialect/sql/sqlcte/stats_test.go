package sqlcte

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/updatecte"
)

func TestStats(t *testing.T) {
	var s Stats
	s.record(updatecte.RowUpdated, nil, time.Millisecond, false)
	s.record(updatecte.RowFoundNotUpdated, nil, time.Millisecond, false)
	s.record(updatecte.RowMissing, nil, time.Millisecond, true)
	s.record(0, updatecte.NewStoreError("query", errors.New("boom")), time.Millisecond, false)
	s.record(0, &updatecte.InvariantError{Table: "objects", Msg: "found key is NULL"}, time.Millisecond, false)

	snap := s.Snapshot()
	assert.Equal(t, StatsSnapshot{
		Missing:         1,
		FoundNotUpdated: 1,
		Updated:         1,
		StoreErrors:     1,
		InvariantErrors: 1,
		Slow:            1,
		TotalDuration:   5 * time.Millisecond,
	}, snap)
	assert.Equal(t, int64(5), snap.Total())
	assert.Equal(t, "missing=1 found_not_updated=1 updated=1 store_errors=1 invariant_errors=1 slow=1 duration=5ms", snap.String())

	s.Reset()
	assert.Equal(t, StatsSnapshot{}, s.Snapshot())
}

func TestStatsConcurrent(t *testing.T) {
	var (
		s  Stats
		wg sync.WaitGroup
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.record(updatecte.RowUpdated, nil, time.Microsecond, false)
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(50), s.Snapshot().Updated)
	assert.Equal(t, 50*time.Microsecond, s.Snapshot().TotalDuration)
}

func TestExecConfig(t *testing.T) {
	c := newExecConfig(nil)
	assert.Nil(t, c.logger)
	assert.Nil(t, c.stats)
	assert.Equal(t, 100*time.Millisecond, c.slowThreshold)

	var s Stats
	c = newExecConfig([]ExecOption{WithStats(&s), WithSlowThreshold(0)})
	assert.Same(t, &s, c.stats)
	assert.Zero(t, c.slowThreshold)
}
