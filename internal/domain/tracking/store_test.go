package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreUpsertAndGet(t *testing.T) {
	store := NewStore()
	key, err := NewEntityKey(KindDriver, "d42")
	require.NoError(t, err)

	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	store.Upsert(key, 52.52, 13.405, ts)

	record, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, key, record.Key)
	assert.Equal(t, 52.52, record.Lat)
	assert.Equal(t, 13.405, record.Lon)
	assert.Equal(t, ts, record.ObservedAt)
}

func TestStoreOverwrite(t *testing.T) {
	store := NewStore()
	key, err := NewEntityKey(KindRider, "u1")
	require.NoError(t, err)

	store.Upsert(key, 1, 2, time.Now())
	store.Upsert(key, 3, 4, time.Now())

	record, ok := store.Get(key)
	require.True(t, ok)
	assert.Equal(t, 3.0, record.Lat)
	assert.Equal(t, 4.0, record.Lon)
}

func TestStoreGetMissing(t *testing.T) {
	store := NewStore()
	key, err := NewEntityKey(KindDriver, "ghost")
	require.NoError(t, err)

	_, ok := store.Get(key)
	assert.False(t, ok)
}

// Concurrent writers racing on one key must resolve to exactly one writer's
// full record, never a mix of fields from different writers.
func TestStoreConcurrentLastWriterWins(t *testing.T) {
	store := NewStore()
	key, err := NewEntityKey(KindDriver, "race")
	require.NoError(t, err)

	const writers = 32
	const rounds = 200

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			lat := float64(w)
			lon := float64(w) + 1000
			ts := time.Unix(int64(w), 0)
			for r := 0; r < rounds; r++ {
				store.Upsert(key, lat, lon, ts)
			}
		}(w)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < rounds; i++ {
			record, ok := store.Get(key)
			if !ok {
				continue
			}
			// lat and lon always come from the same writer.
			assert.Equal(t, record.Lat+1000, record.Lon)
			assert.Equal(t, time.Unix(int64(record.Lat), 0), record.ObservedAt)
		}
	}()

	wg.Wait()
	<-done

	record, ok := store.Get(key)
	require.True(t, ok)
	assert.GreaterOrEqual(t, record.Lat, 0.0)
	assert.Less(t, record.Lat, float64(writers))
	assert.Equal(t, record.Lat+1000, record.Lon)
}
