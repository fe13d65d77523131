package tracking

import (
	"sync"
	"time"
)

// LocationRecord is the last known position of a tracked entity. Each upsert
// overwrites the prior record for its key; no history is kept.
type LocationRecord struct {
	Key        EntityKey `json:"entity_key"`
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	ObservedAt time.Time `json:"observed_at"`
}

// Store is a concurrent map of entity key to last known position. Records
// are replaced atomically per key, so concurrent writers racing on the same
// key resolve to one fully-formed record, never a mix of fields. Records
// live for the process lifetime; there is no eviction or persistence.
type Store struct {
	records sync.Map // EntityKey -> LocationRecord
}

// NewStore creates an empty location store.
func NewStore() *Store {
	return &Store{}
}

// Upsert replaces any existing record for the key.
func (s *Store) Upsert(key EntityKey, lat, lon float64, observedAt time.Time) {
	s.records.Store(key, LocationRecord{
		Key:        key,
		Lat:        lat,
		Lon:        lon,
		ObservedAt: observedAt,
	})
}

// Get returns the last known record for the key, if any.
func (s *Store) Get(key EntityKey) (LocationRecord, bool) {
	v, ok := s.records.Load(key)
	if !ok {
		return LocationRecord{}, false
	}
	return v.(LocationRecord), true
}
