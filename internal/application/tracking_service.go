package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
	"github.com/guber-mobility/service-trips/internal/domain/tracking"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
	"github.com/guber-mobility/service-trips/internal/events"
)

// EventPublisher publishes event envelopes to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, evt events.Envelope) error
}

// UpdateLocationRequest holds one live-position report.
type UpdateLocationRequest struct {
	EntityID  string     `json:"entity_id" binding:"required"`
	Lat       float64    `json:"lat"`
	Lon       float64    `json:"lon"`
	Timestamp *time.Time `json:"timestamp"`
}

// TrackingService maintains last-known positions for drivers and riders.
type TrackingService struct {
	store     *tracking.Store
	publisher EventPublisher
	logger    *zap.Logger
}

// NewTrackingService creates a new TrackingService. The publisher may be nil
// when event publishing is disabled.
func NewTrackingService(
	store *tracking.Store,
	publisher EventPublisher,
	logger *zap.Logger,
) *TrackingService {
	return &TrackingService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// UpdateLocation upserts the last known position for the given entity. A
// missing timestamp defaults to now. Coordinates are range-checked before
// the store is touched.
func (s *TrackingService) UpdateLocation(ctx context.Context, kind tracking.EntityKind, req UpdateLocationRequest) (tracking.LocationRecord, error) {
	key, err := tracking.NewEntityKey(kind, req.EntityID)
	if err != nil {
		return tracking.LocationRecord{}, err
	}

	if _, err := trip.NewGeoPoint(req.Lat, req.Lon); err != nil {
		return tracking.LocationRecord{}, err
	}

	observedAt := time.Now().UTC()
	if req.Timestamp != nil && !req.Timestamp.IsZero() {
		observedAt = req.Timestamp.UTC()
	}

	s.store.Upsert(key, req.Lat, req.Lon, observedAt)

	record, _ := s.store.Get(key)
	s.publishLocationUpdated(ctx, record)
	return record, nil
}

// LastLocation returns the last known position for the given entity.
func (s *TrackingService) LastLocation(kind tracking.EntityKind, entityID string) (tracking.LocationRecord, error) {
	key, err := tracking.NewEntityKey(kind, entityID)
	if err != nil {
		return tracking.LocationRecord{}, err
	}

	record, ok := s.store.Get(key)
	if !ok {
		return tracking.LocationRecord{}, errs.NewNotFoundError(fmt.Sprintf("location for %s", key))
	}
	return record, nil
}

// publishLocationUpdated emits a LocationUpdated event. Publishing is
// fire-and-forget: failures are logged and never fail the upsert.
func (s *TrackingService) publishLocationUpdated(ctx context.Context, record tracking.LocationRecord) {
	if s.publisher == nil {
		return
	}

	evt, err := events.NewEnvelope("service-trips", events.LocationUpdated, events.LocationUpdatedEvent{
		EntityKey:  record.Key.String(),
		Lat:        record.Lat,
		Lon:        record.Lon,
		ObservedAt: record.ObservedAt,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("failed to create location event",
			zap.String("entity_key", record.Key.String()),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.Publish(ctx, events.TopicTrackingEvents, record.Key.String(), evt); err != nil {
		s.logger.Error("failed to publish location event",
			zap.String("entity_key", record.Key.String()),
			zap.Error(err),
		)
	}
}
