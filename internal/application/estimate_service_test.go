package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
	"github.com/guber-mobility/service-trips/internal/domain/trip"
)

type fakeGeocoder struct {
	results map[string]*trip.GeocodeResult
	calls   []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, query string) (*trip.GeocodeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.calls = append(f.calls, query)
	res, ok := f.results[query]
	if !ok {
		return nil, errs.NewNotFoundError("geocode match for " + query)
	}
	return res, nil
}

type fakeRouter struct {
	route *trip.Route
	err   error
	calls int
}

func (f *fakeRouter) Route(ctx context.Context, a, b trip.GeoPoint) (*trip.Route, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.route
	return &cp, nil
}

func newTestEstimateService(geo *fakeGeocoder, router *fakeRouter) *EstimateService {
	return NewEstimateService(geo, router, trip.NewFareCalculator(trip.DefaultFareConfig()), zap.NewNop())
}

func routeGeometry(t *testing.T, points []trip.GeoPoint) string {
	t.Helper()
	encoded, err := trip.EncodePolyline(points, trip.Precision6)
	require.NoError(t, err)
	return encoded
}

func TestEstimate(t *testing.T) {
	pathPoints := []trip.GeoPoint{
		{Latitude: 52.520008, Longitude: 13.404954},
		{Latitude: 52.516275, Longitude: 13.377704},
		{Latitude: 52.514946, Longitude: 13.350111},
	}

	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{
		"Alexanderplatz 1, Berlin": {Point: pathPoints[0], DisplayName: "Alexanderplatz 1"},
		"Brandenburger Tor":        {Point: pathPoints[2], DisplayName: "Brandenburger Tor"},
	}}
	router := &fakeRouter{route: &trip.Route{
		DistanceKm:      2.4,
		DurationMinutes: 11.5,
		EncodedPath:     routeGeometry(t, pathPoints),
	}}
	svc := newTestEstimateService(geo, router)

	est, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "Alexanderplatz 1, Berlin",
		DestinationAddress: "Brandenburger Tor",
		VehicleClass:       "standard",
	})
	require.NoError(t, err)

	assert.Equal(t, pathPoints[0], est.PickupPoint)
	assert.Equal(t, pathPoints[2], est.DestinationPoint)
	assert.Equal(t, 2.4, est.Route.DistanceKm)
	assert.Len(t, est.Route.Points, 3)
	assert.InDelta(t, 8.33, est.Fare.Total, 1e-9)
	assert.Equal(t, 1, router.calls)
	assert.Equal(t, []string{"Alexanderplatz 1, Berlin", "Brandenburger Tor"}, geo.calls)
}

func TestEstimatePickupNotFoundSkipsRouting(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{}}
	router := &fakeRouter{route: &trip.Route{}}
	svc := newTestEstimateService(geo, router)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "nowhere",
		DestinationAddress: "also nowhere",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 0, router.calls)
	// Destination is never resolved either; the pipeline stops at step 1.
	assert.Equal(t, []string{"nowhere"}, geo.calls)
}

func TestEstimateDestinationNotFound(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{
		"here": {Point: trip.GeoPoint{Latitude: 1, Longitude: 2}},
	}}
	router := &fakeRouter{route: &trip.Route{}}
	svc := newTestEstimateService(geo, router)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "here",
		DestinationAddress: "nowhere",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 0, router.calls)
}

func TestEstimateRouteNotFound(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{
		"a": {Point: trip.GeoPoint{Latitude: 1, Longitude: 2}},
		"b": {Point: trip.GeoPoint{Latitude: 3, Longitude: 4}},
	}}
	router := &fakeRouter{err: errs.NewNotFoundError("route")}
	svc := newTestEstimateService(geo, router)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "a",
		DestinationAddress: "b",
	})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, 1, router.calls)
}

func TestEstimateMalformedGeometry(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{
		"a": {Point: trip.GeoPoint{Latitude: 1, Longitude: 2}},
		"b": {Point: trip.GeoPoint{Latitude: 3, Longitude: 4}},
	}}
	// '_' alone is a truncated polyline chunk.
	router := &fakeRouter{route: &trip.Route{DistanceKm: 1, EncodedPath: "_"}}
	svc := newTestEstimateService(geo, router)

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "a",
		DestinationAddress: "b",
	})
	require.Error(t, err)
	assert.True(t, errs.IsDecoding(err))
}

func TestEstimateValidation(t *testing.T) {
	svc := newTestEstimateService(&fakeGeocoder{}, &fakeRouter{route: &trip.Route{}})

	_, err := svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "  ",
		DestinationAddress: "b",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Estimate(context.Background(), EstimateRequest{
		PickupAddress:      "a",
		DestinationAddress: "b",
		VehicleClass:       "suv",
	})
	require.Error(t, err)
	assert.True(t, errs.IsValidation(err))
}

func TestEstimateCancelled(t *testing.T) {
	geo := &fakeGeocoder{results: map[string]*trip.GeocodeResult{}}
	router := &fakeRouter{route: &trip.Route{}}
	svc := newTestEstimateService(geo, router)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Estimate(ctx, EstimateRequest{
		PickupAddress:      "a",
		DestinationAddress: "b",
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, router.calls)
}

func TestDecodePath(t *testing.T) {
	svc := newTestEstimateService(&fakeGeocoder{}, &fakeRouter{})

	points, err := svc.DecodePath("_p~iF~ps|U_ulLnnqC_mqNvxq`@", trip.Precision5)
	require.NoError(t, err)
	assert.Len(t, points, 3)
}
