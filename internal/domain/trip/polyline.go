package trip

import (
	"fmt"
	"math"
	"strings"

	"github.com/guber-mobility/service-trips/internal/domain/errs"
)

// Polyline precisions supported by the codec. Generic encoded polylines use
// 1e-5 degree units; OSRM "polyline6" geometry uses 1e-6.
const (
	Precision5 = 5
	Precision6 = 6
)

func validatePrecision(precision int) error {
	if precision != Precision5 && precision != Precision6 {
		return errs.NewValidationError(fmt.Sprintf("precision must be 5 or 6, got %d", precision))
	}
	return nil
}

// DecodePolyline decodes a delta-compressed polyline string into an ordered
// list of points at the given precision. Empty or whitespace-only input
// yields an empty list. A truncated chunk yields a DecodingError.
func DecodePolyline(encoded string, precision int) ([]GeoPoint, error) {
	if err := validatePrecision(precision); err != nil {
		return nil, err
	}

	encoded = strings.TrimSpace(encoded)
	points := []GeoPoint{}
	if encoded == "" {
		return points, nil
	}

	factor := math.Pow10(precision)
	var lat, lng int64

	for i := 0; i < len(encoded); {
		dLat, next, err := decodeDelta(encoded, i)
		if err != nil {
			return nil, err
		}
		lat += dLat

		dLng, next, err := decodeDelta(encoded, next)
		if err != nil {
			return nil, err
		}
		lng += dLng

		i = next
		points = append(points, GeoPoint{
			Latitude:  float64(lat) / factor,
			Longitude: float64(lng) / factor,
		})
	}

	return points, nil
}

// decodeDelta reads one varint-encoded signed delta starting at index i.
// Each byte carries 5 payload bits after subtracting the fixed offset of 63;
// the 0x20 bit marks continuation. Chunks are reassembled little-endian and
// un-zig-zagged.
func decodeDelta(encoded string, i int) (int64, int, error) {
	var accum uint64
	var shift uint
	for {
		if i >= len(encoded) {
			return 0, 0, errs.NewDecodingError("polyline ends mid-chunk")
		}
		b := int(encoded[i]) - 63
		if b < 0 {
			return 0, 0, errs.NewDecodingError(fmt.Sprintf("invalid polyline byte %q at index %d", encoded[i], i))
		}
		i++
		accum |= uint64(b&0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	delta := int64(accum >> 1)
	if accum&1 != 0 {
		delta = ^delta
	}
	return delta, i, nil
}

// EncodePolyline encodes points into a polyline string at the given
// precision. It is the inverse of DecodePolyline up to coordinate rounding
// at that precision.
func EncodePolyline(points []GeoPoint, precision int) (string, error) {
	if err := validatePrecision(precision); err != nil {
		return "", err
	}

	factor := math.Pow10(precision)
	var sb strings.Builder
	var prevLat, prevLng int64

	for _, p := range points {
		lat := int64(math.Round(p.Latitude * factor))
		lng := int64(math.Round(p.Longitude * factor))
		encodeDelta(&sb, lat-prevLat)
		encodeDelta(&sb, lng-prevLng)
		prevLat, prevLng = lat, lng
	}

	return sb.String(), nil
}

func encodeDelta(sb *strings.Builder, delta int64) {
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte(0x20|(v&0x1f)) + 63)
		v >>= 5
	}
	sb.WriteByte(byte(v) + 63)
}
