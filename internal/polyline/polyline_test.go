package polyline

import (
	"math"
	"testing"

	"courier-route-service/internal/domain"
)

// Reference string and coordinates from the polyline format documentation.
const referenceEncoded = "_p~iF~ps|U_ulLnnqC_mqNvxq`@"

var referencePoints = []domain.Coordinate{
	{Lat: 38.5, Lon: -120.2},
	{Lat: 40.7, Lon: -120.95},
	{Lat: 43.252, Lon: -126.453},
}

func TestDecodeReference(t *testing.T) {
	got := Decode(referenceEncoded)
	if len(got) != len(referencePoints) {
		t.Fatalf("decoded %d points, want %d", len(got), len(referencePoints))
	}
	for i, want := range referencePoints {
		if math.Abs(got[i].Lat-want.Lat) > 1e-5 || math.Abs(got[i].Lon-want.Lon) > 1e-5 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want)
		}
	}
}

func TestDecodeEmpty(t *testing.T) {
	if got := Decode(""); len(got) != 0 {
		t.Fatalf("expected empty sequence, got %d points", len(got))
	}
}

func TestDecodeTruncated(t *testing.T) {
	// Drop the last byte so the final longitude chunk is incomplete; the
	// decoder must stop at the last complete coordinate.
	full := Decode(referenceEncoded)
	truncated := Decode(referenceEncoded[:len(referenceEncoded)-1])
	if len(truncated) != len(full)-1 {
		t.Fatalf("truncated decode returned %d points, want %d", len(truncated), len(full)-1)
	}
}

func TestEncodeReference(t *testing.T) {
	if got := Encode(referencePoints); got != referenceEncoded {
		t.Fatalf("Encode = %q, want %q", got, referenceEncoded)
	}
}

func TestRoundTripNegativeDeltas(t *testing.T) {
	points := []domain.Coordinate{
		{Lat: 8.50, Lon: 81.19},
		{Lat: 8.40, Lon: 81.10},
		{Lat: 8.55, Lon: 81.20},
	}
	got := Decode(Encode(points))
	if len(got) != len(points) {
		t.Fatalf("round trip returned %d points, want %d", len(got), len(points))
	}
	for i, want := range points {
		if math.Abs(got[i].Lat-want.Lat) > 1e-5 || math.Abs(got[i].Lon-want.Lon) > 1e-5 {
			t.Errorf("point %d = %+v, want %+v", i, got[i], want)
		}
	}
}
