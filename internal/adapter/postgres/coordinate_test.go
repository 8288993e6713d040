package postgres

import (
	"strconv"
	"testing"
)

func TestFormatCoordinateRoundTrips(t *testing.T) {
	values := []float64{
		-34.60371234567891,
		-58.3815999,
		49.87308,
		0,
		-90,
		180,
	}

	for _, v := range values {
		s := formatCoordinate(v)
		back, err := strconv.ParseFloat(s, 64)
		if err != nil {
			t.Fatalf("formatCoordinate(%v) = %q, not parseable: %v", v, s, err)
		}
		if back != v {
			t.Errorf("formatCoordinate(%v) = %q, parses back to %v", v, s, back)
		}
	}
}

func TestFormatCoordinateKeepsFullPrecision(t *testing.T) {
	// %f-style rendering would truncate this to 6 decimals.
	got := formatCoordinate(-34.60371234567891)
	want := "-34.60371234567891"
	if got != want {
		t.Errorf("formatCoordinate() = %q, want %q", got, want)
	}
}
