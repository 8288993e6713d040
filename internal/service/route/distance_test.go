package route

import (
	"math"
	"testing"
)

func TestHaversineDistance_KnownPair(t *testing.T) {
	// Obelisco to Plaza de Mayo, roughly 1km.
	d := HaversineDistance(-34.6037, -58.3816, -34.6083, -58.3712)
	if d < 900 || d > 1200 {
		t.Fatalf("distance = %.0fm, want roughly 1km", d)
	}
}

func TestHaversineDistance_SamePoint(t *testing.T) {
	if d := HaversineDistance(10, 20, 10, 20); d != 0 {
		t.Fatalf("distance between identical points = %f, want 0", d)
	}
}

func TestPathDistance(t *testing.T) {
	if d := pathDistance(nil); d != 0 {
		t.Fatalf("empty path distance = %f", d)
	}
	if d := pathDistance([]LatLng{{Latitude: 1, Longitude: 1}}); d != 0 {
		t.Fatalf("single point distance = %f", d)
	}

	path := []LatLng{
		{Latitude: -34.6037, Longitude: -58.3816},
		{Latitude: -34.6083, Longitude: -58.3712},
		{Latitude: -34.6037, Longitude: -58.3816},
	}
	oneLeg := HaversineDistance(-34.6037, -58.3816, -34.6083, -58.3712)
	if d := pathDistance(path); math.Abs(d-2*oneLeg) > 1e-6 {
		t.Fatalf("round trip = %f, want %f", d, 2*oneLeg)
	}
}
