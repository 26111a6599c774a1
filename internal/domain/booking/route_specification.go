package booking

import "math"

// LatLng is a single geometry vertex.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// RouteMetrics is the derived distance and drive time of a route.
type RouteMetrics struct {
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin int     `json:"durationMin"`
}

// NewRouteMetrics converts raw routing output into kilometres and whole minutes.
func NewRouteMetrics(distanceMeters, durationSeconds float64) RouteMetrics {
	return RouteMetrics{
		DistanceKm:  distanceMeters / 1000,
		DurationMin: int(math.Round(durationSeconds / 60)),
	}
}

// Route is a value object holding drawable geometry and optional metrics.
// A fallback route is the straight segment between the two endpoints and never has metrics.
type Route struct {
	Geometry []LatLng      `json:"geometry"`
	Metrics  *RouteMetrics `json:"metrics"`
	Fallback bool          `json:"fallback"`
}

// StraightLine builds the fallback route between from and to.
func StraightLine(from, to LatLng) Route {
	return Route{
		Geometry: []LatLng{from, to},
		Metrics:  nil,
		Fallback: true,
	}
}
