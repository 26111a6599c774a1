// Package location holds the Location value object and the built-in
// fallback table used when geocoding is unavailable.
package location

import (
	"fmt"
	"math"
	"strings"
)

// CurrentLocationName labels a device position whose reverse lookup failed.
const CurrentLocationName = "Current Location"

// Location is an immutable named coordinate.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Coordinates is a bare lat/lng pair reported by a device.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate checks that the coordinates are on the globe.
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) {
		return fmt.Errorf("coordinates must be numbers")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", c.Lng)
	}
	return nil
}

// Coordinates returns the location's position.
func (l Location) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Lng: l.Lng}
}

// Validate checks the name and coordinates.
func (l Location) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return fmt.Errorf("location name is required")
	}
	return l.Coordinates().Validate()
}

// Equal compares by value.
func (l Location) Equal(o Location) bool {
	return l.Name == o.Name && l.Lat == o.Lat && l.Lng == o.Lng
}

// fallbacks are the known Sikkim places served when geocoding fails.
var fallbacks = []Location{
	{Name: "Gangtok", Lat: 27.3389, Lng: 88.6065},
	{Name: "Pelling", Lat: 27.2152, Lng: 88.2426},
	{Name: "Namchi", Lat: 27.1663, Lng: 88.3639},
	{Name: "Yuksom", Lat: 27.3628, Lng: 88.2119},
	{Name: "Rumtek Monastery", Lat: 27.3019, Lng: 88.6411},
	{Name: "Pemayangtse Monastery", Lat: 27.2152, Lng: 88.2426},
	{Name: "Tashiding Monastery", Lat: 27.3333, Lng: 88.2667},
}

// Fallbacks returns a copy of the fallback table.
func Fallbacks() []Location {
	out := make([]Location, len(fallbacks))
	copy(out, fallbacks)
	return out
}

// Default is the position used when the device denies geolocation.
func Default() Location {
	return fallbacks[0]
}

// MatchFallbacks filters the fallback table by case-insensitive substring.
func MatchFallbacks(query string) []Location {
	q := strings.ToLower(query)
	out := make([]Location, 0, len(fallbacks))
	for _, loc := range fallbacks {
		if strings.Contains(strings.ToLower(loc.Name), q) {
			out = append(out, loc)
		}
	}
	return out
}

// HaversineKm returns the great-circle distance between a and b.
func HaversineKm(a, b Coordinates) float64 {
	const earthRadiusKm = 6371.0

	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
