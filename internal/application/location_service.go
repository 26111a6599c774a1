package application

import (
	"context"
	"strings"

	"github.com/monastery360/service-travel/internal/domain/location"
	"go.uber.org/zap"
)

// MaxSuggestions caps the number of resolved locations returned per query.
const MaxSuggestions = 6

// Geocoder resolves names to places and coordinates to names.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]location.Location, error)
	Reverse(ctx context.Context, at location.Coordinates) (string, error)
}

// LocationService resolves user input into locations, falling back to the
// built-in place table whenever the geocoder is unavailable.
type LocationService struct {
	geocoder Geocoder
	logger   *zap.Logger
}

// NewLocationService creates a new LocationService.
func NewLocationService(geocoder Geocoder, logger *zap.Logger) *LocationService {
	return &LocationService{geocoder: geocoder, logger: logger}
}

// Resolve returns up to MaxSuggestions matches for query. It never fails:
// a blank query yields nothing and geocoder errors yield fallback matches.
func (s *LocationService) Resolve(ctx context.Context, query string) []location.Location {
	q := strings.TrimSpace(query)
	if q == "" {
		return []location.Location{}
	}

	results, err := s.geocoder.Search(ctx, q, MaxSuggestions)
	if err != nil {
		s.logger.Warn("geocoding failed, using fallback locations",
			zap.String("query", q),
			zap.Error(err),
		)
		return location.MatchFallbacks(q)
	}
	if len(results) > MaxSuggestions {
		results = results[:MaxSuggestions]
	}
	return results
}

// CurrentPosition turns a device position into a Location. A nil position
// means the device denied or timed out, and yields the default location.
func (s *LocationService) CurrentPosition(ctx context.Context, at *location.Coordinates) location.Location {
	if at == nil {
		return location.Default()
	}

	name, err := s.geocoder.Reverse(ctx, *at)
	if err != nil {
		s.logger.Debug("reverse geocoding failed",
			zap.Float64("lat", at.Lat),
			zap.Float64("lng", at.Lng),
			zap.Error(err),
		)
		name = location.CurrentLocationName
	}
	return location.Location{Name: name, Lat: at.Lat, Lng: at.Lng}
}
