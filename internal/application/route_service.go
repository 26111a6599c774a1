package application

import (
	"context"
	"math"

	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/location"
	"go.uber.org/zap"
)

// RouteFetcher retrieves a driving route between two points.
type RouteFetcher interface {
	Route(ctx context.Context, from, to bookingDomain.LatLng) (bookingDomain.Route, error)
}

// Marker is a labelled map pin.
type Marker struct {
	Role string  `json:"role"`
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// Bounds is the bounding box a map should fit.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// RouteViewDTO is everything a client needs to draw a route.
type RouteViewDTO struct {
	Geometry []bookingDomain.LatLng      `json:"geometry"`
	Metrics  *bookingDomain.RouteMetrics `json:"metrics"`
	Fallback bool                        `json:"fallback"`
	Markers  []Marker                    `json:"markers"`
	Bounds   Bounds                      `json:"bounds"`
}

// RouteService computes routes, degrading to a straight line when routing fails.
type RouteService struct {
	fetcher RouteFetcher
	logger  *zap.Logger
}

// NewRouteService creates a new RouteService.
func NewRouteService(fetcher RouteFetcher, logger *zap.Logger) *RouteService {
	return &RouteService{fetcher: fetcher, logger: logger}
}

// Route returns the driving route, or the straight segment without metrics on any failure.
func (s *RouteService) Route(ctx context.Context, from, to location.Location) bookingDomain.Route {
	a := bookingDomain.LatLng{Lat: from.Lat, Lng: from.Lng}
	b := bookingDomain.LatLng{Lat: to.Lat, Lng: to.Lng}

	route, err := s.fetcher.Route(ctx, a, b)
	if err != nil {
		s.logger.Warn("routing failed, drawing straight line",
			zap.String("from", from.Name),
			zap.String("to", to.Name),
			zap.Error(err),
		)
		return bookingDomain.StraightLine(a, b)
	}
	return route
}

// Plan fetches a route and packages it for rendering.
func (s *RouteService) Plan(ctx context.Context, from, to location.Location) RouteViewDTO {
	return toRouteView(s.Route(ctx, from, to), from, to)
}

func toRouteView(route bookingDomain.Route, from, to location.Location) RouteViewDTO {
	return RouteViewDTO{
		Geometry: route.Geometry,
		Metrics:  route.Metrics,
		Fallback: route.Fallback,
		Markers: []Marker{
			{Role: "source", Name: from.Name, Lat: from.Lat, Lng: from.Lng},
			{Role: "destination", Name: to.Name, Lat: to.Lat, Lng: to.Lng},
		},
		Bounds: boundsOf(route.Geometry, from, to),
	}
}

func boundsOf(geometry []bookingDomain.LatLng, from, to location.Location) Bounds {
	b := Bounds{South: math.Inf(1), West: math.Inf(1), North: math.Inf(-1), East: math.Inf(-1)}
	extend := func(lat, lng float64) {
		b.South = math.Min(b.South, lat)
		b.North = math.Max(b.North, lat)
		b.West = math.Min(b.West, lng)
		b.East = math.Max(b.East, lng)
	}
	extend(from.Lat, from.Lng)
	extend(to.Lat, to.Lng)
	for _, p := range geometry {
		extend(p.Lat, p.Lng)
	}
	return b
}
