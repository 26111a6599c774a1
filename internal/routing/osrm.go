// Package routing fetches driving routes from an OSRM server.
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/monastery360/service-travel/internal/domain/booking"
)

// ErrNoRoute is returned when OSRM answers without any route.
var ErrNoRoute = errors.New("no route found")

// Client calls the OSRM route service.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client bound to baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// Route returns the driving route from source to destination with metrics.
func (c *Client) Route(ctx context.Context, from, to booking.LatLng) (booking.Route, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetRawPathParams(map[string]string{
			"coords": coord(from) + ";" + coord(to),
		}).
		SetQueryParams(map[string]string{
			"overview":     "full",
			"geometries":   "geojson",
			"alternatives": "false",
			"steps":        "false",
		}).
		Get("/route/v1/driving/{coords}")
	if err != nil {
		return booking.Route{}, fmt.Errorf("routing request: %w", err)
	}
	if resp.IsError() {
		return booking.Route{}, fmt.Errorf("routing request: unexpected status %d", resp.StatusCode())
	}

	var body routeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return booking.Route{}, fmt.Errorf("decode route: %w", err)
	}
	if len(body.Routes) == 0 {
		return booking.Route{}, ErrNoRoute
	}

	best := body.Routes[0]
	geometry := make([]booking.LatLng, 0, len(best.Geometry.Coordinates))
	for _, pt := range best.Geometry.Coordinates {
		if len(pt) < 2 {
			return booking.Route{}, fmt.Errorf("decode route: malformed coordinate %v", pt)
		}
		geometry = append(geometry, booking.LatLng{Lat: pt[1], Lng: pt[0]})
	}
	metrics := booking.NewRouteMetrics(best.Distance, best.Duration)

	return booking.Route{
		Geometry: geometry,
		Metrics:  &metrics,
		Fallback: false,
	}, nil
}

func coord(p booking.LatLng) string {
	return strconv.FormatFloat(p.Lng, 'f', -1, 64) + "," + strconv.FormatFloat(p.Lat, 'f', -1, 64)
}
