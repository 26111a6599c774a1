// Package geocoding resolves place names and coordinates against a Nominatim server.
package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/monastery360/service-travel/internal/domain/location"
)

const userAgent = "monastery360-travel/1.0"

// Client calls the Nominatim search and reverse endpoints.
type Client struct {
	http *resty.Client
}

// NewClient creates a Client bound to baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetHeader("Accept-Language", "en"),
	}
}

type place struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (p place) toLocation() (location.Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return location.Location{}, fmt.Errorf("parse lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return location.Location{}, fmt.Errorf("parse lon %q: %w", p.Lon, err)
	}
	loc := location.Location{Name: p.DisplayName, Lat: lat, Lng: lng}
	if err := loc.Validate(); err != nil {
		return location.Location{}, err
	}
	return loc, nil
}

// Search returns up to limit matches in service relevance order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]location.Location, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format":         "jsonv2",
			"q":              query,
			"limit":          strconv.Itoa(limit),
			"addressdetails": "0",
		}).
		Get("/search")
	if err != nil {
		return nil, fmt.Errorf("geocoding search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("geocoding search: unexpected status %d", resp.StatusCode())
	}

	var places []place
	if err := json.Unmarshal(resp.Body(), &places); err != nil {
		return nil, fmt.Errorf("decode geocoding search: %w", err)
	}

	out := make([]location.Location, 0, len(places))
	for _, p := range places {
		loc, err := p.toLocation()
		if err != nil {
			return nil, fmt.Errorf("decode geocoding search: %w", err)
		}
		out = append(out, loc)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// Reverse returns the display name for a coordinate.
func (c *Client) Reverse(ctx context.Context, at location.Coordinates) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"format": "jsonv2",
			"lat":    strconv.FormatFloat(at.Lat, 'f', -1, 64),
			"lon":    strconv.FormatFloat(at.Lng, 'f', -1, 64),
		}).
		Get("/reverse")
	if err != nil {
		return "", fmt.Errorf("reverse geocoding: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("reverse geocoding: unexpected status %d", resp.StatusCode())
	}

	var p place
	if err := json.Unmarshal(resp.Body(), &p); err != nil {
		return "", fmt.Errorf("decode reverse geocoding: %w", err)
	}
	name := strings.TrimSpace(p.DisplayName)
	if name == "" {
		return "", fmt.Errorf("reverse geocoding: empty display name")
	}
	return name, nil
}
