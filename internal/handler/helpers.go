package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/pkg/response"
)

// decodeOptionalJSON decodes the request body into v, leaving v untouched
// when the body is empty or the literal null.
func decodeOptionalJSON(c *gin.Context, v interface{}) error {
	_, err := decodeNullableJSON(c, v)
	return err
}

// decodeNullableJSON is decodeOptionalJSON that also reports whether a value was present.
func decodeNullableJSON(c *gin.Context, v interface{}) (bool, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return false, fmt.Errorf("read body: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("invalid JSON body: %w", err)
	}
	return true, nil
}

// sessionID parses the :id path parameter, writing a 400 on failure.
func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid session ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseLatLng parses "lat,lng".
func parseLatLng(raw string) (location.Coordinates, error) {
	latRaw, lngRaw, ok := strings.Cut(raw, ",")
	if !ok {
		return location.Coordinates{}, fmt.Errorf("expected lat,lng but got %q", raw)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latRaw), 64)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("invalid latitude %q", latRaw)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngRaw), 64)
	if err != nil {
		return location.Coordinates{}, fmt.Errorf("invalid longitude %q", lngRaw)
	}
	coords := location.Coordinates{Lat: lat, Lng: lng}
	return coords, coords.Validate()
}
