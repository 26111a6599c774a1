package export

import (
	"fmt"

	"github.com/monastery360/service-travel/internal/domain/monastery"
	"github.com/tkrajina/gpxgo/gpx"
)

// RouteName is the track name of the monastery GPX export.
const RouteName = "Monastery Route"

// MonasteriesGPX renders the monasteries as GPX 1.1 waypoints plus one track visiting them in order.
func MonasteriesGPX(monasteries []monastery.Monastery) ([]byte, error) {
	doc := gpx.GPX{Creator: "Monastery360"}

	segment := gpx.GPXTrackSegment{}
	for _, m := range monasteries {
		pt := gpx.Point{Latitude: m.Lat, Longitude: m.Lng}
		doc.Waypoints = append(doc.Waypoints, gpx.GPXPoint{
			Point:       pt,
			Name:        m.Name,
			Description: m.Description,
		})
		segment.Points = append(segment.Points, gpx.GPXPoint{Point: pt})
	}
	doc.Tracks = []gpx.GPXTrack{{
		Name:     RouteName,
		Segments: []gpx.GPXTrackSegment{segment},
	}}

	out, err := doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return nil, fmt.Errorf("render gpx: %w", err)
	}
	return out, nil
}
