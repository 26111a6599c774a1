package booking

import (
	"errors"

	"github.com/monastery360/service-travel/internal/domain/location"
)

// ErrCannotProceed is returned when the map is opened before both locations are set.
var ErrCannotProceed = errors.New("both source and destination are required")

// Phase is the wizard step derived from a State.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseLocationsSet     Phase = "locations_set"
	PhaseMapOpen          Phase = "map_open"
	PhaseRouteDrawn       Phase = "route_drawn"
	PhaseTransportVisible Phase = "transport_visible"
	PhaseConfirmed        Phase = "confirmed"
)

// State is the booking wizard state. It is a value: every transition
// returns a new State and leaves the receiver untouched.
type State struct {
	source               *location.Location
	destination          *location.Location
	isMapOpen            bool
	isMapMinimized       bool
	showTransportOptions bool
	isRouteDrawn         bool
	selectedTransport    *TransportType
	route                *Route
	history              []Record
	bookingsAtOpen       int
}

// NewState returns the initial idle state.
func NewState() State {
	return State{}
}

// Source returns the departure location, or nil.
func (s State) Source() *location.Location { return copyLocation(s.source) }

// Destination returns the arrival location, or nil.
func (s State) Destination() *location.Location { return copyLocation(s.destination) }

func (s State) IsMapOpen() bool { return s.isMapOpen }

func (s State) IsMapMinimized() bool { return s.isMapMinimized }

func (s State) ShowTransportOptions() bool { return s.showTransportOptions }

func (s State) IsRouteDrawn() bool { return s.isRouteDrawn }

// Route returns the current route, or nil before one is fetched.
func (s State) Route() *Route { return s.route }

// SelectedTransport returns the chosen tier id, or nil.
func (s State) SelectedTransport() *TransportType {
	if s.selectedTransport == nil {
		return nil
	}
	t := *s.selectedTransport
	return &t
}

// History returns the booking records, newest first.
func (s State) History() []Record {
	out := make([]Record, len(s.history))
	copy(out, s.history)
	return out
}

// CanProceed reports whether both locations are set.
func (s State) CanProceed() bool {
	return s.source != nil && s.destination != nil
}

// Phase derives the wizard step. A map session only counts as confirmed once
// a booking was recorded after the map was opened.
func (s State) Phase() Phase {
	switch {
	case !s.CanProceed():
		return PhaseIdle
	case !s.isMapOpen:
		return PhaseLocationsSet
	case s.showTransportOptions && len(s.history) > s.bookingsAtOpen:
		return PhaseConfirmed
	case s.showTransportOptions:
		return PhaseTransportVisible
	case s.isRouteDrawn:
		return PhaseRouteDrawn
	default:
		return PhaseMapOpen
	}
}

// WithSource replaces the source location; nil clears it. A change drops the
// route and, with the map open, rewinds the map session to its start.
func (s State) WithSource(loc *location.Location) State {
	if sameLocation(s.source, loc) {
		return s
	}
	next := s.withoutRoute()
	next.source = copyLocation(loc)
	return next
}

// WithDestination replaces the destination location; nil clears it. A change
// drops the route and, with the map open, rewinds the map session to its start.
func (s State) WithDestination(loc *location.Location) State {
	if sameLocation(s.destination, loc) {
		return s
	}
	next := s.withoutRoute()
	next.destination = copyLocation(loc)
	return next
}

func (s State) withoutRoute() State {
	next := s
	next.route = nil
	if s.isMapOpen {
		next.isMapMinimized = false
		next.isRouteDrawn = false
		next.showTransportOptions = false
		next.bookingsAtOpen = len(s.history)
	}
	return next
}

// OpenMap starts a map session.
func (s State) OpenMap() (State, error) {
	if !s.CanProceed() {
		return s, ErrCannotProceed
	}
	next := s
	next.isMapOpen = true
	next.isMapMinimized = false
	next.isRouteDrawn = false
	next.showTransportOptions = false
	next.route = nil
	next.bookingsAtOpen = len(s.history)
	return next, nil
}

// CloseMap ends the map session, keeping locations and history.
func (s State) CloseMap() State {
	next := s
	next.isMapOpen = false
	next.showTransportOptions = false
	next.selectedTransport = nil
	next.isMapMinimized = false
	next.isRouteDrawn = false
	next.route = nil
	return next
}

// WithRoute stores a fetched route without marking it drawn.
func (s State) WithRoute(r Route) State {
	next := s
	next.route = &r
	return next
}

// RouteDrawn marks the route as rendered, storing it when given.
func (s State) RouteDrawn(r *Route) State {
	next := s
	if r != nil {
		rc := *r
		next.route = &rc
	}
	next.isRouteDrawn = true
	return next
}

// Minimize collapses the map.
func (s State) Minimize() State {
	next := s
	next.isMapMinimized = true
	return next
}

// RevealTransportOptions shows the transport picker.
func (s State) RevealTransportOptions() State {
	next := s
	next.showTransportOptions = true
	return next
}

// ToggleMapSize flips the minimized flag.
func (s State) ToggleMapSize() State {
	next := s
	next.isMapMinimized = !s.isMapMinimized
	return next
}

// SelectTransport records the chosen tier.
func (s State) SelectTransport(id TransportType) State {
	next := s
	next.selectedTransport = &id
	return next
}

// AppendRecord prepends rec to the history.
func (s State) AppendRecord(rec Record) State {
	next := s
	history := make([]Record, 0, len(s.history)+1)
	history = append(history, rec)
	history = append(history, s.history...)
	next.history = history
	return next
}

// Equal reports whether two states are observably the same.
// Routes compare by identity and history by length and head, since
// routes are replaced wholesale and history only grows at the front.
func (s State) Equal(o State) bool {
	if !sameLocation(s.source, o.source) || !sameLocation(s.destination, o.destination) {
		return false
	}
	if s.isMapOpen != o.isMapOpen ||
		s.isMapMinimized != o.isMapMinimized ||
		s.showTransportOptions != o.showTransportOptions ||
		s.isRouteDrawn != o.isRouteDrawn ||
		s.bookingsAtOpen != o.bookingsAtOpen {
		return false
	}
	if (s.selectedTransport == nil) != (o.selectedTransport == nil) {
		return false
	}
	if s.selectedTransport != nil && *s.selectedTransport != *o.selectedTransport {
		return false
	}
	if s.route != o.route {
		return false
	}
	if len(s.history) != len(o.history) {
		return false
	}
	return len(s.history) == 0 || s.history[0].ID() == o.history[0].ID()
}

func copyLocation(loc *location.Location) *location.Location {
	if loc == nil {
		return nil
	}
	c := *loc
	return &c
}

func sameLocation(a, b *location.Location) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
