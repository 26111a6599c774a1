package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/internal/export"
	"github.com/monastery360/service-travel/pkg/domain"
	"go.uber.org/zap"
)

const (
	// MinimizeDelay is how long after the route is drawn the map collapses.
	MinimizeDelay = 1000 * time.Millisecond

	// RevealDelay is how long after the route is drawn the transport picker appears.
	RevealDelay = 1300 * time.Millisecond
)

// RoutePlanner computes the route between two locations and never fails.
type RoutePlanner interface {
	Route(ctx context.Context, from, to location.Location) bookingDomain.Route
}

// BookingEvents receives confirmed bookings.
type BookingEvents interface {
	BookingConfirmed(ctx context.Context, sessionID uuid.UUID, rec bookingDomain.Record)
}

// RecordDTO is the response representation of a booking record.
type RecordDTO struct {
	ID             string            `json:"id"`
	SourceLocation location.Location `json:"sourceLocation"`
	Destination    location.Location `json:"destination"`
	TransportType  string            `json:"transportType"`
	TransportName  string            `json:"transportName"`
	Fare           int64             `json:"fare"`
	BookedAt       time.Time         `json:"bookedAt"`
	Status         string            `json:"status"`
}

// SessionDTO is the response representation of a wizard session.
type SessionDTO struct {
	ID                   uuid.UUID            `json:"id"`
	Phase                string               `json:"phase"`
	SourceLocation       *location.Location   `json:"sourceLocation"`
	Destination          *location.Location   `json:"destination"`
	CanProceed           bool                 `json:"canProceed"`
	IsMapOpen            bool                 `json:"isMapOpen"`
	IsMapMinimized       bool                 `json:"isMapMinimized"`
	ShowTransportOptions bool                 `json:"showTransportOptions"`
	IsRouteDrawn         bool                 `json:"isRouteDrawn"`
	SelectedTransport    *string              `json:"selectedTransport"`
	Route                *bookingDomain.Route `json:"route"`
	BookingHistory       []RecordDTO          `json:"bookingHistory"`
	CreatedAt            time.Time            `json:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt"`
}

// AddBookingRequest holds the data needed to record a booking.
// Name and fare default to the tier's name and the computed fare.
type AddBookingRequest struct {
	TransportType string  `json:"transportType" binding:"required"`
	TransportName *string `json:"transportName"`
	Fare          *int64  `json:"fare"`
}

// FareQuoteDTO is the fare of one tier for a distance.
type FareQuoteDTO struct {
	bookingDomain.TransportTier
	DistanceKm float64 `json:"distanceKm"`
	Fare       int64   `json:"fare"`
}

// SessionStatsDTO summarises the live sessions.
type SessionStatsDTO struct {
	ActiveSessions int `json:"activeSessions"`
}

// TravelService is the application service orchestrating the booking wizard.
type TravelService struct {
	sessions bookingDomain.SessionRepository
	routes   RoutePlanner
	pricing  bookingDomain.PricingStrategy
	ids      *bookingDomain.IDGenerator
	events   BookingEvents
	clock    Clock
	logger   *zap.Logger
}

// NewTravelService creates a new TravelService. events may be nil.
func NewTravelService(
	sessions bookingDomain.SessionRepository,
	routes RoutePlanner,
	pricing bookingDomain.PricingStrategy,
	events BookingEvents,
	clock Clock,
	logger *zap.Logger,
) *TravelService {
	if clock == nil {
		clock = SystemClock()
	}
	return &TravelService{
		sessions: sessions,
		routes:   routes,
		pricing:  pricing,
		ids:      bookingDomain.NewIDGenerator(),
		events:   events,
		clock:    clock,
		logger:   logger,
	}
}

// CreateSession starts a new idle wizard session.
func (s *TravelService) CreateSession(ctx context.Context) (*SessionDTO, error) {
	session := bookingDomain.NewSession(s.clock.Now().UTC())
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.logger.Debug("session created", zap.String("session_id", session.ID().String()))
	return toSessionDTO(session), nil
}

// GetSession returns the current state of a session.
func (s *TravelService) GetSession(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Touch(s.clock.Now().UTC())
	return toSessionDTO(session), nil
}

// DeleteSession discards a session and its pending timers.
func (s *TravelService) DeleteSession(ctx context.Context, id uuid.UUID) error {
	return s.sessions.Delete(ctx, id)
}

// SetSource replaces the source location; nil clears it. With the map open
// the route is fetched again.
func (s *TravelService) SetSource(ctx context.Context, id uuid.UUID, loc *location.Location) (*SessionDTO, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	return s.changeLocation(ctx, id, func(st bookingDomain.State) bookingDomain.State {
		return st.WithSource(loc)
	})
}

// SetDestination replaces the destination location; nil clears it. With the
// map open the route is fetched again.
func (s *TravelService) SetDestination(ctx context.Context, id uuid.UUID, loc *location.Location) (*SessionDTO, error) {
	if err := validateLocation(loc); err != nil {
		return nil, err
	}
	return s.changeLocation(ctx, id, func(st bookingDomain.State) bookingDomain.State {
		return st.WithDestination(loc)
	})
}

func (s *TravelService) changeLocation(ctx context.Context, id uuid.UUID, change func(bookingDomain.State) bookingDomain.State) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	st, epoch, restarted, err := session.ApplyLocationChange(s.clock.Now().UTC(), func(st bookingDomain.State) (bookingDomain.State, error) {
		return change(st), nil
	})
	if err != nil {
		return nil, err
	}
	if restarted && st.CanProceed() {
		if err := s.drawRoute(ctx, session, st, epoch); err != nil {
			return nil, err
		}
	}
	return toSessionDTO(session), nil
}

// OpenMap opens the map, fetches the route and, once a real route is drawn,
// schedules the minimize and reveal transitions. Pending timers of a previous
// map session are cancelled. A route that arrives after the map was closed or
// reopened is dropped.
func (s *TravelService) OpenMap(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	st, epoch, err := session.StartMapEpoch(s.clock.Now().UTC(), func(st bookingDomain.State) (bookingDomain.State, error) {
		return st.OpenMap()
	})
	if err != nil {
		return nil, mapStateError(err)
	}
	if err := s.drawRoute(ctx, session, st, epoch); err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

// drawRoute fetches the route for st outside the session lock and stores it
// unless the map session moved on in the meantime.
func (s *TravelService) drawRoute(ctx context.Context, session *bookingDomain.Session, st bookingDomain.State, epoch uint64) error {
	route := s.routes.Route(ctx, *st.Source(), *st.Destination())

	_, applied, err := session.ApplyInEpoch(epoch, s.clock.Now().UTC(), func(cur bookingDomain.State) (bookingDomain.State, error) {
		if route.Fallback || route.Metrics == nil {
			return cur.WithRoute(route), nil
		}
		return cur.RouteDrawn(&route), nil
	})
	if err != nil {
		return err
	}
	if !applied {
		s.logger.Debug("dropping stale route response",
			zap.String("session_id", session.ID().String()),
			zap.Uint64("epoch", epoch),
		)
	} else if !route.Fallback && route.Metrics != nil {
		s.scheduleReveal(session, epoch)
	}
	return nil
}

// CloseMap closes the map and cancels pending timers.
func (s *TravelService) CloseMap(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, _, err := session.StartMapEpoch(s.clock.Now().UTC(), func(st bookingDomain.State) (bookingDomain.State, error) {
		return st.CloseMap(), nil
	}); err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

// ToggleMapSize flips the minimized flag. Pending timers stay scheduled.
func (s *TravelService) ToggleMapSize(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	return s.apply(ctx, id, func(st bookingDomain.State) (bookingDomain.State, error) {
		return st.ToggleMapSize(), nil
	})
}

// OnRouteDrawn marks the route as rendered by the client and schedules the
// minimize and reveal transitions relative to now.
func (s *TravelService) OnRouteDrawn(ctx context.Context, id uuid.UUID) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, epoch, _ := session.Snapshot()
	_, applied, err := session.ApplyInEpoch(epoch, s.clock.Now().UTC(), func(st bookingDomain.State) (bookingDomain.State, error) {
		if !st.IsMapOpen() {
			return st, domain.NewInvalidStateError(string(st.Phase()), string(bookingDomain.PhaseRouteDrawn))
		}
		return st.RouteDrawn(nil), nil
	})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.NewConflictError("map session changed, retry")
	}
	s.scheduleReveal(session, epoch)
	return toSessionDTO(session), nil
}

// SelectTransport records the chosen transport tier.
func (s *TravelService) SelectTransport(ctx context.Context, id uuid.UUID, transportType string) (*SessionDTO, error) {
	tier, ok := bookingDomain.FindTier(bookingDomain.TransportType(transportType))
	if !ok {
		return nil, domain.NewValidationError("unknown transport type: " + transportType)
	}
	return s.apply(ctx, id, func(st bookingDomain.State) (bookingDomain.State, error) {
		return st.SelectTransport(tier.ID), nil
	})
}

// AddBookingRecord confirms a booking between the session's locations and
// prepends it to the history.
func (s *TravelService) AddBookingRecord(ctx context.Context, id uuid.UUID, req AddBookingRequest) (*RecordDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	tier, ok := bookingDomain.FindTier(bookingDomain.TransportType(req.TransportType))
	if !ok {
		return nil, domain.NewValidationError("unknown transport type: " + req.TransportType)
	}

	now := s.clock.Now().UTC()
	var rec bookingDomain.Record
	_, err = session.Apply(now, func(st bookingDomain.State) (bookingDomain.State, error) {
		if !st.CanProceed() {
			return st, mapStateError(bookingDomain.ErrCannotProceed)
		}
		src, dst := *st.Source(), *st.Destination()

		name := tier.Name
		if req.TransportName != nil {
			name = *req.TransportName
		}

		var fare int64
		if req.Fare != nil {
			fare = *req.Fare
		} else {
			f, err := s.pricing.Calculate(bookingDomain.PricingParams{
				DistanceKm: tripDistanceKm(st, src, dst),
				Tier:       tier,
			})
			if err != nil {
				return st, domain.NewValidationError("pricing error: " + err.Error())
			}
			fare = f
		}

		r, err := bookingDomain.NewRecord(s.ids.Next(now), src, dst, tier.ID, name, fare, now)
		if err != nil {
			return st, err
		}
		rec = r
		return st.AppendRecord(r), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking confirmed",
		zap.String("session_id", id.String()),
		zap.String("booking_id", rec.ID()),
		zap.String("transport", string(rec.TransportType())),
		zap.Int64("fare", rec.Fare()),
	)
	if s.events != nil {
		s.events.BookingConfirmed(ctx, id, rec)
	}

	dto := toRecordDTO(rec)
	return &dto, nil
}

// ListBookings returns the session's booking history, newest first.
func (s *TravelService) ListBookings(ctx context.Context, id uuid.UUID) ([]RecordDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecordDTOs(session.State().History()), nil
}

// BookingReceipt renders a PDF receipt for one record of the session.
func (s *TravelService) BookingReceipt(ctx context.Context, id uuid.UUID, bookingID string) ([]byte, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, rec := range session.State().History() {
		if rec.ID() == bookingID {
			return export.BookingReceipt(rec, nil)
		}
	}
	return nil, domain.NewNotFoundError("Booking", bookingID)
}

// Transports returns the transport catalog.
func (s *TravelService) Transports() []bookingDomain.TransportTier {
	return bookingDomain.Tiers()
}

// Quote prices every tier for distanceKm.
func (s *TravelService) Quote(distanceKm float64) ([]FareQuoteDTO, error) {
	tiers := bookingDomain.Tiers()
	quotes := make([]FareQuoteDTO, 0, len(tiers))
	for _, tier := range tiers {
		fare, err := s.pricing.Calculate(bookingDomain.PricingParams{DistanceKm: distanceKm, Tier: tier})
		if err != nil {
			return nil, domain.NewValidationError("pricing error: " + err.Error())
		}
		quotes = append(quotes, FareQuoteDTO{TransportTier: tier, DistanceKm: distanceKm, Fare: fare})
	}
	return quotes, nil
}

// SweepIdle removes sessions inactive for longer than ttl.
func (s *TravelService) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	n, err := s.sessions.DeleteIdle(ctx, s.clock.Now().UTC().Add(-ttl))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.logger.Info("idle sessions removed", zap.Int("count", n))
	}
	return n, nil
}

// Stats reports how many sessions are held in memory.
func (s *TravelService) Stats(ctx context.Context) (*SessionStatsDTO, error) {
	n, err := s.sessions.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &SessionStatsDTO{ActiveSessions: n}, nil
}

// RunJanitor sweeps idle sessions every interval until ctx is cancelled.
func (s *TravelService) RunJanitor(ctx context.Context, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.SweepIdle(ctx, ttl); err != nil {
				s.logger.Error("session sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *TravelService) apply(ctx context.Context, id uuid.UUID, fn func(bookingDomain.State) (bookingDomain.State, error)) (*SessionDTO, error) {
	session, err := s.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := session.Apply(s.clock.Now().UTC(), fn); err != nil {
		return nil, err
	}
	return toSessionDTO(session), nil
}

// scheduleReveal arms the minimize and reveal timers for one map session.
// Both delays count from this call.
func (s *TravelService) scheduleReveal(session *bookingDomain.Session, epoch uint64) {
	fire := func(name string, transition func(bookingDomain.State) bookingDomain.State) func() {
		return func() {
			_, applied, _ := session.ApplyInEpoch(epoch, s.clock.Now().UTC(), func(st bookingDomain.State) (bookingDomain.State, error) {
				return transition(st), nil
			})
			if !applied {
				s.logger.Debug("stale map timer ignored",
					zap.String("session_id", session.ID().String()),
					zap.String("timer", name),
				)
			}
		}
	}

	after := func(d time.Duration) func(func()) bookingDomain.Timer {
		return func(f func()) bookingDomain.Timer { return s.clock.AfterFunc(d, f) }
	}
	session.Schedule(epoch, after(MinimizeDelay), fire("minimize", bookingDomain.State.Minimize))
	session.Schedule(epoch, after(RevealDelay), fire("reveal", bookingDomain.State.RevealTransportOptions))
}

// tripDistanceKm prefers routed metrics and falls back to the great-circle distance.
func tripDistanceKm(st bookingDomain.State, src, dst location.Location) float64 {
	if r := st.Route(); r != nil && r.Metrics != nil {
		return r.Metrics.DistanceKm
	}
	return location.HaversineKm(src.Coordinates(), dst.Coordinates())
}

func validateLocation(loc *location.Location) error {
	if loc == nil {
		return nil
	}
	if err := loc.Validate(); err != nil {
		return domain.NewValidationError(err.Error())
	}
	return nil
}

func mapStateError(err error) error {
	if errors.Is(err, bookingDomain.ErrCannotProceed) {
		return &domain.AppError{Code: domain.CodeValidation, Message: err.Error(), Err: err}
	}
	return err
}

func toSessionDTO(session *bookingDomain.Session) *SessionDTO {
	st, _, updatedAt := session.Snapshot()

	var selected *string
	if t := st.SelectedTransport(); t != nil {
		v := string(*t)
		selected = &v
	}
	return &SessionDTO{
		ID:                   session.ID(),
		Phase:                string(st.Phase()),
		SourceLocation:       st.Source(),
		Destination:          st.Destination(),
		CanProceed:           st.CanProceed(),
		IsMapOpen:            st.IsMapOpen(),
		IsMapMinimized:       st.IsMapMinimized(),
		ShowTransportOptions: st.ShowTransportOptions(),
		IsRouteDrawn:         st.IsRouteDrawn(),
		SelectedTransport:    selected,
		Route:                st.Route(),
		BookingHistory:       toRecordDTOs(st.History()),
		CreatedAt:            session.CreatedAt(),
		UpdatedAt:            updatedAt,
	}
}

func toRecordDTO(rec bookingDomain.Record) RecordDTO {
	return RecordDTO{
		ID:             rec.ID(),
		SourceLocation: rec.Source(),
		Destination:    rec.Destination(),
		TransportType:  string(rec.TransportType()),
		TransportName:  rec.TransportName(),
		Fare:           rec.Fare(),
		BookedAt:       rec.BookedAt(),
		Status:         rec.Status().String(),
	}
}

func toRecordDTOs(recs []bookingDomain.Record) []RecordDTO {
	out := make([]RecordDTO, len(recs))
	for i, r := range recs {
		out[i] = toRecordDTO(r)
	}
	return out
}
