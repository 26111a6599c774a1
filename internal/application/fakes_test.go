package application_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/location"
)

// fakeClock fires timers synchronously from Advance.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) bookingDomain.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward, firing due timers in order.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.stopped || t.fired || t.at.After(target) {
				continue
			}
			if next == nil || t.at.Before(next.at) {
				next = t
			}
		}
		if next == nil {
			break
		}
		next.fired = true
		c.now = next.at
		c.mu.Unlock()
		next.f()
		c.mu.Lock()
	}
	c.now = target
	c.mu.Unlock()
}

type fakePlanner struct {
	routeFn func(ctx context.Context, from, to location.Location) bookingDomain.Route
	calls   int
}

func (f *fakePlanner) Route(ctx context.Context, from, to location.Location) bookingDomain.Route {
	f.calls++
	return f.routeFn(ctx, from, to)
}

type confirmedBooking struct {
	sessionID uuid.UUID
	rec       bookingDomain.Record
}

type fakeEvents struct {
	mu        sync.Mutex
	confirmed []confirmedBooking
}

func (f *fakeEvents) BookingConfirmed(_ context.Context, sessionID uuid.UUID, rec bookingDomain.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmed = append(f.confirmed, confirmedBooking{sessionID: sessionID, rec: rec})
}

type fakeGeocoder struct {
	searchFn  func(ctx context.Context, query string, limit int) ([]location.Location, error)
	reverseFn func(ctx context.Context, at location.Coordinates) (string, error)
	searches  int
}

func (f *fakeGeocoder) Search(ctx context.Context, query string, limit int) ([]location.Location, error) {
	f.searches++
	return f.searchFn(ctx, query, limit)
}

func (f *fakeGeocoder) Reverse(ctx context.Context, at location.Coordinates) (string, error) {
	return f.reverseFn(ctx, at)
}

type fakeFetcher struct {
	routeFn func(ctx context.Context, from, to bookingDomain.LatLng) (bookingDomain.Route, error)
}

func (f *fakeFetcher) Route(ctx context.Context, from, to bookingDomain.LatLng) (bookingDomain.Route, error) {
	return f.routeFn(ctx, from, to)
}
