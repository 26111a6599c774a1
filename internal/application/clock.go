package application

import (
	"time"

	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
)

// Clock supplies the current time and delayed callbacks.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) bookingDomain.Timer
}

type systemClock struct{}

// SystemClock is the wall clock.
func SystemClock() Clock { return systemClock{} }

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) bookingDomain.Timer {
	return time.AfterFunc(d, f)
}
