package booking

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/pkg/domain"
)

// Record is an immutable confirmed booking kept in a session's history.
type Record struct {
	id            string
	source        location.Location
	destination   location.Location
	transportType TransportType
	transportName string
	fare          int64
	bookedAt      time.Time
	status        RecordStatus
}

// NewRecord creates a confirmed Record.
func NewRecord(
	id string,
	source location.Location,
	destination location.Location,
	transportType TransportType,
	transportName string,
	fare int64,
	bookedAt time.Time,
) (Record, error) {
	if id == "" {
		return Record{}, domain.NewValidationError("booking id is required")
	}
	if strings.TrimSpace(string(transportType)) == "" {
		return Record{}, domain.NewValidationError("transport type is required")
	}
	if strings.TrimSpace(transportName) == "" {
		return Record{}, domain.NewValidationError("transport name is required")
	}
	if fare < 0 {
		return Record{}, domain.NewValidationError("fare cannot be negative")
	}
	return Record{
		id:            id,
		source:        source,
		destination:   destination,
		transportType: transportType,
		transportName: transportName,
		fare:          fare,
		bookedAt:      bookedAt,
		status:        StatusConfirmed,
	}, nil
}

// ID returns the record identifier.
func (r Record) ID() string { return r.id }

// Source returns the departure location.
func (r Record) Source() location.Location { return r.source }

// Destination returns the arrival location.
func (r Record) Destination() location.Location { return r.destination }

// TransportType returns the chosen tier id.
func (r Record) TransportType() TransportType { return r.transportType }

// TransportName returns the display name of the chosen tier.
func (r Record) TransportName() string { return r.transportName }

// Fare returns the fare in rupees.
func (r Record) Fare() int64 { return r.fare }

// BookedAt returns the confirmation time.
func (r Record) BookedAt() time.Time { return r.bookedAt }

// Status returns the record status.
func (r Record) Status() RecordStatus { return r.status }

// IDGenerator issues "booking-<unix-millis>" ids that strictly increase,
// even for records created within the same millisecond.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
}

// NewIDGenerator creates an IDGenerator.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{}
}

// Next returns the id for a record booked at now.
func (g *IDGenerator) Next(now time.Time) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := now.UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("booking-%d", ms)
}
