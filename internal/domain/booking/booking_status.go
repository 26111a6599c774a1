package booking

// RecordStatus represents the lifecycle state of a booking record.
type RecordStatus string

const (
	StatusConfirmed RecordStatus = "confirmed"
	StatusCompleted RecordStatus = "completed"
	StatusCancelled RecordStatus = "cancelled"
)

// validTransitions defines the allowed record status transitions.
// Records are created confirmed; nothing drives them further yet.
var validTransitions = map[RecordStatus][]RecordStatus{
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s RecordStatus) CanTransitionTo(target RecordStatus) bool {
	for _, t := range validTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// String returns the string representation of the status.
func (s RecordStatus) String() string {
	return string(s)
}
