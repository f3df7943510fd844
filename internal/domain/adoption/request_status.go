package adoption

import "fmt"

// RequestStatus represents the state of an adoption request in its
// lifecycle.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusDenied   RequestStatus = "DENIED"
)

// validTransitions defines the state machine for request status
// transitions. APPROVED and DENIED are terminal.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusDenied},
	StatusApproved: {},
	StatusDenied:   {},
}

// IsValid returns true if the status is a recognized request status.
func (s RequestStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the
// target is allowed.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible.
func (s RequestStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// String returns the string representation of the status.
func (s RequestStatus) String() string {
	return string(s)
}

// ParseRequestStatus converts a string to a RequestStatus, returning
// an error if invalid.
func ParseRequestStatus(s string) (RequestStatus, error) {
	status := RequestStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid request status: %s", s)
	}
	return status, nil
}
