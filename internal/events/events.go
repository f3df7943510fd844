package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicAdoptionEvents carries the adoption request lifecycle events.
const TopicAdoptionEvents = "adoption.events"

// Event types published on TopicAdoptionEvents.
const (
	AdoptionRequestCreated  = "adoption.request.created"
	AdoptionRequestApproved = "adoption.request.approved"
	AdoptionRequestDenied   = "adoption.request.denied"
)

// RequestCreatedEvent is published when a user submits an adoption
// request for a pet.
type RequestCreatedEvent struct {
	RequestID    uuid.UUID `json:"request_id"`
	PetID        uuid.UUID `json:"pet_id"`
	AdopterEmail string    `json:"adopter_email"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// RequestApprovedEvent is published after an approval transaction
// commits: the adoption exists and the pet is marked adopted.
type RequestApprovedEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	PetID      uuid.UUID `json:"pet_id"`
	AdopterID  uuid.UUID `json:"adopter_id"`
	AdoptionID uuid.UUID `json:"adoption_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// RequestDeniedEvent is published when an admin denies a request.
type RequestDeniedEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	PetID      uuid.UUID `json:"pet_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
