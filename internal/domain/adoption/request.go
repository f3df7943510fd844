package adoption

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
	"github.com/adota-pet/service-adoption/internal/domain/adopter"
)

// ContactInfo is the contact snapshot captured on the request form.
// It is stored on the request itself so finalization can materialize
// an adopter profile even if none exists yet.
type ContactInfo struct {
	Name         string
	Email        string
	Phone        string
	Street       string
	Number       string
	Neighborhood string
	City         string
	State        string
}

// ComposedAddress flattens the structured address fields into the
// single address string stored on adopter profiles.
func (c ContactInfo) ComposedAddress() string {
	return fmt.Sprintf("%s, %s - %s, %s/%s", c.Street, c.Number, c.Neighborhood, c.City, c.State)
}

func (c ContactInfo) validate() error {
	switch {
	case c.Name == "":
		return domain.NewValidationError("adopter name is required")
	case c.Email == "":
		return domain.NewValidationError("adopter email is required")
	case c.Phone == "":
		return domain.NewValidationError("adopter phone is required")
	case c.Street == "":
		return domain.NewValidationError("street address is required")
	case c.Number == "":
		return domain.NewValidationError("street number is required")
	case c.Neighborhood == "":
		return domain.NewValidationError("neighborhood is required")
	case c.City == "":
		return domain.NewValidationError("city is required")
	case c.State == "":
		return domain.NewValidationError("state is required")
	}
	return nil
}

// Request is the aggregate root for an adoption request: a workflow
// ticket that starts PENDING and is resolved by an administrator to
// APPROVED or DENIED. Requests are never deleted.
type Request struct {
	id        uuid.UUID
	petID     uuid.UUID
	adopterID *uuid.UUID
	contact   ContactInfo
	status    RequestStatus
	createdAt time.Time
	updatedAt time.Time
}

// NewRequest creates a PENDING request for the given pet.
func NewRequest(petID uuid.UUID, adopterID *uuid.UUID, contact ContactInfo) (*Request, error) {
	if petID == uuid.Nil {
		return nil, domain.NewValidationError("pet ID is required")
	}
	contact.Email = adopter.NormalizeEmail(contact.Email)
	if err := contact.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Request{
		id:        uuid.New(),
		petID:     petID,
		adopterID: adopterID,
		contact:   contact,
		status:    StatusPending,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRequest rebuilds a Request from persistence data.
func ReconstructRequest(
	id, petID uuid.UUID,
	adopterID *uuid.UUID,
	contact ContactInfo,
	status RequestStatus,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:        id,
		petID:     petID,
		adopterID: adopterID,
		contact:   contact,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// --- Getters ---

func (r *Request) ID() uuid.UUID         { return r.id }
func (r *Request) PetID() uuid.UUID      { return r.petID }
func (r *Request) AdopterID() *uuid.UUID { return r.adopterID }
func (r *Request) Contact() ContactInfo  { return r.contact }
func (r *Request) Status() RequestStatus { return r.status }
func (r *Request) CreatedAt() time.Time  { return r.createdAt }
func (r *Request) UpdatedAt() time.Time  { return r.updatedAt }

// --- Behavior ---

// Approve transitions the request from PENDING to APPROVED and links
// the adopter the adoption was finalized for.
func (r *Request) Approve(adopterID uuid.UUID) error {
	if !r.status.CanTransitionTo(StatusApproved) {
		return domain.NewInvalidStateError(string(r.status), string(StatusApproved))
	}
	if adopterID == uuid.Nil {
		return domain.NewValidationError("adopter ID is required")
	}
	r.adopterID = &adopterID
	r.status = StatusApproved
	r.updatedAt = time.Now().UTC()
	return nil
}

// Deny transitions the request from PENDING to DENIED.
func (r *Request) Deny() error {
	if !r.status.CanTransitionTo(StatusDenied) {
		return domain.NewInvalidStateError(string(r.status), string(StatusDenied))
	}
	r.status = StatusDenied
	r.updatedAt = time.Now().UTC()
	return nil
}
