package adoption

import (
	"time"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
)

// Adoption is the immutable record of a finalized pet-to-adopter
// placement. Exactly one is created per approved request.
type Adoption struct {
	id        uuid.UUID
	petID     uuid.UUID
	adopterID uuid.UUID
	createdAt time.Time
}

// NewAdoption creates an adoption record linking a pet to an adopter.
func NewAdoption(petID, adopterID uuid.UUID) (*Adoption, error) {
	if petID == uuid.Nil {
		return nil, domain.NewValidationError("pet ID is required")
	}
	if adopterID == uuid.Nil {
		return nil, domain.NewValidationError("adopter ID is required")
	}
	return &Adoption{
		id:        uuid.New(),
		petID:     petID,
		adopterID: adopterID,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructAdoption rebuilds an Adoption from persistence data.
func ReconstructAdoption(id, petID, adopterID uuid.UUID, createdAt time.Time) *Adoption {
	return &Adoption{
		id:        id,
		petID:     petID,
		adopterID: adopterID,
		createdAt: createdAt,
	}
}

func (a *Adoption) ID() uuid.UUID        { return a.id }
func (a *Adoption) PetID() uuid.UUID     { return a.petID }
func (a *Adoption) AdopterID() uuid.UUID { return a.adopterID }
func (a *Adoption) CreatedAt() time.Time { return a.createdAt }
