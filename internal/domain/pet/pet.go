package pet

import (
	"time"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
)

// Status represents the adoption state of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusAdopted   Status = "adopted"
)

// IsValid returns true if the status is recognized.
func (s Status) IsValid() bool {
	return s == StatusAvailable || s == StatusAdopted
}

// Species is the kind of animal in the catalog.
type Species string

const (
	SpeciesDog    Species = "dog"
	SpeciesCat    Species = "cat"
	SpeciesRabbit Species = "rabbit"
	SpeciesBird   Species = "bird"
	SpeciesOther  Species = "other"
)

// IsValid returns true if the species is recognized.
func (s Species) IsValid() bool {
	switch s {
	case SpeciesDog, SpeciesCat, SpeciesRabbit, SpeciesBird, SpeciesOther:
		return true
	}
	return false
}

// Size is the rough size class shown on pet cards.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// IsValid returns true if the size is recognized or unset.
func (s Size) IsValid() bool {
	switch s {
	case "", SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Pet is the aggregate root for a catalog pet.
type Pet struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	species     Species
	birthDate   time.Time
	description string
	status      Status
	size        Size
	personality string
	imageURL    string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewPet creates a new available pet registered by the given admin.
func NewPet(
	ownerID uuid.UUID,
	name string,
	species Species,
	birthDate time.Time,
	description string,
	size Size,
	personality string,
) (*Pet, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("pet name is required")
	}
	if !species.IsValid() {
		return nil, domain.NewValidationError("invalid species: " + string(species))
	}
	if birthDate.IsZero() {
		return nil, domain.NewValidationError("birth date is required")
	}
	if !size.IsValid() {
		return nil, domain.NewValidationError("invalid size: " + string(size))
	}

	now := time.Now().UTC()
	return &Pet{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		species:     species,
		birthDate:   birthDate,
		description: description,
		status:      StatusAvailable,
		size:        size,
		personality: personality,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Pet from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	name string,
	species Species,
	birthDate time.Time,
	description string,
	status Status,
	size Size,
	personality, imageURL string,
	createdAt, updatedAt time.Time,
) *Pet {
	return &Pet{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		species:     species,
		birthDate:   birthDate,
		description: description,
		status:      status,
		size:        size,
		personality: personality,
		imageURL:    imageURL,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (p *Pet) ID() uuid.UUID        { return p.id }
func (p *Pet) OwnerID() uuid.UUID   { return p.ownerID }
func (p *Pet) Name() string         { return p.name }
func (p *Pet) Species() Species     { return p.species }
func (p *Pet) BirthDate() time.Time { return p.birthDate }
func (p *Pet) Description() string  { return p.description }
func (p *Pet) Status() Status       { return p.status }
func (p *Pet) Size() Size           { return p.size }
func (p *Pet) Personality() string  { return p.personality }
func (p *Pet) ImageURL() string     { return p.imageURL }
func (p *Pet) CreatedAt() time.Time { return p.createdAt }
func (p *Pet) UpdatedAt() time.Time { return p.updatedAt }

// --- Behavior ---

// IsAvailable returns true if the pet can still be adopted.
func (p *Pet) IsAvailable() bool {
	return p.status == StatusAvailable
}

// MarkAdopted transitions the pet to adopted. A pet can only be
// adopted once.
func (p *Pet) MarkAdopted() error {
	if p.status != StatusAvailable {
		return domain.NewInvalidStateError(string(p.status), string(StatusAdopted))
	}
	p.status = StatusAdopted
	p.updatedAt = time.Now().UTC()
	return nil
}

// Update applies partial updates to the pet's profile fields.
func (p *Pet) Update(name string, species Species, birthDate time.Time, description string, size Size, personality string) error {
	if species != "" && !species.IsValid() {
		return domain.NewValidationError("invalid species: " + string(species))
	}
	if !size.IsValid() {
		return domain.NewValidationError("invalid size: " + string(size))
	}

	if name != "" {
		p.name = name
	}
	if species != "" {
		p.species = species
	}
	if !birthDate.IsZero() {
		p.birthDate = birthDate
	}
	if description != "" {
		p.description = description
	}
	if size != "" {
		p.size = size
	}
	if personality != "" {
		p.personality = personality
	}
	p.updatedAt = time.Now().UTC()
	return nil
}

// SetImageURL attaches an uploaded image to the pet.
func (p *Pet) SetImageURL(url string) {
	p.imageURL = url
	p.updatedAt = time.Now().UTC()
}
