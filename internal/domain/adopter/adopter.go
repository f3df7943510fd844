package adopter

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
)

// Adopter is the contact profile of a person who may receive a pet.
// Adopters are unique by email; emails are stored lowercased so
// lookups never miss on casing.
type Adopter struct {
	id        uuid.UUID
	name      string
	email     string
	phone     string
	address   string
	createdAt time.Time
	updatedAt time.Time
}

// NewAdopter creates a new adopter profile with validated fields.
func NewAdopter(name, email, phone, address string) (*Adopter, error) {
	if name == "" {
		return nil, domain.NewValidationError("adopter name is required")
	}
	email = NormalizeEmail(email)
	if email == "" {
		return nil, domain.NewValidationError("adopter email is required")
	}

	now := time.Now().UTC()
	return &Adopter{
		id:        uuid.New(),
		name:      name,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds an Adopter from persistence data.
func Reconstruct(id uuid.UUID, name, email, phone, address string, createdAt, updatedAt time.Time) *Adopter {
	return &Adopter{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		address:   address,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// NormalizeEmail lowercases and trims an email address for comparison
// and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// --- Getters ---

func (a *Adopter) ID() uuid.UUID        { return a.id }
func (a *Adopter) Name() string         { return a.name }
func (a *Adopter) Email() string        { return a.email }
func (a *Adopter) Phone() string        { return a.phone }
func (a *Adopter) Address() string      { return a.address }
func (a *Adopter) CreatedAt() time.Time { return a.createdAt }
func (a *Adopter) UpdatedAt() time.Time { return a.updatedAt }

// Update applies partial updates to the adopter's contact fields.
func (a *Adopter) Update(name, email, phone, address string) {
	if name != "" {
		a.name = name
	}
	if email != "" {
		a.email = NormalizeEmail(email)
	}
	if phone != "" {
		a.phone = phone
	}
	if address != "" {
		a.address = address
	}
	a.updatedAt = time.Now().UTC()
}
