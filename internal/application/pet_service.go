package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adota-pet/service-adoption/internal/domain"
	petDomain "github.com/adota-pet/service-adoption/internal/domain/pet"
)

const birthDateLayout = "2006-01-02"

// CreatePetInput holds the pet registration form (admin).
type CreatePetInput struct {
	Name        string `json:"name" binding:"required"`
	Species     string `json:"species" binding:"required"`
	BirthDate   string `json:"birth_date" binding:"required"`
	Description string `json:"description"`
	Size        string `json:"size"`
	Personality string `json:"personality"`
}

// UpdatePetInput holds partial pet profile updates (admin). Empty
// fields are left unchanged.
type UpdatePetInput struct {
	Name        string `json:"name"`
	Species     string `json:"species"`
	BirthDate   string `json:"birth_date"`
	Description string `json:"description"`
	Size        string `json:"size"`
	Personality string `json:"personality"`
}

// PetDTO is the API representation of a pet.
type PetDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Species     string    `json:"species"`
	BirthDate   string    `json:"birth_date"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Size        string    `json:"size,omitempty"`
	Personality string    `json:"personality,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PetService manages the pet catalog.
type PetService struct {
	pets   petDomain.Repository
	logger *zap.Logger
}

// NewPetService creates a new PetService.
func NewPetService(pets petDomain.Repository, logger *zap.Logger) *PetService {
	return &PetService{pets: pets, logger: logger}
}

// Create registers a new available pet owned by the admin account.
func (s *PetService) Create(ctx context.Context, ownerID uuid.UUID, input CreatePetInput) (*PetDTO, error) {
	birthDate, err := time.Parse(birthDateLayout, input.BirthDate)
	if err != nil {
		return nil, domain.NewValidationError("birth_date must be in YYYY-MM-DD format")
	}

	p, err := petDomain.NewPet(
		ownerID,
		input.Name,
		petDomain.Species(input.Species),
		birthDate,
		input.Description,
		petDomain.Size(input.Size),
		input.Personality,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pets.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("pet registered",
		zap.String("pet_id", p.ID().String()),
		zap.String("name", p.Name()),
	)
	dto := toPetDTO(p)
	return &dto, nil
}

// Get returns a single pet by ID.
func (s *PetService) Get(ctx context.Context, id uuid.UUID) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPetDTO(p)
	return &dto, nil
}

// ListAvailable returns pets still open for adoption (public catalog).
func (s *PetService) ListAvailable(ctx context.Context) ([]PetDTO, error) {
	pets, err := s.pets.ListAvailable(ctx)
	if err != nil {
		return nil, err
	}
	return toPetDTOs(pets), nil
}

// ListAll returns every pet regardless of status (admin).
func (s *PetService) ListAll(ctx context.Context) ([]PetDTO, error) {
	pets, err := s.pets.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPetDTOs(pets), nil
}

// Update applies partial changes to a pet's profile.
func (s *PetService) Update(ctx context.Context, id uuid.UUID, input UpdatePetInput) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var birthDate time.Time
	if input.BirthDate != "" {
		birthDate, err = time.Parse(birthDateLayout, input.BirthDate)
		if err != nil {
			return nil, domain.NewValidationError("birth_date must be in YYYY-MM-DD format")
		}
	}

	err = p.Update(
		input.Name,
		petDomain.Species(input.Species),
		birthDate,
		input.Description,
		petDomain.Size(input.Size),
		input.Personality,
	)
	if err != nil {
		return nil, err
	}

	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}
	dto := toPetDTO(p)
	return &dto, nil
}

// SetImage attaches an uploaded image URL to a pet.
func (s *PetService) SetImage(ctx context.Context, id uuid.UUID, imageURL string) (*PetDTO, error) {
	p, err := s.pets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.SetImageURL(imageURL)
	if err := s.pets.Update(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("pet image updated",
		zap.String("pet_id", p.ID().String()),
		zap.String("image_url", imageURL),
	)
	dto := toPetDTO(p)
	return &dto, nil
}

// Delete removes a pet from the catalog.
func (s *PetService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.pets.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("pet deleted", zap.String("pet_id", id.String()))
	return nil
}

func toPetDTO(p *petDomain.Pet) PetDTO {
	return PetDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Species:     string(p.Species()),
		BirthDate:   p.BirthDate().Format(birthDateLayout),
		Description: p.Description(),
		Status:      string(p.Status()),
		Size:        string(p.Size()),
		Personality: p.Personality(),
		ImageURL:    p.ImageURL(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDTOs(pets []*petDomain.Pet) []PetDTO {
	dtos := make([]PetDTO, len(pets))
	for i, p := range pets {
		dtos[i] = toPetDTO(p)
	}
	return dtos
}
