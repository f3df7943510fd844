package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	adopterDomain "github.com/adota-pet/service-adoption/internal/domain/adopter"
)

// CreateAdopterInput holds the adopter registration form (admin).
type CreateAdopterInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateAdopterInput holds partial adopter updates (admin). Empty
// fields are left unchanged.
type UpdateAdopterInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// AdopterDTO is the API representation of an adopter profile.
type AdopterDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AdopterService manages adopter profiles.
type AdopterService struct {
	adopters adopterDomain.Repository
	logger   *zap.Logger
}

// NewAdopterService creates a new AdopterService.
func NewAdopterService(adopters adopterDomain.Repository, logger *zap.Logger) *AdopterService {
	return &AdopterService{adopters: adopters, logger: logger}
}

// Create registers a new adopter profile.
func (s *AdopterService) Create(ctx context.Context, input CreateAdopterInput) (*AdopterDTO, error) {
	a, err := adopterDomain.NewAdopter(input.Name, input.Email, input.Phone, input.Address)
	if err != nil {
		return nil, err
	}

	if err := s.adopters.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("adopter registered",
		zap.String("adopter_id", a.ID().String()),
	)
	dto := toAdopterDTO(a)
	return &dto, nil
}

// Get returns a single adopter by ID.
func (s *AdopterService) Get(ctx context.Context, id uuid.UUID) (*AdopterDTO, error) {
	a, err := s.adopters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toAdopterDTO(a)
	return &dto, nil
}

// List returns all adopter profiles.
func (s *AdopterService) List(ctx context.Context) ([]AdopterDTO, error) {
	adopters, err := s.adopters.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dtos := make([]AdopterDTO, len(adopters))
	for i, a := range adopters {
		dtos[i] = toAdopterDTO(a)
	}
	return dtos, nil
}

// Update applies partial changes to an adopter profile.
func (s *AdopterService) Update(ctx context.Context, id uuid.UUID, input UpdateAdopterInput) (*AdopterDTO, error) {
	a, err := s.adopters.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Update(input.Name, input.Email, input.Phone, input.Address)
	if err := s.adopters.Update(ctx, a); err != nil {
		return nil, err
	}
	dto := toAdopterDTO(a)
	return &dto, nil
}

// Delete removes an adopter profile.
func (s *AdopterService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.adopters.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("adopter deleted", zap.String("adopter_id", id.String()))
	return nil
}

func toAdopterDTO(a *adopterDomain.Adopter) AdopterDTO {
	return AdopterDTO{
		ID:        a.ID(),
		Name:      a.Name(),
		Email:     a.Email(),
		Phone:     a.Phone(),
		Address:   a.Address(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
