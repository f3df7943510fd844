package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adota-pet/service-adoption/internal/domain"
	petDomain "github.com/adota-pet/service-adoption/internal/domain/pet"
)

// PetModel is the GORM model for the pets table.
type PetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Species     string    `gorm:"type:varchar(20);not null"`
	BirthDate   time.Time `gorm:"type:date;not null"`
	Description string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;default:'available';index"`
	Size        string    `gorm:"type:varchar(10)"`
	Personality string    `gorm:"type:text"`
	ImageURL    string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PetModel) TableName() string { return "pets" }

// GormPetRepository implements pet.Repository using GORM.
type GormPetRepository struct {
	db *gorm.DB
}

// NewGormPetRepository creates a new GormPetRepository.
func NewGormPetRepository(db *gorm.DB) *GormPetRepository {
	return &GormPetRepository{db: db}
}

// FindByID retrieves a pet by its unique identifier.
func (r *GormPetRepository) FindByID(ctx context.Context, id uuid.UUID) (*petDomain.Pet, error) {
	var model PetModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Pet", id.String())
		}
		return nil, err
	}
	return toPetDomain(&model), nil
}

// FindByIDs retrieves pets by identifier, keyed by ID.
func (r *GormPetRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*petDomain.Pet, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*petDomain.Pet{}, nil
	}
	var models []PetModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	pets := make(map[uuid.UUID]*petDomain.Pet, len(models))
	for i := range models {
		pets[models[i].ID] = toPetDomain(&models[i])
	}
	return pets, nil
}

// ListAvailable returns pets still open for adoption, newest first.
func (r *GormPetRepository) ListAvailable(ctx context.Context) ([]*petDomain.Pet, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("status = ?", string(petDomain.StatusAvailable)))
}

// ListAll returns every pet including adopted ones, newest first.
func (r *GormPetRepository) ListAll(ctx context.Context) ([]*petDomain.Pet, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

func (r *GormPetRepository) list(ctx context.Context, tx *gorm.DB) ([]*petDomain.Pet, error) {
	var models []PetModel
	if err := tx.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	pets := make([]*petDomain.Pet, len(models))
	for i := range models {
		pets[i] = toPetDomain(&models[i])
	}
	return pets, nil
}

// Save persists a new pet.
func (r *GormPetRepository) Save(ctx context.Context, p *petDomain.Pet) error {
	model := toPetModel(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update persists changes to an existing pet.
func (r *GormPetRepository) Update(ctx context.Context, p *petDomain.Pet) error {
	model := toPetModel(p)
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":        model.Name,
			"species":     model.Species,
			"birth_date":  model.BirthDate,
			"description": model.Description,
			"status":      model.Status,
			"size":        model.Size,
			"personality": model.Personality,
			"image_url":   model.ImageURL,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Pet", model.ID.String())
	}
	return nil
}

// MarkAdopted flips the pet's status to adopted with a conditional
// write: the UPDATE only matches while the row still reads available,
// so of two transactions approving adoptions for the same pet only the
// first to commit sees RowsAffected == 1 and the loser's transaction
// fails and rolls back.
func (r *GormPetRepository) MarkAdopted(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&PetModel{}).
		Where("id = ? AND status = ?", id, string(petDomain.StatusAvailable)).
		Updates(map[string]interface{}{
			"status":     string(petDomain.StatusAdopted),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&PetModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return domain.NewNotFoundError("Pet", id.String())
		}
		return domain.NewConflictError("this pet has already been adopted")
	}
	return nil
}

// Delete removes a pet from the catalog.
func (r *GormPetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PetModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Pet", id.String())
	}
	return nil
}

// --- Conversions ---

func toPetModel(p *petDomain.Pet) *PetModel {
	return &PetModel{
		ID:          p.ID(),
		OwnerID:     p.OwnerID(),
		Name:        p.Name(),
		Species:     string(p.Species()),
		BirthDate:   p.BirthDate(),
		Description: p.Description(),
		Status:      string(p.Status()),
		Size:        string(p.Size()),
		Personality: p.Personality(),
		ImageURL:    p.ImageURL(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}

func toPetDomain(m *PetModel) *petDomain.Pet {
	return petDomain.Reconstruct(
		m.ID, m.OwnerID,
		m.Name,
		petDomain.Species(m.Species),
		m.BirthDate,
		m.Description,
		petDomain.Status(m.Status),
		petDomain.Size(m.Size),
		m.Personality, m.ImageURL,
		m.CreatedAt, m.UpdatedAt,
	)
}
