package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adota-pet/service-adoption/internal/domain"
	adopterDomain "github.com/adota-pet/service-adoption/internal/domain/adopter"
)

// AdopterModel is the GORM model for the adopters table.
type AdopterModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone     string    `gorm:"type:varchar(30)"`
	Address   string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AdopterModel) TableName() string { return "adopters" }

// GormAdopterRepository implements adopter.Repository using GORM.
type GormAdopterRepository struct {
	db *gorm.DB
}

// NewGormAdopterRepository creates a new GormAdopterRepository.
func NewGormAdopterRepository(db *gorm.DB) *GormAdopterRepository {
	return &GormAdopterRepository{db: db}
}

// FindByID retrieves an adopter by its unique identifier.
func (r *GormAdopterRepository) FindByID(ctx context.Context, id uuid.UUID) (*adopterDomain.Adopter, error) {
	var model AdopterModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Adopter", id.String())
		}
		return nil, err
	}
	return toAdopterDomain(&model), nil
}

// FindByIDs retrieves adopters by identifier, keyed by ID.
func (r *GormAdopterRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*adopterDomain.Adopter, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*adopterDomain.Adopter{}, nil
	}
	var models []AdopterModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	adopters := make(map[uuid.UUID]*adopterDomain.Adopter, len(models))
	for i := range models {
		adopters[models[i].ID] = toAdopterDomain(&models[i])
	}
	return adopters, nil
}

// FindByEmail retrieves an adopter by normalized email.
func (r *GormAdopterRepository) FindByEmail(ctx context.Context, email string) (*adopterDomain.Adopter, error) {
	var model AdopterModel
	err := r.db.WithContext(ctx).
		Where("email = ?", adopterDomain.NormalizeEmail(email)).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Adopter", email)
		}
		return nil, err
	}
	return toAdopterDomain(&model), nil
}

// ListAll returns all adopters, newest first.
func (r *GormAdopterRepository) ListAll(ctx context.Context) ([]*adopterDomain.Adopter, error) {
	var models []AdopterModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	adopters := make([]*adopterDomain.Adopter, len(models))
	for i := range models {
		adopters[i] = toAdopterDomain(&models[i])
	}
	return adopters, nil
}

// Save persists a new adopter. A duplicate email surfaces as a
// conflict.
func (r *GormAdopterRepository) Save(ctx context.Context, a *adopterDomain.Adopter) error {
	model := toAdopterModel(a)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("an adopter with this email already exists")
		}
		return err
	}
	return nil
}

// Update persists changes to an existing adopter.
func (r *GormAdopterRepository) Update(ctx context.Context, a *adopterDomain.Adopter) error {
	model := toAdopterModel(a)
	result := r.db.WithContext(ctx).
		Model(&AdopterModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":       model.Name,
			"email":      model.Email,
			"phone":      model.Phone,
			"address":    model.Address,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("an adopter with this email already exists")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Adopter", model.ID.String())
	}
	return nil
}

// Delete removes an adopter profile.
func (r *GormAdopterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&AdopterModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Adopter", id.String())
	}
	return nil
}

// --- Conversions ---

func toAdopterModel(a *adopterDomain.Adopter) *AdopterModel {
	return &AdopterModel{
		ID:        a.ID(),
		Name:      a.Name(),
		Email:     a.Email(),
		Phone:     a.Phone(),
		Address:   a.Address(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}

func toAdopterDomain(m *AdopterModel) *adopterDomain.Adopter {
	return adopterDomain.Reconstruct(m.ID, m.Name, m.Email, m.Phone, m.Address, m.CreatedAt, m.UpdatedAt)
}
