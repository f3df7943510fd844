package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/adota-pet/service-adoption/internal/domain"
	adoptionDomain "github.com/adota-pet/service-adoption/internal/domain/adoption"
)

// RequestModel is the GORM model for the adoption_requests table.
// The adopter contact fields are a snapshot of the request form, kept
// even after an adopter profile is materialized.
type RequestModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PetID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	AdopterID    *uuid.UUID `gorm:"type:uuid;index"`
	Name         string     `gorm:"type:varchar(100);not null"`
	Email        string     `gorm:"type:varchar(255);not null;index"`
	Phone        string     `gorm:"type:varchar(30);not null"`
	Street       string     `gorm:"type:varchar(200);not null"`
	Number       string     `gorm:"type:varchar(20);not null"`
	Neighborhood string     `gorm:"type:varchar(100);not null"`
	City         string     `gorm:"type:varchar(100);not null"`
	State        string     `gorm:"type:varchar(50);not null"`
	Status       string     `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (RequestModel) TableName() string { return "adoption_requests" }

// AdoptionModel is the GORM model for the adoptions table.
type AdoptionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PetID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AdopterID uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (AdoptionModel) TableName() string { return "adoptions" }

// GormRequestRepository implements adoption.RequestRepository using
// GORM.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository.
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID retrieves a request by its unique identifier.
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*adoptionDomain.Request, error) {
	var model RequestModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("AdoptionRequest", id.String())
		}
		return nil, err
	}
	return toRequestDomain(&model)
}

// ExistsPendingForPet reports whether a PENDING request exists for the
// pet. Callers run this inside the same transaction as the insert so
// the guard and the write are atomic.
func (r *GormRequestRepository) ExistsPendingForPet(ctx context.Context, petID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&RequestModel{}).
		Where("pet_id = ? AND status = ?", petID, string(adoptionDomain.StatusPending)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListAll retrieves requests newest-first with pagination.
func (r *GormRequestRepository) ListAll(ctx context.Context, page, limit int) ([]*adoptionDomain.Request, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&RequestModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RequestModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, err
	}

	requests := make([]*adoptionDomain.Request, len(models))
	for i := range models {
		req, err := toRequestDomain(&models[i])
		if err != nil {
			return nil, 0, err
		}
		requests[i] = req
	}
	return requests, total, nil
}

// CountByStatus returns request counts grouped by status.
func (r *GormRequestRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&RequestModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// Save persists a new request.
func (r *GormRequestRepository) Save(ctx context.Context, req *adoptionDomain.Request) error {
	return r.db.WithContext(ctx).Create(toRequestModel(req)).Error
}

// Update persists a status change to an existing request.
func (r *GormRequestRepository) Update(ctx context.Context, req *adoptionDomain.Request) error {
	model := toRequestModel(req)
	result := r.db.WithContext(ctx).
		Model(&RequestModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"adopter_id": model.AdopterID,
			"status":     model.Status,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("AdoptionRequest", model.ID.String())
	}
	return nil
}

// GormAdoptionRepository implements adoption.AdoptionRepository using
// GORM.
type GormAdoptionRepository struct {
	db *gorm.DB
}

// NewGormAdoptionRepository creates a new GormAdoptionRepository.
func NewGormAdoptionRepository(db *gorm.DB) *GormAdoptionRepository {
	return &GormAdoptionRepository{db: db}
}

// FindByID retrieves an adoption by its unique identifier.
func (r *GormAdoptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*adoptionDomain.Adoption, error) {
	var model AdoptionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Adoption", id.String())
		}
		return nil, err
	}
	return toAdoptionDomain(&model), nil
}

// ListAll returns all adoptions, newest first.
func (r *GormAdoptionRepository) ListAll(ctx context.Context) ([]*adoptionDomain.Adoption, error) {
	var models []AdoptionModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	adoptions := make([]*adoptionDomain.Adoption, len(models))
	for i := range models {
		adoptions[i] = toAdoptionDomain(&models[i])
	}
	return adoptions, nil
}

// Save persists a new adoption record.
func (r *GormAdoptionRepository) Save(ctx context.Context, a *adoptionDomain.Adoption) error {
	model := &AdoptionModel{
		ID:        a.ID(),
		PetID:     a.PetID(),
		AdopterID: a.AdopterID(),
		CreatedAt: a.CreatedAt(),
	}
	return r.db.WithContext(ctx).Create(model).Error
}

// --- Conversions ---

func toRequestModel(req *adoptionDomain.Request) *RequestModel {
	c := req.Contact()
	return &RequestModel{
		ID:           req.ID(),
		PetID:        req.PetID(),
		AdopterID:    req.AdopterID(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Street:       c.Street,
		Number:       c.Number,
		Neighborhood: c.Neighborhood,
		City:         c.City,
		State:        c.State,
		Status:       string(req.Status()),
		CreatedAt:    req.CreatedAt(),
		UpdatedAt:    req.UpdatedAt(),
	}
}

func toRequestDomain(m *RequestModel) (*adoptionDomain.Request, error) {
	status, err := adoptionDomain.ParseRequestStatus(m.Status)
	if err != nil {
		return nil, err
	}
	contact := adoptionDomain.ContactInfo{
		Name:         m.Name,
		Email:        m.Email,
		Phone:        m.Phone,
		Street:       m.Street,
		Number:       m.Number,
		Neighborhood: m.Neighborhood,
		City:         m.City,
		State:        m.State,
	}
	return adoptionDomain.ReconstructRequest(
		m.ID, m.PetID, m.AdopterID,
		contact, status,
		m.CreatedAt, m.UpdatedAt,
	), nil
}

func toAdoptionDomain(m *AdoptionModel) *adoptionDomain.Adoption {
	return adoptionDomain.ReconstructAdoption(m.ID, m.PetID, m.AdopterID, m.CreatedAt)
}
