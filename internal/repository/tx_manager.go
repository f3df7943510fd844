package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/adota-pet/service-adoption/internal/domain/adoption"
)

// GormTxManager implements adoption.TxManager on top of gorm's
// transaction support. The repositories handed to fn are bound to the
// transaction connection, so every read and write inside fn commits or
// rolls back as one unit.
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new GormTxManager.
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside a single database transaction.
func (m *GormTxManager) WithinTx(ctx context.Context, fn func(repos adoption.TxRepos) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(adoption.TxRepos{
			Pets:      NewGormPetRepository(tx),
			Adopters:  NewGormAdopterRepository(tx),
			Requests:  NewGormRequestRepository(tx),
			Adoptions: NewGormAdoptionRepository(tx),
		})
	})
}
