package adopter

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for adopter profiles.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Adopter, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Adopter, error)
	// FindByEmail looks up an adopter by normalized email.
	FindByEmail(ctx context.Context, email string) (*Adopter, error)
	ListAll(ctx context.Context) ([]*Adopter, error)
	Save(ctx context.Context, adopter *Adopter) error
	Update(ctx context.Context, adopter *Adopter) error
	Delete(ctx context.Context, id uuid.UUID) error
}
