package pet

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for catalog pets.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Pet, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Pet, error)
	ListAvailable(ctx context.Context) ([]*Pet, error)
	ListAll(ctx context.Context) ([]*Pet, error)
	Save(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
	// MarkAdopted flips the pet to adopted only if it is still
	// available, as one conditional write. Fails with a conflict when
	// the pet was already adopted, so two transactions racing to adopt
	// the same pet cannot both succeed.
	MarkAdopted(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}
