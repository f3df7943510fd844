package adoption

import (
	"context"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain/adopter"
	"github.com/adota-pet/service-adoption/internal/domain/pet"
)

// RequestRepository defines persistence operations for adoption
// requests.
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	// ExistsPendingForPet reports whether a PENDING request already
	// exists for the given pet.
	ExistsPendingForPet(ctx context.Context, petID uuid.UUID) (bool, error)
	// ListAll returns requests newest-first with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Request, int64, error)
	// CountByStatus returns request counts grouped by status.
	CountByStatus(ctx context.Context) (map[string]int64, error)
	Save(ctx context.Context, request *Request) error
	Update(ctx context.Context, request *Request) error
}

// AdoptionRepository defines persistence operations for finalized
// adoptions.
type AdoptionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Adoption, error)
	ListAll(ctx context.Context) ([]*Adoption, error)
	Save(ctx context.Context, adoption *Adoption) error
}

// TxRepos bundles the repositories bound to one transaction. Every
// read and write made through it sees and joins the same transaction.
type TxRepos struct {
	Pets      pet.Repository
	Adopters  adopter.Repository
	Requests  RequestRepository
	Adoptions AdoptionRepository
}

// TxManager runs a function inside a single database transaction.
// If fn returns an error the transaction is rolled back and no write
// made through the TxRepos is visible.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(repos TxRepos) error) error
}
