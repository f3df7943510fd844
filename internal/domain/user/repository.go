package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for accounts.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	// FindByEmail looks up an account by normalized email.
	FindByEmail(ctx context.Context, email string) (*User, error)
	Save(ctx context.Context, user *User) error
}
