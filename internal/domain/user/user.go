package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adota-pet/service-adoption/internal/domain"
)

// Role is the authorization role of an account.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleAdopter Role = "ADOTANTE"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleAdopter
}

// User is an authenticated account. Accounts are not linked to Adopter
// profiles by foreign key; the two are matched by normalized email.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new account with an already-hashed password.
func NewUser(name, email, passwordHash string, role Role) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, domain.NewValidationError("email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data.
func Reconstruct(id uuid.UUID, name, email, passwordHash string, role Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// IsAdmin returns true for administrator accounts.
func (u *User) IsAdmin() bool { return u.role == RoleAdmin }
