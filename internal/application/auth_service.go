package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/adota-pet/service-adoption/internal/auth"
	"github.com/adota-pet/service-adoption/internal/domain"
	userDomain "github.com/adota-pet/service-adoption/internal/domain/user"
)

// RegisterInput holds the account registration form. Supplying the
// correct admin key grants the ADMIN role; anything else registers a
// regular adopter account.
type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	AdminKey string `json:"admin_key"`
}

// LoginInput holds the login form.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the API representation of an account.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResultDTO is returned by register and login.
type AuthResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService handles account registration and login.
type AuthService struct {
	users    userDomain.Repository
	jwt      *auth.JWTManager
	adminKey string
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(users userDomain.Repository, jwt *auth.JWTManager, adminKey string, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, jwt: jwt, adminKey: adminKey, logger: logger}
}

// Register creates an account and returns a signed token for it. The
// role is ADMIN only when the request carries the configured admin key.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResultDTO, error) {
	role := userDomain.RoleAdopter
	if s.adminKey != "" && input.AdminKey == s.adminKey {
		role = userDomain.RoleAdmin
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, domain.NewInternalError("failed to hash password", err)
	}

	u, err := userDomain.NewUser(input.Name, input.Email, hash, role)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.jwt.Generate(u.ID(), string(u.Role()), u.Name(), u.Email())
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("account registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", string(u.Role())),
	)
	return &AuthResultDTO{Token: token, User: toUserDTO(u)}, nil
}

// Login verifies credentials and returns a signed token. Failures are
// reported uniformly so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResultDTO, error) {
	u, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash(), input.Password) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	token, err := s.jwt.Generate(u.ID(), string(u.Role()), u.Name(), u.Email())
	if err != nil {
		return nil, domain.NewInternalError("failed to issue token", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", u.ID().String()))
	return &AuthResultDTO{Token: token, User: toUserDTO(u)}, nil
}

// GetUser returns the account identified by id.
func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		Role:      string(u.Role()),
		CreatedAt: u.CreatedAt(),
	}
}
