package users

import (
	"context"
	"strings"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"
)

const minPasswordLength = 6

type Repository interface {
	PersistUser(ctx context.Context, user *models.User) error
	GetUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id int) (*models.User, error)
	UpdateUser(ctx context.Context, id int, changes *models.UserChanges) error
}

type UserService struct {
	repository Repository
	hash       func(password string) (string, error)
}

func NewUserService(r Repository) *UserService {
	return &UserService{
		repository: r,
		hash:       security.HashPassword,
	}
}

// Register creates a self-service account. The requested role is ignored;
// only admins grant staff or admin roles.
func (s *UserService) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, custom_error.NewValidation("username", "is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, custom_error.NewValidation("password", "must be at least 6 characters long")
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        strings.TrimSpace(req.Email),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		Role:         roles.User,
		IsActive:     true,
	}
	if err := s.repository.PersistUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.repository.GetUser(ctx, id)
}

func (s *UserService) GetUsers(ctx context.Context) ([]models.User, error) {
	return s.repository.GetUsers(ctx)
}

// UpdateUser applies an admin's changes. Unchanged fields are skipped and a
// request without effective changes returns the user untouched.
func (s *UserService) UpdateUser(ctx context.Context, id int, req models.UpdateUserRequest) (*models.User, error) {
	user, err := s.repository.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := &models.UserChanges{}

	if req.Password != nil && *req.Password != "" {
		if len(*req.Password) < minPasswordLength {
			return nil, custom_error.NewValidation("password", "must be at least 6 characters long")
		}
		hash, err := s.hash(*req.Password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	if req.Role != nil && *req.Role != user.Role {
		if !req.Role.IsValid() {
			return nil, custom_error.NewValidation("role", "must be one of user, staff, admin")
		}
		role := req.Role.String()
		changes.Role = &role
	}

	if req.FirstName != nil && *req.FirstName != user.FirstName {
		changes.FirstName = req.FirstName
	}
	if req.LastName != nil && *req.LastName != user.LastName {
		changes.LastName = req.LastName
	}
	if req.IsActive != nil && *req.IsActive != user.IsActive {
		changes.IsActive = req.IsActive
	}

	if !changes.HasChanges() {
		return user, nil
	}

	if err := s.repository.UpdateUser(ctx, id, changes); err != nil {
		return nil, err
	}

	return s.repository.GetUser(ctx, id)
}
