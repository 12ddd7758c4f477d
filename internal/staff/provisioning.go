package staff

import (
	"context"
	"errors"
	"strings"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/roles"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/security"

	"go.uber.org/zap"
)

// AccountStore is the part of the users repository provisioning writes to.
type AccountStore interface {
	GetUser(ctx context.Context, id int) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	PersistUser(ctx context.Context, user *models.User) error
	UpdateUser(ctx context.Context, id int, changes *models.UserChanges) error
}

type Linker interface {
	LinkUser(ctx context.Context, staffID, userID int) error
}

// Provisioner keeps a login account in step with each staff member.
type Provisioner struct {
	accounts        AccountStore
	links           Linker
	defaultPassword string
	logger          *zap.Logger
	hash            func(password string) (string, error)
	matches         func(hash, password string) bool
}

func NewProvisioner(accounts AccountStore, links Linker, defaultPassword string, logger *zap.Logger) *Provisioner {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provisioner{
		accounts:        accounts,
		links:           links,
		defaultPassword: defaultPassword,
		logger:          logger,
		hash:            security.HashPassword,
		matches:         security.CheckPassword,
	}
}

func accountRole(role metadata.StaffRole) roles.Role {
	if role == metadata.StaffRoleAdmin {
		return roles.Admin
	}
	return roles.Staff
}

// ProvisionAccount creates the member's account when none is linked and
// otherwise copies names, email, role and active flag onto it. password is
// optional: on create the default is used in its place, on sync it replaces
// the current password only when it differs.
func (p *Provisioner) ProvisionAccount(ctx context.Context, member *models.Staff, password string) (*models.User, error) {
	if member.UserID != nil {
		user, err := p.accounts.GetUser(ctx, *member.UserID)
		var notFound *custom_error.NotFoundError
		switch {
		case err == nil:
			return p.syncAccount(ctx, member, user, password)
		case !errors.As(err, &notFound):
			return nil, err
		}
	}

	return p.createAccount(ctx, member, password)
}

func (p *Provisioner) createAccount(ctx context.Context, member *models.Staff, password string) (*models.User, error) {
	username, err := p.username(ctx, member)
	if err != nil {
		return nil, err
	}

	if password == "" {
		password = p.defaultPassword
	}
	hash, err := p.hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        member.Email,
		FirstName:    member.FirstName,
		LastName:     member.LastName,
		PasswordHash: hash,
		Role:         accountRole(member.Role),
		IsActive:     member.IsActive,
	}
	if err := p.accounts.PersistUser(ctx, user); err != nil {
		return nil, err
	}
	if err := p.links.LinkUser(ctx, member.ID, user.ID); err != nil {
		return nil, err
	}

	userID := user.ID
	member.UserID = &userID

	p.logger.Info("staff account created",
		zap.Int("staff_id", member.ID),
		zap.Int("user_id", user.ID),
		zap.String("username", username),
	)

	return user, nil
}

// username prefers the employee id and falls back to
// <email local part>_<employee id> when the id is already taken.
func (p *Provisioner) username(ctx context.Context, member *models.Staff) (string, error) {
	taken, err := p.accounts.UsernameExists(ctx, member.EmployeeID)
	if err != nil {
		return "", err
	}
	if !taken {
		return member.EmployeeID, nil
	}

	prefix, _, _ := strings.Cut(member.Email, "@")
	return prefix + "_" + member.EmployeeID, nil
}

func (p *Provisioner) syncAccount(ctx context.Context, member *models.Staff, user *models.User, password string) (*models.User, error) {
	changes := &models.UserChanges{}

	if user.FirstName != member.FirstName {
		changes.FirstName = &member.FirstName
	}
	if user.LastName != member.LastName {
		changes.LastName = &member.LastName
	}
	if user.Email != member.Email {
		changes.Email = &member.Email
	}
	if role := accountRole(member.Role); user.Role != role {
		value := role.String()
		changes.Role = &value
	}
	if user.IsActive != member.IsActive {
		changes.IsActive = &member.IsActive
	}
	if password != "" && !p.matches(user.PasswordHash, password) {
		hash, err := p.hash(password)
		if err != nil {
			return nil, err
		}
		changes.PasswordHash = &hash
	}

	if !changes.HasChanges() {
		return user, nil
	}

	if err := p.accounts.UpdateUser(ctx, user.ID, changes); err != nil {
		return nil, err
	}

	p.logger.Info("staff account synced", zap.Int("staff_id", member.ID), zap.Int("user_id", user.ID))

	return p.accounts.GetUser(ctx, user.ID)
}
