package users

import (
	"context"
	"fmt"
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var userColumns = []interface{}{
	"id", "username", "email", "first_name", "last_name", "password_hash", "role", "is_active", "last_seen_at", "created_at",
}

type UserRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *UserRepository {
	return &UserRepository{repository: r}
}

func (r *UserRepository) PersistUser(ctx context.Context, user *models.User) error {
	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"username":      user.Username,
			"email":         user.Email,
			"first_name":    user.FirstName,
			"last_name":     user.LastName,
			"password_hash": user.PasswordHash,
			"role":          user.Role.String(),
			"is_active":     user.IsActive,
		}).
		Returning("id", "created_at")

	var inserted struct {
		ID        int       `db:"id"`
		CreatedAt time.Time `db:"created_at"`
	}
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return fmt.Errorf("failed to insert user: %w", custom_error.TranslateDBError(err))
	}

	user.ID = inserted.ID
	user.CreatedAt = inserted.CreatedAt

	return nil
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	query := r.repository.GoquDBWrapper.From("users").
		Select(userColumns...).
		Order(goqu.I("username").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &users); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id int) (*models.User, error) {
	user, err := r.findOne(ctx, goqu.Ex{"id": id})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, custom_error.NewNotFound("user", id)
	}
	return user, nil
}

// GetUserByUsername returns nil without an error when no user has the name.
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, goqu.Ex{"username": username})
}

func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int

	_, err := r.repository.GoquDBWrapper.From("users").
		Select(goqu.COUNT("*")).
		Where(goqu.Ex{"username": username}).
		Executor().ScanValContext(ctx, &count)
	if err != nil {
		return false, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return count > 0, nil
}

func (r *UserRepository) findOne(ctx context.Context, where goqu.Ex) (*models.User, error) {
	var user models.User

	found, err := r.repository.GoquDBWrapper.From("users").
		Select(userColumns...).
		Where(where).
		Executor().ScanStructContext(ctx, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id int, changes *models.UserChanges) error {
	record := goqu.Record{}
	if changes.FirstName != nil {
		record["first_name"] = *changes.FirstName
	}
	if changes.LastName != nil {
		record["last_name"] = *changes.LastName
	}
	if changes.Email != nil {
		record["email"] = *changes.Email
	}
	if changes.PasswordHash != nil {
		record["password_hash"] = *changes.PasswordHash
	}
	if changes.Role != nil {
		record["role"] = *changes.Role
	}
	if changes.IsActive != nil {
		record["is_active"] = *changes.IsActive
	}

	result, err := r.repository.GoquDBWrapper.Update("users").
		Set(record).
		Where(goqu.Ex{"id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", custom_error.TranslateDBError(err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return custom_error.NewNotFound("user", id)
	}

	return nil
}

func (r *UserRepository) TouchLastSeen(ctx context.Context, userID int) error {
	_, err := r.repository.GoquDBWrapper.Update("users").
		Set(goqu.Record{"last_seen_at": goqu.L("NOW()")}).
		Where(goqu.Ex{"id": userID}).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to update last seen: %w", err)
	}

	return nil
}
