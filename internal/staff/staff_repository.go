package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

var staffColumns = []interface{}{
	"id", "first_name", "last_name", "email", "role", "department", "phone",
	"employee_id", "date_joined", "is_active", "user_id",
}

type StaffRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *StaffRepository {
	return &StaffRepository{repository: r}
}

func (r *StaffRepository) GetStaffMembers(ctx context.Context) ([]models.Staff, error) {
	members := []models.Staff{}

	query := r.repository.GoquDBWrapper.From("staff").
		Select(staffColumns...).
		Order(goqu.I("last_name").Asc(), goqu.I("first_name").Asc())

	if err := query.Executor().ScanStructsContext(ctx, &members); err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}

	return members, nil
}

func (r *StaffRepository) GetStaff(ctx context.Context, id int) (*models.Staff, error) {
	return r.findOne(ctx, goqu.Ex{"id": id}, id)
}

func (r *StaffRepository) GetStaffByEmployeeID(ctx context.Context, employeeID string) (*models.Staff, error) {
	return r.findOne(ctx, goqu.Ex{"employee_id": employeeID}, employeeID)
}

func (r *StaffRepository) findOne(ctx context.Context, where goqu.Ex, key interface{}) (*models.Staff, error) {
	var member models.Staff

	found, err := r.repository.GoquDBWrapper.From("staff").
		Select(staffColumns...).
		Where(where).
		Executor().ScanStructContext(ctx, &member)
	if err != nil {
		return nil, fmt.Errorf("unable to execute SQL: %w", err)
	}
	if !found {
		return nil, custom_error.NewNotFound("staff member", key)
	}

	return &member, nil
}

func (r *StaffRepository) PersistStaff(ctx context.Context, member *models.Staff) error {
	query := r.repository.GoquDBWrapper.Insert("staff").
		Rows(goqu.Record{
			"first_name":  member.FirstName,
			"last_name":   member.LastName,
			"email":       member.Email,
			"role":        string(member.Role),
			"department":  member.Department,
			"phone":       member.Phone,
			"employee_id": member.EmployeeID,
			"is_active":   member.IsActive,
		}).
		Returning("id", "date_joined")

	var inserted struct {
		ID         int       `db:"id"`
		DateJoined time.Time `db:"date_joined"`
	}
	if _, err := query.Executor().ScanStructContext(ctx, &inserted); err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	member.ID = inserted.ID
	member.DateJoined = inserted.DateJoined

	return nil
}

func (r *StaffRepository) UpdateStaff(ctx context.Context, id int, updates map[string]interface{}) error {
	result, err := r.repository.GoquDBWrapper.Update("staff").
		Set(goqu.Record(updates)).
		Where(goqu.Ex{"id": id}).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return custom_error.NewNotFound("staff member", id)
	}

	return nil
}

// LinkUser records the login account provisioned for a staff member.
func (r *StaffRepository) LinkUser(ctx context.Context, staffID, userID int) error {
	_, err := r.repository.GoquDBWrapper.Update("staff").
		Set(goqu.Record{"user_id": userID}).
		Where(goqu.Ex{"id": staffID}).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("unable to execute SQL: %w", custom_error.TranslateDBError(err))
	}

	return nil
}
