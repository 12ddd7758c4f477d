package staff

import (
	"context"
	"strings"

	custom_error "github.com/PrinceRuselBStaMaria/Rezo/pkg/errors"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/metadata"
	"github.com/PrinceRuselBStaMaria/Rezo/pkg/models"
)

type Repository interface {
	Linker
	GetStaffMembers(ctx context.Context) ([]models.Staff, error)
	GetStaff(ctx context.Context, id int) (*models.Staff, error)
	GetStaffByEmployeeID(ctx context.Context, employeeID string) (*models.Staff, error)
	PersistStaff(ctx context.Context, member *models.Staff) error
	UpdateStaff(ctx context.Context, id int, updates map[string]interface{}) error
}

type StaffService struct {
	repository  Repository
	provisioner *Provisioner
}

func NewStaffService(r Repository, p *Provisioner) *StaffService {
	return &StaffService{
		repository:  r,
		provisioner: p,
	}
}

// Provisioned is a staff member together with the username of the linked
// account.
type Provisioned struct {
	Staff    *models.Staff `json:"staff"`
	Username string        `json:"username"`
}

func (s *StaffService) GetStaffMembers(ctx context.Context) ([]models.Staff, error) {
	return s.repository.GetStaffMembers(ctx)
}

func (s *StaffService) GetStaff(ctx context.Context, id int) (*models.Staff, error) {
	return s.repository.GetStaff(ctx, id)
}

func (s *StaffService) CreateStaff(ctx context.Context, req models.CreateStaffRequest) (*Provisioned, error) {
	role, err := metadata.NewStaffRole(req.Role)
	if err != nil {
		return nil, custom_error.NewValidation("role", err.Error())
	}

	employeeID := strings.TrimSpace(req.EmployeeID)
	if employeeID == "" {
		return nil, custom_error.NewValidation("employee_id", "is required")
	}

	member := &models.Staff{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.ToLower(strings.TrimSpace(req.Email)),
		Role:       role,
		Department: req.Department,
		Phone:      req.Phone,
		EmployeeID: employeeID,
		IsActive:   true,
	}
	if err := s.repository.PersistStaff(ctx, member); err != nil {
		return nil, err
	}

	user, err := s.provisioner.ProvisionAccount(ctx, member, req.Password)
	if err != nil {
		return nil, err
	}

	return &Provisioned{Staff: member, Username: user.Username}, nil
}

func (s *StaffService) UpdateStaff(ctx context.Context, id int, req models.UpdateStaffRequest) (*Provisioned, error) {
	updates := make(map[string]interface{})

	if req.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*req.LastName)
	}
	if req.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Role != nil {
		role, err := metadata.NewStaffRole(*req.Role)
		if err != nil {
			return nil, custom_error.NewValidation("role", err.Error())
		}
		updates["role"] = string(role)
	}
	if req.Department != nil {
		updates["department"] = *req.Department
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.repository.UpdateStaff(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	member, err := s.repository.GetStaff(ctx, id)
	if err != nil {
		return nil, err
	}

	user, err := s.provisioner.ProvisionAccount(ctx, member, req.Password)
	if err != nil {
		return nil, err
	}

	return &Provisioned{Staff: member, Username: user.Username}, nil
}

// ProvisionByEmployeeID re-runs provisioning for one member. The CLI uses it
// to repair or create accounts outside the API.
func (s *StaffService) ProvisionByEmployeeID(ctx context.Context, employeeID, password string) (*Provisioned, error) {
	member, err := s.repository.GetStaffByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	user, err := s.provisioner.ProvisionAccount(ctx, member, password)
	if err != nil {
		return nil, err
	}

	return &Provisioned{Staff: member, Username: user.Username}, nil
}
