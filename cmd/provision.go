package cmd

import (
	"errors"
	"fmt"

	"github.com/PrinceRuselBStaMaria/Rezo/internal/repository"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/staff"
	"github.com/PrinceRuselBStaMaria/Rezo/internal/users"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newProvisionCmd() *cobra.Command {
	provisionCmd := &cobra.Command{
		Use:   "provision",
		Short: "Create or sync the login account of a staff member.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			employeeID, _ := cmd.Flags().GetString("employee-id")
			if employeeID == "" {
				return errors.New("--employee-id is required")
			}
			password, _ := cmd.Flags().GetString("password")

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.logger.Sync()

			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewRepository(db)
			staffRepo := staff.NewRepository(repo)
			provisioner := staff.NewProvisioner(users.NewRepository(repo), staffRepo, a.cfg.Auth.DefaultStaffPassword, a.logger.Named("staff"))

			provisioned, err := staff.NewStaffService(staffRepo, provisioner).ProvisionByEmployeeID(cmd.Context(), employeeID, password)
			if err != nil {
				return fmt.Errorf("provision %s: %w", employeeID, err)
			}

			a.logger.Info("staff account ready",
				zap.String("employee_id", employeeID),
				zap.String("username", provisioned.Username),
			)
			return nil
		},
	}
	provisionCmd.Flags().String("employee-id", "", "Employee ID of the staff member")
	provisionCmd.Flags().String("password", "", "Password to set; defaults to DEFAULT_STAFF_PASSWORD for new accounts")

	return provisionCmd
}
