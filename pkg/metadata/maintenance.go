package metadata

import "fmt"

type MaintenanceStatus string

const (
	MaintenanceStatusPending    MaintenanceStatus = "PENDING"
	MaintenanceStatusInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceStatusCompleted  MaintenanceStatus = "COMPLETED"
	MaintenanceStatusCancelled  MaintenanceStatus = "CANCELLED"
)

func NewMaintenanceStatus(value string) (MaintenanceStatus, error) {
	status := MaintenanceStatus(normalize(value))
	switch status {
	case MaintenanceStatusPending, MaintenanceStatusInProgress, MaintenanceStatusCompleted, MaintenanceStatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("invalid maintenance status: %s", value)
	}
}

// IsOpen reports whether the record still holds its asset in repair.
func (s MaintenanceStatus) IsOpen() bool {
	return s == MaintenanceStatusPending || s == MaintenanceStatusInProgress
}

func (s MaintenanceStatus) String() string {
	return string(s)
}

type MaintenanceType string

const (
	MaintenanceTypePreventive MaintenanceType = "PREVENTIVE"
	MaintenanceTypeCorrective MaintenanceType = "CORRECTIVE"
	MaintenanceTypeInspection MaintenanceType = "INSPECTION"
	MaintenanceTypeUpgrade    MaintenanceType = "UPGRADE"
)

func NewMaintenanceType(value string) (MaintenanceType, error) {
	maintenanceType := MaintenanceType(normalize(value))
	switch maintenanceType {
	case MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypeInspection, MaintenanceTypeUpgrade:
		return maintenanceType, nil
	default:
		return "", fmt.Errorf(
			"invalid maintenance type %q, only valid values are: %s, %s, %s, %s",
			value, MaintenanceTypePreventive, MaintenanceTypeCorrective, MaintenanceTypeInspection, MaintenanceTypeUpgrade,
		)
	}
}

// MaintenanceAction is the verb accepted by a maintenance transition.
type MaintenanceAction string

const (
	MaintenanceActionStart    MaintenanceAction = "start"
	MaintenanceActionComplete MaintenanceAction = "complete"
	MaintenanceActionCancel   MaintenanceAction = "cancel"
)

func NewMaintenanceAction(value string) (MaintenanceAction, error) {
	action := MaintenanceAction(lower(value))
	switch action {
	case MaintenanceActionStart, MaintenanceActionComplete, MaintenanceActionCancel:
		return action, nil
	default:
		return "", fmt.Errorf("invalid maintenance action: %s", value)
	}
}
