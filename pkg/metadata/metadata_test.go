package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAssetStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AssetStatus
		wantErr bool
	}{
		{"available", "AVAILABLE", AssetStatusAvailable, false},
		{"lowercase repair", "repair", AssetStatusRepair, false},
		{"padded disposed", "  disposed ", AssetStatusDisposed, false},
		{"unknown", "lost", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewAssetStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewMaintenanceStatus(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MaintenanceStatus
		wantErr bool
	}{
		{"spaced in progress", "in progress", MaintenanceStatusInProgress, false},
		{"dashed in progress", "in-progress", MaintenanceStatusInProgress, false},
		{"cancelled", "Cancelled", MaintenanceStatusCancelled, false},
		{"unknown", "paused", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewMaintenanceStatus(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaintenanceStatusIsOpen(t *testing.T) {
	assert.True(t, MaintenanceStatusPending.IsOpen())
	assert.True(t, MaintenanceStatusInProgress.IsOpen())
	assert.False(t, MaintenanceStatusCompleted.IsOpen())
	assert.False(t, MaintenanceStatusCancelled.IsOpen())
}

func TestNewDisposalReason(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid damaged", "damaged", false},
		{"valid uppercase LOST", "LOST", false},
		{"valid padded other", " other ", false},
		{"invalid stolen", "stolen", true},
		{"invalid empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDisposalReason(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewDisposalReason(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewMaintenanceAction(t *testing.T) {
	action, err := NewMaintenanceAction(" Complete ")
	assert.NoError(t, err)
	assert.Equal(t, MaintenanceActionComplete, action)

	_, err = NewMaintenanceAction("resume")
	assert.Error(t, err)
}

func TestNewMaintenanceType(t *testing.T) {
	mt, err := NewMaintenanceType("corrective")
	assert.NoError(t, err)
	assert.Equal(t, MaintenanceTypeCorrective, mt)

	_, err = NewMaintenanceType("cleaning")
	assert.Error(t, err)
}
