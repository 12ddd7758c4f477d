package metadata

import "fmt"

// AssetStatus is the cached availability state stored on an asset row.
// It is recomputed from the ledger on every mutation and never read back as
// a source of truth.
type AssetStatus string

const (
	AssetStatusAvailable AssetStatus = "AVAILABLE"
	AssetStatusBorrowed  AssetStatus = "BORROWED"
	AssetStatusRepair    AssetStatus = "REPAIR"
	AssetStatusDisposed  AssetStatus = "DISPOSED"
)

func NewAssetStatus(value string) (AssetStatus, error) {
	status := AssetStatus(normalize(value))
	if !status.isValid() {
		return "", fmt.Errorf("invalid asset status: %s", value)
	}
	return status, nil
}

func (s AssetStatus) isValid() bool {
	switch s {
	case AssetStatusAvailable, AssetStatusBorrowed, AssetStatusRepair, AssetStatusDisposed:
		return true
	default:
		return false
	}
}

func (s AssetStatus) String() string {
	return string(s)
}
