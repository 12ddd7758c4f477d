package custom_error

import "fmt"

// InsufficientStockError is returned when a requested, approved or disposed
// quantity exceeds what the asset currently has available.
type InsufficientStockError struct {
	AssetID   int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for asset %d: requested %d, available %d", e.AssetID, e.Requested, e.Available)
}

// InvalidStateError is returned when an operation targets a record that is
// not in the state the operation requires.
type InvalidStateError struct {
	Resource string
	ID       int
	State    string
	Action   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s %s %d in state %s", e.Action, e.Resource, e.ID, e.State)
}

type NotFoundError struct {
	Resource string
	ID       interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Resource, e.ID)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewNotFound(resource string, id interface{}) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewInUse reports a resource that cannot be removed or changed because other
// records still reference it.
func NewInUse(message string) *ForeignKeyViolationError {
	return &ForeignKeyViolationError{message: message, code: "23503"}
}
