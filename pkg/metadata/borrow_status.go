package metadata

import "fmt"

type BorrowStatus string

const (
	BorrowStatusPending  BorrowStatus = "PENDING"
	BorrowStatusApproved BorrowStatus = "APPROVED"
	BorrowStatusRejected BorrowStatus = "REJECTED"
)

func NewBorrowStatus(value string) (BorrowStatus, error) {
	status := BorrowStatus(normalize(value))
	switch status {
	case BorrowStatusPending, BorrowStatusApproved, BorrowStatusRejected:
		return status, nil
	default:
		return "", fmt.Errorf("invalid borrow status: %s", value)
	}
}

func (s BorrowStatus) String() string {
	return string(s)
}
