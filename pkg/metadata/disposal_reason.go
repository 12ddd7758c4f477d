package metadata

import "fmt"

type DisposalReason string

const (
	DisposalReasonDamaged  DisposalReason = "DAMAGED"
	DisposalReasonLost     DisposalReason = "LOST"
	DisposalReasonObsolete DisposalReason = "OBSOLETE"
	DisposalReasonExpired  DisposalReason = "EXPIRED"
	DisposalReasonOther    DisposalReason = "OTHER"
)

func (r DisposalReason) IsValid() bool {
	switch r {
	case DisposalReasonDamaged, DisposalReasonLost, DisposalReasonObsolete, DisposalReasonExpired, DisposalReasonOther:
		return true
	default:
		return false
	}
}

func NewDisposalReason(value string) (DisposalReason, error) {
	reason := DisposalReason(normalize(value))
	if !reason.IsValid() {
		return reason, fmt.Errorf(
			"value not valid, only valid values are: %s, %s, %s, %s, %s",
			DisposalReasonDamaged, DisposalReasonLost, DisposalReasonObsolete, DisposalReasonExpired, DisposalReasonOther,
		)
	}

	return reason, nil
}
