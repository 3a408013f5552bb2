package appointment

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.ErrBusiness(httperr.CodeInvalidStatus)
}

// ===============================
// Validations
// ===============================

// CanTransition: pending -> confirmed | cancelled, confirmed -> cancelled.
// Cancelled is final.
func CanTransition(from, to Status) error {
	switch from {
	case StatusPending:
		if to == StatusConfirmed || to == StatusCancelled {
			return nil
		}
	case StatusConfirmed:
		if to == StatusCancelled {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func InitialStatus() Status {
	return StatusPending
}
