package httperr

import "errors"

const (
	CodeValidation      = "validation_error"
	CodeDuplicateSlot   = "duplicate_slot"
	CodeNotFound        = "not_found"
	CodeSlotUnavailable = "slot_unavailable"
	CodeSlotLocked      = "slot_locked"
	CodeInvalidDate     = "invalid_date"
	CodeInvalidTime     = "invalid_time"
	CodeInvalidStatus   = "invalid_status"
	CodeInvalidState    = "invalid_state"
	CodeInvalidLayer    = "invalid_layer"
	CodeCheckoutOff     = "checkout_disabled"
)

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for other errors.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
