package scheduling

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// Dates and times are stored as fixed-width strings so that lexical order
// is chronological order. Anything else is rejected on the way in.

func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func ValidTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

func ValidateDate(s string) error {
	if !ValidDate(s) {
		return httperr.ErrBusiness(httperr.CodeInvalidDate)
	}
	return nil
}

func ValidateTime(s string) error {
	if !ValidTime(s) {
		return httperr.ErrBusiness(httperr.CodeInvalidTime)
	}
	return nil
}

func ValidateSlot(date, hm string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	return ValidateTime(hm)
}
