package appointment

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ValidateRequest checks the four booking fields are present.
func ValidateRequest(clientName, serviceID, date, time string) error {
	for _, v := range []string{clientName, serviceID, date, time} {
		if strings.TrimSpace(v) == "" {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
	}
	return nil
}

func New(clientName, clientPhone, serviceID, date, time string) *models.Appointment {
	return &models.Appointment{
		ClientName:  strings.TrimSpace(clientName),
		ClientPhone: strings.TrimSpace(clientPhone),
		ServiceID:   serviceID,
		Date:        date,
		Time:        time,
		Status:      string(InitialStatus()),
	}
}

func Transition(ap *models.Appointment, to Status) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}
	ap.Status = string(to)
	return nil
}
