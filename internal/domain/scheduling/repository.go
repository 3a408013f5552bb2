package scheduling

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository is the persistent store behind availability and booking.
//
// Find* lookups return (nil, nil) when nothing matches. Get*, Set* and
// Delete* by id fail with the not_found business error.
type Repository interface {
	// -------- Services --------
	GetService(ctx context.Context, id string) (*models.Service, error)
	ServiceExists(ctx context.Context, id string) (bool, error)

	// -------- Dates --------
	FindDate(ctx context.Context, date string) (*models.AvailableDate, error)
	GetOrCreateDate(ctx context.Context, date string) (*models.AvailableDate, error)
	ListDates(ctx context.Context) ([]models.AvailableDate, error)

	// -------- General pool --------
	ListGeneralSlots(ctx context.Context, dateID string) ([]models.AvailableTime, error)
	FindGeneralSlot(ctx context.Context, dateID, hm string) (*models.AvailableTime, error)
	GetGeneralSlot(ctx context.Context, id string) (*models.AvailableTime, error)
	CreateGeneralSlot(ctx context.Context, slot *models.AvailableTime) error
	SetGeneralAvailability(ctx context.Context, id string, available bool) error
	DeleteGeneralSlot(ctx context.Context, id string) error

	// -------- Service overrides --------
	ListServiceSlots(ctx context.Context, serviceID, dateID string) ([]models.ServiceAvailability, error)
	ListServiceSlotsForService(ctx context.Context, serviceID string) ([]models.ServiceAvailability, error)
	FindServiceSlot(ctx context.Context, serviceID, dateID, hm string) (*models.ServiceAvailability, error)
	GetServiceSlot(ctx context.Context, id string) (*models.ServiceAvailability, error)
	CreateServiceSlot(ctx context.Context, slot *models.ServiceAvailability) error
	SetServiceAvailability(ctx context.Context, id string, available bool) error
	DeleteServiceSlot(ctx context.Context, id string) error

	// -------- Appointments --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status string) error
	ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error)

	// -------- Consumption journal --------
	RecordConsumption(ctx context.Context, c *models.SlotConsumption) error
	ListUnjournaledAppointments(ctx context.Context, limit int) ([]models.Appointment, error)

	Transaction(ctx context.Context, fn func(tx Repository) error) error
}
