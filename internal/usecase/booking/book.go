package booking

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/slots"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	ClientName  string
	ClientPhone string
	ServiceID   string
	Date        string
	Time        string
}

// Notifier is told about every booking after it is committed.
type Notifier interface {
	BookingCreated(ctx context.Context, ap *models.Appointment, svc *models.Service) error
}

// ======================================================
// USE CASE
// ======================================================

type BookAppointment struct {
	repo     scheduling.Repository
	locker   lock.Locker
	audit    *audit.Dispatcher
	notifier Notifier
	today    timezone.Clock
}

func NewBookAppointment(
	repo scheduling.Repository,
	locker lock.Locker,
	audit *audit.Dispatcher,
	notifier Notifier,
	today timezone.Clock,
) *BookAppointment {
	return &BookAppointment{
		repo:     repo,
		locker:   locker,
		audit:    audit,
		notifier: notifier,
		today:    today,
	}
}

func slotKey(date, hm string) string {
	return "slot:" + date + ":" + hm
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookAppointment) Execute(
	ctx context.Context,
	in BookInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields and formats
	// --------------------------------------------------
	if err := domain.ValidateRequest(in.ClientName, in.ServiceID, in.Date, in.Time); err != nil {
		return nil, err
	}
	if err := scheduling.ValidateSlot(in.Date, in.Time); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. One writer per (date, time)
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, slotKey(in.Date, in.Time))
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			logger.Log.Info("slot busy", zap.String("date", in.Date), zap.String("time", in.Time))
			return nil, httperr.ErrBusiness(httperr.CodeSlotLocked)
		}
		return nil, fmt.Errorf("acquire slot lock: %w", err)
	}
	defer release()

	// --------------------------------------------------
	// 3. Re-check, create, consume and journal atomically
	// --------------------------------------------------
	var (
		created  *models.Appointment
		consumed *scheduling.Consumption
	)

	err = uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {
		// Past days are never offered, whatever rows they still hold.
		if in.Date < uc.today() {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		times, err := availability.NewResolver(tx, uc.today).ResolveTimes(ctx, in.ServiceID, in.Date)
		if err != nil {
			return err
		}
		if !slices.Contains(times, in.Time) {
			return httperr.ErrBusiness(httperr.CodeSlotUnavailable)
		}

		ap := domain.New(in.ClientName, in.ClientPhone, in.ServiceID, in.Date, in.Time)
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		c, err := slots.NewMutator(tx, nil).ConsumeSlot(ctx, in.ServiceID, in.Date, in.Time)
		if err != nil {
			return err
		}

		if err := tx.RecordConsumption(ctx, journalEntry(ap.ID, c)); err != nil {
			return err
		}

		created = ap
		consumed = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Audit + notification
	// --------------------------------------------------
	meta := map[string]string{
		"service_id": in.ServiceID,
		"date":       in.Date,
		"time":       in.Time,
	}
	if consumed != nil {
		meta["layer"] = string(consumed.Layer)
		meta["slot_id"] = consumed.SlotID
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &created.ID,
		Metadata: meta,
	})

	uc.notify(ctx, created)

	return created, nil
}

// notify runs after commit; a failed notification never fails the booking.
// Callers wanting it off the request path wrap the notifier in notify.Async.
func (uc *BookAppointment) notify(ctx context.Context, ap *models.Appointment) {
	if uc.notifier == nil {
		return
	}

	svc, err := uc.repo.GetService(ctx, ap.ServiceID)
	if err != nil {
		svc = &models.Service{ID: ap.ServiceID}
	}
	if err := uc.notifier.BookingCreated(ctx, ap, svc); err != nil {
		logger.Log.Warn("booking notification failed", zap.String("appointment_id", ap.ID), zap.Error(err))
	}
}

func journalEntry(appointmentID string, c *scheduling.Consumption) *models.SlotConsumption {
	if c == nil {
		return &models.SlotConsumption{
			AppointmentID: appointmentID,
			Outcome:       models.ConsumptionMissing,
		}
	}
	return &models.SlotConsumption{
		AppointmentID: appointmentID,
		Layer:         string(c.Layer),
		SlotID:        c.SlotID,
		Outcome:       models.ConsumptionConsumed,
	}
}
