package slots

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Mutator keeps the general pool and the per-service overrides consistent.
// A slot moved into a service leaves the general pool; a slot removed from
// a service goes back to it.
type Mutator struct {
	repo  scheduling.Repository
	audit *audit.Dispatcher
}

func NewMutator(repo scheduling.Repository, audit *audit.Dispatcher) *Mutator {
	return &Mutator{repo: repo, audit: audit}
}

// Actor identifies the admin behind a change, for the audit trail.
type Actor struct {
	UserID string
}

// ======================================================
// GENERAL POOL
// ======================================================

func (m *Mutator) AddGeneralSlot(
	ctx context.Context,
	actor Actor,
	date string,
	hm string,
) (*models.AvailableTime, error) {

	if err := scheduling.ValidateSlot(date, hm); err != nil {
		return nil, err
	}

	var created *models.AvailableTime

	err := m.repo.Transaction(ctx, func(tx scheduling.Repository) error {
		d, err := tx.GetOrCreateDate(ctx, date)
		if err != nil {
			return err
		}

		existing, err := tx.FindGeneralSlot(ctx, d.ID, hm)
		if err != nil {
			return err
		}
		if existing != nil {
			return httperr.ErrBusiness(httperr.CodeDuplicateSlot)
		}

		slot := &models.AvailableTime{DateID: d.ID, Time: hm, IsAvailable: true}
		if err := tx.CreateGeneralSlot(ctx, slot); err != nil {
			return err
		}
		created = slot
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(actor.UserID),
		Action:   "general_slot_added",
		Entity:   "available_time",
		EntityID: &created.ID,
		Metadata: map[string]string{"date": date, "time": hm},
	})

	return created, nil
}

func (m *Mutator) RemoveGeneralSlot(
	ctx context.Context,
	actor Actor,
	slotID string,
) error {

	slot, err := m.repo.GetGeneralSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if err := m.repo.DeleteGeneralSlot(ctx, slotID); err != nil {
		return err
	}

	m.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(actor.UserID),
		Action:   "general_slot_removed",
		Entity:   "available_time",
		EntityID: &slotID,
		Metadata: map[string]string{"date_id": slot.DateID, "time": slot.Time},
	})
	return nil
}

// ListGeneralSlots is the admin view of a day, unavailable rows included.
func (m *Mutator) ListGeneralSlots(
	ctx context.Context,
	date string,
) ([]models.AvailableTime, error) {

	if err := scheduling.ValidateDate(date); err != nil {
		return nil, err
	}

	d, err := m.repo.FindDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []models.AvailableTime{}, nil
	}
	return m.repo.ListGeneralSlots(ctx, d.ID)
}

// ======================================================
// SERVICE OVERRIDES
// ======================================================

// AddServiceSlot moves (date, time) out of the general pool into the
// service's own calendar.
func (m *Mutator) AddServiceSlot(
	ctx context.Context,
	actor Actor,
	serviceID string,
	date string,
	hm string,
) (*models.ServiceAvailability, error) {

	if err := scheduling.ValidateSlot(date, hm); err != nil {
		return nil, err
	}

	var created *models.ServiceAvailability
	var movedFrom string

	err := m.repo.Transaction(ctx, func(tx scheduling.Repository) error {
		ok, err := tx.ServiceExists(ctx, serviceID)
		if err != nil {
			return err
		}
		if !ok {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		d, err := tx.GetOrCreateDate(ctx, date)
		if err != nil {
			return err
		}

		existing, err := tx.FindServiceSlot(ctx, serviceID, d.ID, hm)
		if err != nil {
			return err
		}
		if existing != nil {
			return httperr.ErrBusiness(httperr.CodeDuplicateSlot)
		}

		slot := &models.ServiceAvailability{
			ServiceID:   serviceID,
			DateID:      d.ID,
			Time:        hm,
			IsAvailable: true,
		}
		if err := tx.CreateServiceSlot(ctx, slot); err != nil {
			return err
		}
		created = slot

		general, err := tx.FindGeneralSlot(ctx, d.ID, hm)
		if err != nil {
			return err
		}
		if general != nil {
			if err := tx.DeleteGeneralSlot(ctx, general.ID); err != nil {
				return err
			}
			movedFrom = general.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(actor.UserID),
		Action:   "service_slot_added",
		Entity:   "service_availability",
		EntityID: &created.ID,
		Metadata: map[string]string{
			"service_id":         serviceID,
			"date":               date,
			"time":               hm,
			"moved_from_general": movedFrom,
		},
	})

	return created, nil
}

// RemoveServiceSlot deletes the override and hands the time back to the
// general pool unless a general row already exists there.
func (m *Mutator) RemoveServiceSlot(
	ctx context.Context,
	actor Actor,
	serviceID string,
	slotID string,
) error {

	var restored bool

	err := m.repo.Transaction(ctx, func(tx scheduling.Repository) error {
		slot, err := tx.GetServiceSlot(ctx, slotID)
		if err != nil {
			return err
		}
		if slot.ServiceID != serviceID {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		if err := tx.DeleteServiceSlot(ctx, slot.ID); err != nil {
			return err
		}

		general, err := tx.FindGeneralSlot(ctx, slot.DateID, slot.Time)
		if err != nil {
			return err
		}
		if general != nil {
			return nil
		}

		restored = true
		return tx.CreateGeneralSlot(ctx, &models.AvailableTime{
			DateID:      slot.DateID,
			Time:        slot.Time,
			IsAvailable: true,
		})
	})
	if err != nil {
		return err
	}

	m.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(actor.UserID),
		Action:   "service_slot_removed",
		Entity:   "service_availability",
		EntityID: &slotID,
		Metadata: map[string]any{"service_id": serviceID, "restored_to_general": restored},
	})
	return nil
}

func (m *Mutator) ListServiceSlots(
	ctx context.Context,
	serviceID string,
	date string,
) ([]models.ServiceAvailability, error) {

	if err := scheduling.ValidateDate(date); err != nil {
		return nil, err
	}

	d, err := m.repo.FindDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return []models.ServiceAvailability{}, nil
	}
	return m.repo.ListServiceSlots(ctx, serviceID, d.ID)
}

// ======================================================
// TOGGLE
// ======================================================

// ToggleAvailability sets is_available on one row of one layer in place.
func (m *Mutator) ToggleAvailability(
	ctx context.Context,
	actor Actor,
	layer scheduling.Layer,
	slotID string,
	available bool,
) error {

	var err error
	switch layer {
	case scheduling.LayerGeneral:
		err = m.repo.SetGeneralAvailability(ctx, slotID, available)
	case scheduling.LayerService:
		err = m.repo.SetServiceAvailability(ctx, slotID, available)
	default:
		err = httperr.ErrBusiness(httperr.CodeInvalidLayer)
	}
	if err != nil {
		return err
	}

	m.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(actor.UserID),
		Action:   "slot_toggled",
		Entity:   string(layer),
		EntityID: &slotID,
		Metadata: map[string]bool{"is_available": available},
	})
	return nil
}

// ToggleGeneralByTime is the admin shortcut that addresses a general row
// by its date and time instead of its id.
func (m *Mutator) ToggleGeneralByTime(
	ctx context.Context,
	actor Actor,
	date string,
	hm string,
	available bool,
) error {

	if err := scheduling.ValidateSlot(date, hm); err != nil {
		return err
	}

	d, err := m.repo.FindDate(ctx, date)
	if err != nil {
		return err
	}
	if d == nil {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	slot, err := m.repo.FindGeneralSlot(ctx, d.ID, hm)
	if err != nil {
		return err
	}
	if slot == nil {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return m.ToggleAvailability(ctx, actor, scheduling.LayerGeneral, slot.ID, available)
}

// ======================================================
// CONSUME
// ======================================================

// ConsumeSlot switches off the slot a booking took: the service's own row
// when there is one, else the general row. Finding neither is not an error;
// it is logged and reported as a nil Consumption.
func (m *Mutator) ConsumeSlot(
	ctx context.Context,
	serviceID string,
	date string,
	hm string,
) (*scheduling.Consumption, error) {

	d, err := m.repo.FindDate(ctx, date)
	if err != nil {
		return nil, err
	}

	if d != nil {
		specific, err := m.repo.FindServiceSlot(ctx, serviceID, d.ID, hm)
		if err != nil {
			return nil, err
		}
		if specific != nil {
			if err := m.repo.SetServiceAvailability(ctx, specific.ID, false); err != nil {
				return nil, err
			}
			return &scheduling.Consumption{Layer: scheduling.LayerService, SlotID: specific.ID}, nil
		}

		general, err := m.repo.FindGeneralSlot(ctx, d.ID, hm)
		if err != nil {
			return nil, err
		}
		if general != nil {
			if err := m.repo.SetGeneralAvailability(ctx, general.ID, false); err != nil {
				return nil, err
			}
			return &scheduling.Consumption{Layer: scheduling.LayerGeneral, SlotID: general.ID}, nil
		}
	}

	logger.Log.Warn("no slot row to consume",
		zap.String("service_id", serviceID),
		zap.String("date", date),
		zap.String("time", hm),
	)
	return nil, nil
}
