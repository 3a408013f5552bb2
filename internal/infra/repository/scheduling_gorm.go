package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SchedulingGormRepository struct {
	db *gorm.DB
}

func NewSchedulingGormRepository(db *gorm.DB) *SchedulingGormRepository {
	return &SchedulingGormRepository{db: db}
}

func (r *SchedulingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx scheduling.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SchedulingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

func notFound() error {
	return httperr.ErrBusiness(httperr.CodeNotFound)
}

// first runs q.First and maps "no row" to (false, nil).
func first(q *gorm.DB, dest any) (bool, error) {
	err := q.First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func create(q *gorm.DB, v any) error {
	err := q.Create(v).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeDuplicateSlot)
	}
	return err
}

func requireAffected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound()
	}
	return nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *SchedulingGormRepository) GetService(
	ctx context.Context,
	id string,
) (*models.Service, error) {

	var svc models.Service
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &svc)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound()
	}
	return &svc, nil
}

func (r *SchedulingGormRepository) ServiceExists(
	ctx context.Context,
	id string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Dates
// --------------------------------------------------

func (r *SchedulingGormRepository) FindDate(
	ctx context.Context,
	date string,
) (*models.AvailableDate, error) {

	var d models.AvailableDate
	ok, err := first(r.db.WithContext(ctx).Where("date = ?", date), &d)
	if err != nil || !ok {
		return nil, err
	}
	return &d, nil
}

func (r *SchedulingGormRepository) GetOrCreateDate(
	ctx context.Context,
	date string,
) (*models.AvailableDate, error) {

	d := models.AvailableDate{Date: date}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&d).Error; err != nil {
		return nil, fmt.Errorf("create date %s: %w", date, err)
	}

	// DoNothing leaves d.ID set to the id we generated, not the stored one.
	stored, err := r.FindDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, fmt.Errorf("date %s vanished after insert", date)
	}
	return stored, nil
}

func (r *SchedulingGormRepository) ListDates(
	ctx context.Context,
) ([]models.AvailableDate, error) {

	var dates []models.AvailableDate
	if err := r.db.WithContext(ctx).
		Order("date ASC").
		Find(&dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}

// --------------------------------------------------
// General pool
// --------------------------------------------------

func (r *SchedulingGormRepository) ListGeneralSlots(
	ctx context.Context,
	dateID string,
) ([]models.AvailableTime, error) {

	var slots []models.AvailableTime
	if err := r.db.WithContext(ctx).
		Where("date_id = ?", dateID).
		Order("time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) FindGeneralSlot(
	ctx context.Context,
	dateID string,
	hm string,
) (*models.AvailableTime, error) {

	var slot models.AvailableTime
	ok, err := first(r.db.WithContext(ctx).Where("date_id = ? AND time = ?", dateID, hm), &slot)
	if err != nil || !ok {
		return nil, err
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) GetGeneralSlot(
	ctx context.Context,
	id string,
) (*models.AvailableTime, error) {

	var slot models.AvailableTime
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound()
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) CreateGeneralSlot(
	ctx context.Context,
	slot *models.AvailableTime,
) error {
	return create(r.db.WithContext(ctx), slot)
}

func (r *SchedulingGormRepository) SetGeneralAvailability(
	ctx context.Context,
	id string,
	available bool,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.AvailableTime{}).
		Where("id = ?", id).
		Update("is_available", available))
}

func (r *SchedulingGormRepository) DeleteGeneralSlot(
	ctx context.Context,
	id string,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.AvailableTime{}))
}

// --------------------------------------------------
// Service overrides
// --------------------------------------------------

func (r *SchedulingGormRepository) ListServiceSlots(
	ctx context.Context,
	serviceID string,
	dateID string,
) ([]models.ServiceAvailability, error) {

	var slots []models.ServiceAvailability
	if err := r.db.WithContext(ctx).
		Where("service_id = ? AND date_id = ?", serviceID, dateID).
		Order("time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) ListServiceSlotsForService(
	ctx context.Context,
	serviceID string,
) ([]models.ServiceAvailability, error) {

	var slots []models.ServiceAvailability
	if err := r.db.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SchedulingGormRepository) FindServiceSlot(
	ctx context.Context,
	serviceID string,
	dateID string,
	hm string,
) (*models.ServiceAvailability, error) {

	var slot models.ServiceAvailability
	ok, err := first(r.db.WithContext(ctx).
		Where("service_id = ? AND date_id = ? AND time = ?", serviceID, dateID, hm), &slot)
	if err != nil || !ok {
		return nil, err
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) GetServiceSlot(
	ctx context.Context,
	id string,
) (*models.ServiceAvailability, error) {

	var slot models.ServiceAvailability
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &slot)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound()
	}
	return &slot, nil
}

func (r *SchedulingGormRepository) CreateServiceSlot(
	ctx context.Context,
	slot *models.ServiceAvailability,
) error {
	return create(r.db.WithContext(ctx), slot)
}

func (r *SchedulingGormRepository) SetServiceAvailability(
	ctx context.Context,
	id string,
	available bool,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.ServiceAvailability{}).
		Where("id = ?", id).
		Update("is_available", available))
}

func (r *SchedulingGormRepository) DeleteServiceSlot(
	ctx context.Context,
	id string,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.ServiceAvailability{}))
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *SchedulingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *SchedulingGormRepository) GetAppointment(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	ok, err := first(r.db.WithContext(ctx).Where("id = ?", id), &ap)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound()
	}
	return &ap, nil
}

func (r *SchedulingGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	id string,
	status string,
) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", id).
		Update("status", status))
}

func (r *SchedulingGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("date = ?", date).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// --------------------------------------------------
// Consumption journal
// --------------------------------------------------

func (r *SchedulingGormRepository) RecordConsumption(
	ctx context.Context,
	c *models.SlotConsumption,
) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *SchedulingGormRepository) ListUnjournaledAppointments(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM slot_consumptions sc WHERE sc.appointment_id = appointments.id)").
		Order("created_at ASC").
		Limit(limit).
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

// Compile-time check
var _ scheduling.Repository = (*SchedulingGormRepository)(nil)
