package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id string) (*models.Service, error) {
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

func (r *CatalogGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *CatalogGormRepository) SaveService(ctx context.Context, svc *models.Service) error {
	return requireAffected(r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", svc.ID).
		Updates(map[string]any{
			"name":     svc.Name,
			"duration": svc.Duration,
			"price":    svc.Price,
		}))
}

// DeleteService leaves the service's slots and appointments in place.
func (r *CatalogGormRepository) DeleteService(ctx context.Context, id string) error {
	return requireAffected(r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Service{}))
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

func (r *CatalogGormRepository) ListSettings(ctx context.Context) ([]models.SalonSetting, error) {
	var settings []models.SalonSetting
	if err := r.db.WithContext(ctx).
		Order("setting_key ASC").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// GetSetting returns (nil, nil) for a key that was never set.
func (r *CatalogGormRepository) GetSetting(ctx context.Context, key string) (*models.SalonSetting, error) {
	var s models.SalonSetting
	ok, err := first(r.db.WithContext(ctx).Where("setting_key = ?", key), &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

func (r *CatalogGormRepository) UpsertSetting(ctx context.Context, key, value string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "setting_key"}},
			DoUpdates: clause.Assignments(map[string]any{"setting_value": value}),
		}).
		Create(&models.SalonSetting{Key: key, Value: value}).Error
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
