package catalog

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Repository covers the salon's services and its key/value settings.
type Repository interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	SaveService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error

	ListSettings(ctx context.Context) ([]models.SalonSetting, error)
	GetSetting(ctx context.Context, key string) (*models.SalonSetting, error)
	UpsertSetting(ctx context.Context, key, value string) error
}
