package db

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var defaultServices = []models.Service{
	{Name: "Corte Feminino", Duration: "45min", Price: 80},
	{Name: "Escova e Prancha", Duration: "60min", Price: 60},
	{Name: "Coloração", Duration: "120min", Price: 150},
	{Name: "Manicure", Duration: "30min", Price: 35},
	{Name: "Pedicure", Duration: "45min", Price: 45},
	{Name: "Sobrancelha", Duration: "20min", Price: 25},
}

var defaultSettings = map[string]string{
	"salon_address": "Rua das Flores, 123 - Centro, Recife - PE",
	"about_me_text": "Profissional especializada em beleza e bem-estar.",
	"pix_enabled":   "true",
	"card_enabled":  "true",
	"cash_enabled":  "true",
	"pix_key":       "000.000.000-00",
	"pix_key_type":  "cpf",
}

// Seed fills an empty database with the admin account, the default
// services and the salon settings. Existing rows are left alone.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	email := strings.ToLower(strings.TrimSpace(adminEmail))

	var admin models.User
	err := db.Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}

		admin = models.User{
			Name:         "Administrador do Salon",
			Email:        email,
			PasswordHash: string(hashed),
			Role:         "admin",
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		logger.Log.Info("admin user seeded", zap.String("email", email))
	} else if err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		services := make([]models.Service, len(defaultServices))
		copy(services, defaultServices)
		if err := db.Create(&services).Error; err != nil {
			return fmt.Errorf("seed services: %w", err)
		}
		logger.SLog.Infof("seeded %d default services", len(services))
	}

	for key, value := range defaultSettings {
		setting := models.SalonSetting{Key: key, Value: value}
		if err := db.Where("setting_key = ?", key).FirstOrCreate(&setting).Error; err != nil {
			return fmt.Errorf("seed setting %s: %w", key, err)
		}
	}

	return nil
}
