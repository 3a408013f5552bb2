package catalog

import (
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const (
	SettingAddress    = "salon_address"
	SettingAbout      = "about_me_text"
	SettingPixEnabled = "pix_enabled"
	SettingCard       = "card_enabled"
	SettingCash       = "cash_enabled"
	SettingPixKey     = "pix_key"
	SettingPixKeyType = "pix_key_type"
)

var knownSettings = map[string]bool{
	SettingAddress:    true,
	SettingAbout:      true,
	SettingPixEnabled: true,
	SettingCard:       true,
	SettingCash:       true,
	SettingPixKey:     true,
	SettingPixKeyType: true,
}

var flagSettings = map[string]bool{
	SettingPixEnabled: true,
	SettingCard:       true,
	SettingCash:       true,
}

var pixKeyTypes = map[string]bool{
	"cpf":    true,
	"cnpj":   true,
	"email":  true,
	"phone":  true,
	"random": true,
}

// ValidateSettings rejects unknown keys and malformed flag values.
func ValidateSettings(in map[string]string) error {
	if len(in) == 0 {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	for k, v := range in {
		if !knownSettings[k] {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		if flagSettings[k] && v != "true" && v != "false" {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		if k == SettingPixKeyType && !pixKeyTypes[strings.ToLower(v)] {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
	}
	return nil
}

// Enabled reads a flag setting; anything but "true" is off.
func Enabled(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// ValidateService checks the fields an admin must provide for a service.
func ValidateService(name string, price float64) error {
	if strings.TrimSpace(name) == "" || price < 0 {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}
	return nil
}
