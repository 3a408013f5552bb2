package payment

import (
	"context"
	"fmt"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// preferenceCreator is the part of the Mercado Pago client used here.
type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type Link struct {
	PreferenceID string `json:"preference_id"`
	URL          string `json:"url"`
}

// Checkout creates a Mercado Pago payment link for an appointment. It is
// only offered while the card_enabled setting is on and a token exists.
type Checkout struct {
	prefs        preferenceCreator
	appointments scheduling.Repository
	catalog      catalog.Repository
}

// NewMercadoPago returns a Checkout; an empty token yields one that always
// answers checkout_disabled.
func NewMercadoPago(
	accessToken string,
	appointments scheduling.Repository,
	catalog catalog.Repository,
) (*Checkout, error) {

	c := &Checkout{appointments: appointments, catalog: catalog}
	if accessToken == "" {
		return c, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	c.prefs = preference.NewClient(cfg)
	return c, nil
}

func (c *Checkout) Execute(ctx context.Context, appointmentID string) (*Link, error) {
	if c.prefs == nil {
		return nil, httperr.ErrBusiness(httperr.CodeCheckoutOff)
	}

	card, err := c.catalog.GetSetting(ctx, catalog.SettingCard)
	if err != nil {
		return nil, err
	}
	if card == nil || !catalog.Enabled(card.Value) {
		return nil, httperr.ErrBusiness(httperr.CodeCheckoutOff)
	}

	ap, err := c.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.Status == string(domain.StatusCancelled) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	svc, err := c.catalog.GetService(ctx, ap.ServiceID)
	if err != nil {
		return nil, err
	}

	req := preference.Request{
		ExternalReference: ap.ID,
		Items: []preference.ItemRequest{
			{
				ID:          svc.ID,
				Title:       svc.Name,
				Description: fmt.Sprintf("%s %s", ap.Date, ap.Time),
				Quantity:    1,
				UnitPrice:   svc.Price,
				CurrencyID:  "BRL",
			},
		},
	}

	resp, err := c.prefs.Create(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create mercadopago preference: %w", err)
	}

	logger.Log.Info("checkout link created",
		zap.String("appointment_id", ap.ID),
		zap.String("preference_id", resp.ID),
	)

	return &Link{PreferenceID: resp.ID, URL: resp.InitPoint}, nil
}
