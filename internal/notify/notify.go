package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// messageSender is the slice of the Twilio API this package uses.
type messageSender interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// WhatsApp tells the salon about new bookings through Twilio's WhatsApp
// channel.
type WhatsApp struct {
	api  messageSender
	from string
	to   string
}

func NewWhatsApp(cfg *config.Config) *WhatsApp {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   cfg.TwilioAccountSID,
		Password:   cfg.TwilioAuthToken,
		AccountSid: cfg.TwilioAccountSID,
	})

	return &WhatsApp{
		api:  client.Api,
		from: cfg.TwilioFrom,
		to:   cfg.SalonWhatsApp,
	}
}

func whatsappAddr(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	if !strings.HasPrefix(number, "+") {
		number = "+" + number
	}
	return "whatsapp:" + number
}

// BookingMessage is the text sent for a new appointment.
func BookingMessage(ap *models.Appointment, svc *models.Service) string {
	name := svc.Name
	if name == "" {
		name = ap.ServiceID
	}

	var b strings.Builder
	b.WriteString("Novo agendamento!\n")
	fmt.Fprintf(&b, "Cliente: %s\n", ap.ClientName)
	if ap.ClientPhone != "" {
		fmt.Fprintf(&b, "Telefone: %s\n", ap.ClientPhone)
	}
	fmt.Fprintf(&b, "Serviço: %s\n", name)
	fmt.Fprintf(&b, "Data: %s às %s", ap.Date, ap.Time)
	return b.String()
}

func (w *WhatsApp) BookingCreated(
	ctx context.Context,
	ap *models.Appointment,
	svc *models.Service,
) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddr(w.to))
	params.SetFrom(whatsappAddr(w.from))
	params.SetBody(BookingMessage(ap, svc))

	resp, err := w.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}

	sid := ""
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	logger.Log.Info("booking notification sent",
		zap.String("appointment_id", ap.ID),
		zap.String("sid", sid),
	)
	return nil
}

// LogOnly is used when Twilio is not configured.
type LogOnly struct{}

func (LogOnly) BookingCreated(
	ctx context.Context,
	ap *models.Appointment,
	svc *models.Service,
) error {
	logger.Log.Info("booking notification (twilio disabled)",
		zap.String("appointment_id", ap.ID),
		zap.String("message", BookingMessage(ap, svc)),
	)
	return nil
}
