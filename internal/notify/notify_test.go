package notify

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type fakeSender struct {
	params *openapi.CreateMessageParams
	err    error
}

func (f *fakeSender) CreateMessage(p *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error) {
	f.params = p
	if f.err != nil {
		return nil, f.err
	}
	sid := "SM123"
	return &openapi.ApiV2010Message{Sid: &sid}, nil
}

func TestWhatsApp_BookingCreated(t *testing.T) {
	sender := &fakeSender{}
	w := &WhatsApp{api: sender, from: "+14155238886", to: "5581996763099"}

	ap := &models.Appointment{ID: "ap-1", ClientName: "Ana", Date: "2025-03-10", Time: "09:00"}
	if err := w.BookingCreated(context.Background(), ap, &models.Service{Name: "Corte"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := *sender.params.To; got != "whatsapp:+5581996763099" {
		t.Fatalf("unexpected To %q", got)
	}
	if got := *sender.params.From; got != "whatsapp:+14155238886" {
		t.Fatalf("unexpected From %q", got)
	}
	body := *sender.params.Body
	if !strings.Contains(body, "Ana") || !strings.Contains(body, "Corte") || !strings.Contains(body, "2025-03-10 às 09:00") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestWhatsApp_PropagatesErrors(t *testing.T) {
	w := &WhatsApp{api: &fakeSender{err: errors.New("boom")}, from: "x", to: "y"}

	err := w.BookingCreated(context.Background(), &models.Appointment{}, &models.Service{})
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestBookingMessage_FallsBackToServiceID(t *testing.T) {
	msg := BookingMessage(&models.Appointment{ServiceID: "svc-9"}, &models.Service{})
	if !strings.Contains(msg, "svc-9") {
		t.Fatalf("expected service id in %q", msg)
	}
}

type slowNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (s *slowNotifier) BookingCreated(_ context.Context, ap *models.Appointment, _ *models.Service) error {
	time.Sleep(20 * time.Millisecond)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, ap.ID)
	return nil
}

func TestAsync_WaitFlushesPendingDeliveries(t *testing.T) {
	next := &slowNotifier{}
	a := NewAsync(next, time.Second)

	for _, id := range []string{"ap-1", "ap-2"} {
		if err := a.BookingCreated(context.Background(), &models.Appointment{ID: id}, &models.Service{Name: "Corte"}); err != nil {
			t.Fatalf("booking created: %v", err)
		}
	}
	a.Wait()

	if len(next.ids) != 2 {
		t.Fatalf("expected 2 deliveries after Wait, got %v", next.ids)
	}
}
