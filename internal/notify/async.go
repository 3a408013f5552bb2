package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type bookingNotifier interface {
	BookingCreated(ctx context.Context, ap *models.Appointment, svc *models.Service) error
}

// Async delivers notifications off the request path. Wait blocks until
// every delivery started so far has finished.
type Async struct {
	next    bookingNotifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next bookingNotifier, timeout time.Duration) *Async {
	return &Async{next: next, timeout: timeout}
}

// BookingCreated copies its arguments and returns immediately.
func (a *Async) BookingCreated(
	_ context.Context,
	ap *models.Appointment,
	svc *models.Service,
) error {
	apCopy, svcCopy := *ap, *svc

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()

		if err := a.next.BookingCreated(ctx, &apCopy, &svcCopy); err != nil {
			logger.Log.Warn("booking notification failed",
				zap.String("appointment_id", apCopy.ID),
				zap.Error(err),
			)
		}
	}()
	return nil
}

func (a *Async) Wait() {
	a.wg.Wait()
}
