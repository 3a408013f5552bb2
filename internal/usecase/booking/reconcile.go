package booking

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/slots"
)

// ReconcileConsumptions repairs appointments that never got a journal row:
// their slot is consumed now and the outcome recorded, so each appointment
// is handled exactly once.
type ReconcileConsumptions struct {
	repo      scheduling.Repository
	batchSize int
}

func NewReconcileConsumptions(repo scheduling.Repository) *ReconcileConsumptions {
	return &ReconcileConsumptions{repo: repo, batchSize: 100}
}

type ReconcileReport struct {
	Checked  int `json:"checked"`
	Consumed int `json:"consumed"`
	Missing  int `json:"missing"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Execute handles each appointment in its own transaction. A failing
// appointment is logged, counted and left for the next run; it never stops
// the rest of the batch.
func (uc *ReconcileConsumptions) Execute(ctx context.Context) (ReconcileReport, error) {
	var report ReconcileReport

	pending, err := uc.repo.ListUnjournaledAppointments(ctx, uc.batchSize)
	if err != nil {
		return report, err
	}

	for _, ap := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		var outcome string
		err := uc.repo.Transaction(ctx, func(tx scheduling.Repository) error {
			entry := &models.SlotConsumption{
				AppointmentID: ap.ID,
				Outcome:       models.ConsumptionSkipped,
			}

			if ap.Status != string(domain.StatusCancelled) {
				c, err := slots.NewMutator(tx, nil).ConsumeSlot(ctx, ap.ServiceID, ap.Date, ap.Time)
				if err != nil {
					return err
				}
				entry = journalEntry(ap.ID, c)
			}

			if err := tx.RecordConsumption(ctx, entry); err != nil {
				return err
			}
			outcome = entry.Outcome
			return nil
		})
		if err != nil {
			report.Failed++
			logger.Log.Error("reconcile appointment failed", zap.String("appointment_id", ap.ID), zap.Error(err))
			continue
		}

		switch outcome {
		case models.ConsumptionConsumed:
			report.Consumed++
		case models.ConsumptionMissing:
			report.Missing++
		default:
			report.Skipped++
		}
	}

	if report.Checked > 0 {
		logger.Log.Info("consumption journal reconciled",
			zap.Int("checked", report.Checked),
			zap.Int("consumed", report.Consumed),
			zap.Int("missing", report.Missing),
			zap.Int("skipped", report.Skipped),
			zap.Int("failed", report.Failed),
		)
	}
	return report, nil
}
