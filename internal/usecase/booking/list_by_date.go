package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListAppointmentsByDate struct {
	repo scheduling.Repository
}

func NewListAppointmentsByDate(
	repo scheduling.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if err := scheduling.ValidateDate(date); err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	names := map[string]string{}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		name, ok := names[ap.ServiceID]
		if !ok {
			if svc, err := uc.repo.GetService(ctx, ap.ServiceID); err == nil {
				name = svc.Name
			}
			names[ap.ServiceID] = name
		}

		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			ClientName:  ap.ClientName,
			ClientPhone: ap.ClientPhone,
			ServiceID:   ap.ServiceID,
			ServiceName: name,
			Date:        ap.Date,
			Time:        ap.Time,
			Status:      ap.Status,
			CreatedAt:   ap.CreatedAt,
		})
	}

	return out, nil
}
