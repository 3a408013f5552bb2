package availability

import (
	"context"
	"sort"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// Resolver answers "what can a client book" for a service. Missing dates,
// unknown services and malformed input all resolve to nothing, never to an
// error; errors are reserved for the store failing.
type Resolver struct {
	repo  scheduling.Repository
	today timezone.Clock
}

func NewResolver(repo scheduling.Repository, today timezone.Clock) *Resolver {
	return &Resolver{repo: repo, today: today}
}

// HasServiceConfiguration reports whether the service owns any slot row on
// date, available or not.
func (r *Resolver) HasServiceConfiguration(
	ctx context.Context,
	serviceID string,
	date string,
) (bool, error) {

	if !scheduling.ValidDate(date) {
		return false, nil
	}

	d, err := r.repo.FindDate(ctx, date)
	if err != nil || d == nil {
		return false, err
	}

	rows, err := r.repo.ListServiceSlots(ctx, serviceID, d.ID)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// HasAnyServiceConfiguration is HasServiceConfiguration over every date.
func (r *Resolver) HasAnyServiceConfiguration(
	ctx context.Context,
	serviceID string,
) (bool, error) {

	rows, err := r.repo.ListServiceSlotsForService(ctx, serviceID)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// ResolveTimes returns the bookable HH:MM times, ascending. Once a service
// has any row on the date, the general pool is ignored for it entirely.
func (r *Resolver) ResolveTimes(
	ctx context.Context,
	serviceID string,
	date string,
) ([]string, error) {

	out := []string{}

	if serviceID == "" || !scheduling.ValidDate(date) {
		return out, nil
	}

	ok, err := r.repo.ServiceExists(ctx, serviceID)
	if err != nil || !ok {
		return out, err
	}

	d, err := r.repo.FindDate(ctx, date)
	if err != nil || d == nil {
		return out, err
	}

	overrides, err := r.repo.ListServiceSlots(ctx, serviceID, d.ID)
	if err != nil {
		return nil, err
	}

	if len(overrides) > 0 {
		for _, s := range overrides {
			if s.IsAvailable {
				out = append(out, s.Time)
			}
		}
		sort.Strings(out)
		return out, nil
	}

	general, err := r.repo.ListGeneralSlots(ctx, d.ID)
	if err != nil {
		return nil, err
	}
	for _, s := range general {
		if s.IsAvailable {
			out = append(out, s.Time)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ResolveDates lists the selectable YYYY-MM-DD dates from today on.
// A service with overrides anywhere only sees dates where it has at least
// one available row of its own; otherwise every known date is offered.
func (r *Resolver) ResolveDates(
	ctx context.Context,
	serviceID string,
) ([]string, error) {

	out := []string{}

	if serviceID == "" {
		return out, nil
	}

	ok, err := r.repo.ServiceExists(ctx, serviceID)
	if err != nil || !ok {
		return out, err
	}

	dates, err := r.repo.ListDates(ctx)
	if err != nil {
		return nil, err
	}

	overrides, err := r.repo.ListServiceSlotsForService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	today := r.today()

	if len(overrides) == 0 {
		for _, d := range dates {
			if d.Date >= today {
				out = append(out, d.Date)
			}
		}
		sort.Strings(out)
		return out, nil
	}

	open := make(map[string]bool)
	for _, s := range overrides {
		if s.IsAvailable {
			open[s.DateID] = true
		}
	}

	for _, d := range dates {
		if open[d.ID] && d.Date >= today {
			out = append(out, d.Date)
		}
	}
	sort.Strings(out)
	return out, nil
}

// SuggestSlot finds the earliest available override slot from today on.
// Services without overrides never get a suggestion; nil means none.
func (r *Resolver) SuggestSlot(
	ctx context.Context,
	serviceID string,
) (*scheduling.Suggestion, error) {

	configured, err := r.HasAnyServiceConfiguration(ctx, serviceID)
	if err != nil || !configured {
		return nil, err
	}

	dates, err := r.repo.ListDates(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Date < dates[j].Date })

	today := r.today()

	for _, d := range dates {
		if d.Date < today {
			continue
		}

		rows, err := r.repo.ListServiceSlots(ctx, serviceID, d.ID)
		if err != nil {
			return nil, err
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Time < rows[j].Time })

		for _, s := range rows {
			if s.IsAvailable {
				return &scheduling.Suggestion{Date: d.Date, Time: s.Time}, nil
			}
		}
	}

	return nil, nil
}
