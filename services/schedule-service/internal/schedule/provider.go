package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
)

// DateLayout is the calendar-date format used across the schedule API.
const DateLayout = "2006-01-02"

// Provider fetches one dentist's appointments for a calendar date.
// date is DateLayout in the clinic zone. A dentist with no appointments
// yields an empty slice, not an error.
type Provider interface {
	DentistDay(ctx context.Context, date string, dentistID int64) ([]model.Appointment, error)
}

// DayStore is the slice of the appointment store the in-process provider needs.
type DayStore interface {
	ListDentistDays(ctx context.Context, from, to time.Time) ([]model.DentistDay, error)
}

// StoreProvider serves day schedules straight from the local store. Used when
// schedule-service owns the appointment tables (the default deployment).
type StoreProvider struct {
	store DayStore
	loc   *time.Location
}

func NewStoreProvider(store DayStore, loc *time.Location) *StoreProvider {
	return &StoreProvider{store: store, loc: loc}
}

func (p *StoreProvider) DentistDay(ctx context.Context, date string, dentistID int64) ([]model.Appointment, error) {
	day, err := time.ParseInLocation(DateLayout, date, p.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	days, err := p.store.ListDentistDays(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	for _, d := range days {
		if d.DentistID == dentistID {
			return d.Appointments, nil
		}
	}
	return []model.Appointment{}, nil
}
