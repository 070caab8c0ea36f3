package planner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/availability"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/schedule"
)

// DayPlan is one dentist's working day partitioned into slot labels.
// Degraded means the schedule could not be fetched: all lists are empty and
// the caller should say "could not load schedule" instead of implying a free day.
type DayPlan struct {
	Date      string
	DentistID int64
	Available []string
	Booked    []string
	Past      []string
	Degraded  bool
}

// FullyBooked reports a day the schedule loaded for but left nothing selectable.
func (p DayPlan) FullyBooked() bool {
	return !p.Degraded && len(p.Available) == 0
}

type Planner struct {
	provider schedule.Provider
	hours    availability.WorkingHours
	logger   *slog.Logger
	now      func() time.Time
}

func New(provider schedule.Provider, hours availability.WorkingHours, logger *slog.Logger) *Planner {
	return &Planner{
		provider: provider,
		hours:    hours,
		logger:   logger,
		now:      time.Now,
	}
}

// PlanDay fetches the dentist's appointments for date and partitions the
// working day. A provider failure is absorbed into a degraded empty plan;
// only an unparseable date is the caller's error.
func (p *Planner) PlanDay(ctx context.Context, date string, dentistID int64) (DayPlan, error) {
	day, err := time.ParseInLocation(schedule.DateLayout, date, p.hours.Location)
	if err != nil {
		return DayPlan{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	plan := DayPlan{
		Date:      date,
		DentistID: dentistID,
		Available: []string{},
		Booked:    []string{},
		Past:      []string{},
	}

	appts, err := p.provider.DentistDay(ctx, date, dentistID)
	if err != nil {
		p.logger.Warn("day schedule fetch failed; serving degraded plan",
			"date", date, "dentist_id", dentistID, "err", err)
		plan.Degraded = true
		return plan, nil
	}

	busy := make([]availability.Interval, 0, len(appts))
	for _, a := range appts {
		busy = append(busy, availability.Interval{Start: a.ScheduledTime, End: a.EndTime})
	}

	part := availability.PartitionDay(p.hours, day, busy, p.now())
	plan.Available = part.Available
	plan.Booked = part.Booked
	plan.Past = part.Past
	return plan, nil
}
