package planner

import (
	"context"
	"sync"
	"sync/atomic"
)

// Viewer owns the plan a booking session currently displays. Selections can
// be reissued faster than their fetches resolve; Viewer enforces
// last-write-wins by tagging each Refresh with a serial and discarding any
// result that resolves after a newer selection was made.
type Viewer struct {
	planner *Planner

	serial atomic.Uint64

	mu      sync.Mutex
	plan    DayPlan
	hasPlan bool
}

func NewViewer(p *Planner) *Viewer {
	return &Viewer{planner: p}
}

// Refresh recomputes the plan for the given selection. The returned bool is
// false when the result arrived stale (a newer Refresh started meanwhile)
// and was discarded rather than applied.
func (v *Viewer) Refresh(ctx context.Context, date string, dentistID int64) (DayPlan, bool, error) {
	seq := v.serial.Add(1)

	plan, err := v.planner.PlanDay(ctx, date, dentistID)
	if err != nil {
		return DayPlan{}, false, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.serial.Load() != seq {
		return plan, false, nil
	}
	v.plan = plan
	v.hasPlan = true
	return plan, true, nil
}

// Current returns the last applied plan, if any.
func (v *Viewer) Current() (DayPlan, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.plan, v.hasPlan
}
