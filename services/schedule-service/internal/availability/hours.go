package availability

import (
	"fmt"
	"time"
)

// WorkingHours is the clinic's bookable window for one day. StartHour is
// inclusive, EndHour exclusive, both whole hours of the day in Location.
// Location is the clinic-branch timezone; slot arithmetic never consults
// the ambient process zone.
type WorkingHours struct {
	StartHour   int
	EndHour     int
	SlotMinutes int
	Location    *time.Location
}

// Clinic defaults: 08:00-20:00 in 30-minute slots.
const (
	DefaultStartHour   = 8
	DefaultEndHour     = 20
	DefaultSlotMinutes = 30
)

func (h WorkingHours) Validate() error {
	if h.StartHour < 0 || h.EndHour > 24 || h.StartHour >= h.EndHour {
		return fmt.Errorf("working hours %d..%d out of range", h.StartHour, h.EndHour)
	}
	if h.SlotMinutes <= 0 {
		return fmt.Errorf("slot minutes must be positive (got %d)", h.SlotMinutes)
	}
	if h.Location == nil {
		return fmt.Errorf("working hours location is required")
	}
	return nil
}

// MustWorkingHours panics on invalid hours. An invalid window is a
// programming error, not a runtime condition.
func MustWorkingHours(startHour, endHour, slotMinutes int, loc *time.Location) WorkingHours {
	h := WorkingHours{StartHour: startHour, EndHour: endHour, SlotMinutes: slotMinutes, Location: loc}
	if err := h.Validate(); err != nil {
		panic(err)
	}
	return h
}

// ClinicHours returns the compiled-in clinic schedule in loc.
func ClinicHours(loc *time.Location) WorkingHours {
	return MustWorkingHours(DefaultStartHour, DefaultEndHour, DefaultSlotMinutes, loc)
}

// SlotCount is the number of slots a day partitions into.
func (h WorkingHours) SlotCount() int {
	return (h.EndHour - h.StartHour) * 60 / h.SlotMinutes
}
