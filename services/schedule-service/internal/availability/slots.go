package availability

import "time"

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
	StatusPast      Status = "past"
)

// Interval is a booked [Start, End) span. Intervals with zero endpoints or
// End <= Start are treated as empty and never block a slot.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Partition is a full working day split into HH:MM slot-start labels.
// The three lists are disjoint and together cover every slot exactly once.
type Partition struct {
	Available []string
	Booked    []string
	Past      []string
}

func (p Partition) Size() int {
	return len(p.Available) + len(p.Booked) + len(p.Past)
}

// SlotTimes enumerates every slot-start label for the date of day, ascending.
func SlotTimes(h WorkingHours, day time.Time) []string {
	starts := slotStarts(h, day)
	labels := make([]string, len(starts))
	for i, t := range starts {
		labels[i] = t.Format("15:04")
	}
	return labels
}

// PartitionDay classifies every slot of the day as available, booked or past.
//
// A slot [slotStart, slotEnd) is past when the target date is today in the
// clinic zone and slotStart is before now; past wins over booked. Otherwise it is
// booked when any busy interval overlaps it under half-open semantics
// (slotStart < busy.End && busy.Start < slotEnd), so touching boundaries do
// not conflict and an appointment reaching outside the working window still
// blocks the in-window slots it covers.
func PartitionDay(h WorkingHours, day time.Time, busy []Interval, now time.Time) Partition {
	p := Partition{
		Available: []string{},
		Booked:    []string{},
		Past:      []string{},
	}

	step := time.Duration(h.SlotMinutes) * time.Minute
	nowLocal := now.In(h.Location)

	for _, slotStart := range slotStarts(h, day) {
		slotEnd := slotStart.Add(step)
		label := slotStart.Format("15:04")

		sameDay := slotStart.Year() == nowLocal.Year() && slotStart.YearDay() == nowLocal.YearDay()
		if sameDay && slotStart.Before(now) {
			p.Past = append(p.Past, label)
			continue
		}
		if overlapsAny(slotStart, slotEnd, busy) {
			p.Booked = append(p.Booked, label)
			continue
		}
		p.Available = append(p.Available, label)
	}
	return p
}

func slotStarts(h WorkingHours, day time.Time) []time.Time {
	year, month, dom := day.In(h.Location).Date()
	windowStart := time.Date(year, month, dom, h.StartHour, 0, 0, 0, h.Location)
	step := time.Duration(h.SlotMinutes) * time.Minute

	starts := make([]time.Time, 0, h.SlotCount())
	for i := 0; i < h.SlotCount(); i++ {
		starts = append(starts, windowStart.Add(time.Duration(i)*step))
	}
	return starts
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		if b.Start.IsZero() || b.End.IsZero() || !b.End.After(b.Start) {
			continue
		}
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
