package handlers

import (
	"testing"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/availability"
)

func TestValidateQuickBooking(t *testing.T) {
	hours := availability.MustWorkingHours(8, 20, 30, time.UTC)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	valid := quickBookingRequest{
		FullName:  "Nguyen Van A",
		Phone:     "0901234567",
		ServiceID: 3,
		Date:      "2026-03-15",
		Time:      "09:30",
	}

	t.Run("valid request", func(t *testing.T) {
		scheduled, errs := validateQuickBooking(valid, now, hours)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		want := time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
		if !scheduled.Equal(want) {
			t.Fatalf("scheduled = %s, want %s", scheduled, want)
		}
	})

	t.Run("closing-time boundary is allowed", func(t *testing.T) {
		req := valid
		req.Time = "20:00"
		if _, errs := validateQuickBooking(req, now, hours); len(errs) != 0 {
			t.Fatalf("20:00 must be accepted at submission: %v", errs)
		}
	})

	bad := []struct {
		name   string
		mutate func(*quickBookingRequest)
	}{
		{"missing name", func(r *quickBookingRequest) { r.FullName = "  " }},
		{"missing phone", func(r *quickBookingRequest) { r.Phone = "" }},
		{"missing service", func(r *quickBookingRequest) { r.ServiceID = 0 }},
		{"bad date format", func(r *quickBookingRequest) { r.Date = "15/03/2026" }},
		{"bad time format", func(r *quickBookingRequest) { r.Time = "9:30" }},
		{"impossible date", func(r *quickBookingRequest) { r.Date = "2026-13-45" }},
		{"in the past", func(r *quickBookingRequest) { r.Date = "2026-03-13" }},
		{"before opening", func(r *quickBookingRequest) { r.Time = "07:30" }},
		{"after closing", func(r *quickBookingRequest) { r.Time = "20:30" }},
	}
	for _, tc := range bad {
		t.Run(tc.name, func(t *testing.T) {
			req := valid
			tc.mutate(&req)
			if _, errs := validateQuickBooking(req, now, hours); len(errs) == 0 {
				t.Fatalf("expected validation errors for %s", tc.name)
			}
		})
	}
}

func TestValidateQuickBooking_TodayFutureTime(t *testing.T) {
	hours := availability.MustWorkingHours(8, 20, 30, time.UTC)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	req := quickBookingRequest{
		FullName:  "Nguyen Van A",
		Phone:     "0901234567",
		ServiceID: 3,
		Date:      "2026-03-14",
		Time:      "10:30",
	}
	if _, errs := validateQuickBooking(req, now, hours); len(errs) != 0 {
		t.Fatalf("later today must be bookable: %v", errs)
	}

	req.Time = "09:30"
	if _, errs := validateQuickBooking(req, now, hours); len(errs) == 0 {
		t.Fatal("earlier today must be rejected as past")
	}
}
