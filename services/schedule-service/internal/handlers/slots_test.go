package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/availability"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/planner"
)

type stubProvider struct {
	appts []model.Appointment
	err   error
}

func (s *stubProvider) DentistDay(context.Context, string, int64) ([]model.Appointment, error) {
	return s.appts, s.err
}

func newSlotsHandler(p *stubProvider) *SlotsHandler {
	hours := availability.MustWorkingHours(8, 20, 30, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewSlotsHandler(planner.New(p, hours, logger), logger)
}

func TestSlotsDay_Partition(t *testing.T) {
	start := time.Date(2100, 1, 15, 9, 0, 0, 0, time.UTC)
	h := newSlotsHandler(&stubProvider{appts: []model.Appointment{
		{ScheduledTime: start, EndTime: start.Add(time.Hour)},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots/day?date=2100-01-15&dentistId=7", nil)
	rec := httptest.NewRecorder()
	h.Day(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp dayPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Degraded {
		t.Fatal("unexpected degraded response")
	}
	if len(resp.Booked) != 2 || resp.Booked[0] != "09:00" || resp.Booked[1] != "09:30" {
		t.Fatalf("unexpected booked slots: %v", resp.Booked)
	}
	if len(resp.Available)+len(resp.Booked)+len(resp.Past) != 24 {
		t.Fatalf("partition not exhaustive: a=%d b=%d p=%d", len(resp.Available), len(resp.Booked), len(resp.Past))
	}
}

func TestSlotsDay_DegradedOnProviderFailure(t *testing.T) {
	h := newSlotsHandler(&stubProvider{err: errors.New("backend down")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/slots/day?date=2100-01-15&dentistId=7", nil)
	rec := httptest.NewRecorder()
	h.Day(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("degraded day must still answer 200, got %d", rec.Code)
	}
	var resp dayPlanResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Degraded {
		t.Fatal("expected degraded flag")
	}
	if len(resp.Available) != 0 || len(resp.Booked) != 0 || len(resp.Past) != 0 {
		t.Fatalf("degraded response must be empty, got %+v", resp)
	}
	if resp.FullyBooked {
		t.Fatal("degraded day must not read as fully booked")
	}
	// Empty lists must serialize as [], not null, for the front end.
	if body := rec.Body.String(); !json.Valid([]byte(body)) || containsNull(body) {
		t.Fatalf("expected empty arrays in body: %s", body)
	}
}

func containsNull(body string) bool {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return true
	}
	for _, key := range []string{"available", "booked", "past"} {
		if string(raw[key]) == "null" {
			return true
		}
	}
	return false
}

func TestSlotsDay_BadRequests(t *testing.T) {
	h := newSlotsHandler(&stubProvider{})

	cases := []struct {
		name   string
		target string
	}{
		{"missing date", "/slots?dentistId=7"},
		{"missing dentist", "/slots?date=2100-01-15"},
		{"bad dentist", "/slots?date=2100-01-15&dentistId=abc"},
		{"bad date", "/slots?date=15-01-2100&dentistId=7"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Day(rec, httptest.NewRequest(http.MethodGet, tc.target, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}

	rec := httptest.NewRecorder()
	h.Day(rec, httptest.NewRequest(http.MethodPost, "/slots?date=2100-01-15&dentistId=7", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
