package schedule

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_DentistDay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/appointments/dentists/day" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("date"); got != "2026-03-14" {
			t.Errorf("unexpected date %q", got)
		}
		_ = json.NewEncoder(w).Encode(DentistsDayResponse{
			Success:       true,
			Date:          "2026-03-14",
			TotalDentists: 2,
			Data: []DentistDayData{
				{
					DentistID:   7,
					DentistName: "Dr. Lan",
					Appointments: []DayAppointment{
						{
							ID:            "a1",
							ScheduledTime: "2026-03-14T09:00:00+07:00",
							EndTime:       "2026-03-14T10:00:00+07:00",
							ServiceID:     3,
							Status:        "confirmed",
						},
						{
							ID:            "a2",
							ScheduledTime: "not-a-timestamp",
							EndTime:       "2026-03-14T11:00:00+07:00",
						},
					},
					TotalAppointments: 2,
				},
				{DentistID: 8, DentistName: "Dr. Minh"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	appts, err := c.DentistDay(context.Background(), "2026-03-14", 7)
	if err != nil {
		t.Fatalf("DentistDay: %v", err)
	}
	// The malformed appointment is dropped, not fatal.
	if len(appts) != 1 {
		t.Fatalf("expected 1 appointment, got %d", len(appts))
	}
	if appts[0].ID != "a1" || appts[0].DentistName != "Dr. Lan" {
		t.Fatalf("unexpected appointment: %+v", appts[0])
	}
	want := time.Date(2026, 3, 14, 2, 0, 0, 0, time.UTC)
	if !appts[0].ScheduledTime.Equal(want) {
		t.Fatalf("unexpected start: %s", appts[0].ScheduledTime)
	}
}

func TestClient_DentistDay_UnknownDentistIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(DentistsDayResponse{Success: true, Date: "2026-03-14"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	appts, err := c.DentistDay(context.Background(), "2026-03-14", 99)
	if err != nil {
		t.Fatalf("DentistDay: %v", err)
	}
	if len(appts) != 0 {
		t.Fatalf("expected empty schedule, got %d", len(appts))
	}
}

func TestClient_DentistDay_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	if _, err := c.DentistDay(context.Background(), "2026-03-14", 7); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestClient_DentistDay_RejectedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(DentistsDayResponse{Success: false, Date: "2026-03-14"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, testLogger())
	if _, err := c.DentistDay(context.Background(), "2026-03-14", 7); err == nil {
		t.Fatal("expected error on success=false response")
	}
}
