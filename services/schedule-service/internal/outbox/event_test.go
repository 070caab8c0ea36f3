package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
)

func TestAppointmentBooked(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	appt := &model.Appointment{
		ID:            "a1b2",
		DentistID:     4,
		ServiceID:     9,
		CustomerName:  "Test Patient",
		CustomerPhone: "0900000000",
		ScheduledTime: time.Date(2100, 1, 15, 9, 0, 0, 0, loc),
		EndTime:       time.Date(2100, 1, 15, 9, 30, 0, 0, loc),
	}

	evt, err := AppointmentBooked(appt)
	if err != nil {
		t.Fatalf("AppointmentBooked: %v", err)
	}
	if evt.EventType != EventAppointmentBooked {
		t.Errorf("EventType = %q, want %q", evt.EventType, EventAppointmentBooked)
	}
	if evt.AggregateType != "appointment" || evt.AggregateID != "a1b2" {
		t.Errorf("aggregate = %s/%s, want appointment/a1b2", evt.AggregateType, evt.AggregateID)
	}

	var payload map[string]any
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["scheduled_time"] != "2100-01-15T09:00:00+07:00" {
		t.Errorf("scheduled_time = %v", payload["scheduled_time"])
	}
	if payload["dentist_id"] != float64(4) {
		t.Errorf("dentist_id = %v", payload["dentist_id"])
	}
}

func TestConsultationRequested(t *testing.T) {
	cons := &model.Consultation{
		ID:            "c3d4",
		CustomerName:  "Test Patient",
		CustomerPhone: "0900000000",
		Method:        "phone",
	}

	evt, err := ConsultationRequested(cons)
	if err != nil {
		t.Fatalf("ConsultationRequested: %v", err)
	}
	if evt.EventType != EventConsultationRequested {
		t.Errorf("EventType = %q, want %q", evt.EventType, EventConsultationRequested)
	}
	if evt.AggregateType != "consultation" || evt.AggregateID != "c3d4" {
		t.Errorf("aggregate = %s/%s, want consultation/c3d4", evt.AggregateType, evt.AggregateID)
	}

	var payload map[string]any
	if err := json.Unmarshal(evt.Payload, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["method"] != "phone" {
		t.Errorf("method = %v", payload["method"])
	}
}
