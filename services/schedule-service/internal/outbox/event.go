package outbox

import (
	"encoding/json"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
)

const (
	EventAppointmentBooked     = "clinic.appointment.booked.v1"
	EventConsultationRequested = "clinic.consultation.requested.v1"
)

// Event is the domain event envelope written to the outbox table.
// The Kafka topic name equals EventType.
type Event struct {
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// AppointmentBooked builds the event emitted after a quick booking commits.
func AppointmentBooked(appt *model.Appointment) (Event, error) {
	payload, err := json.Marshal(map[string]any{
		"appointment_id": appt.ID,
		"dentist_id":     appt.DentistID,
		"service_id":     appt.ServiceID,
		"customer_name":  appt.CustomerName,
		"customer_phone": appt.CustomerPhone,
		"scheduled_time": appt.ScheduledTime.Format(time.RFC3339),
		"end_time":       appt.EndTime.Format(time.RFC3339),
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     EventAppointmentBooked,
		Payload:       payload,
	}, nil
}

// ConsultationRequested builds the event emitted for a consultation intake.
func ConsultationRequested(cons *model.Consultation) (Event, error) {
	payload, err := json.Marshal(map[string]any{
		"consultation_id": cons.ID,
		"customer_name":   cons.CustomerName,
		"customer_phone":  cons.CustomerPhone,
		"method":          cons.Method,
	})
	if err != nil {
		return Event{}, err
	}
	return Event{
		AggregateType: "consultation",
		AggregateID:   cons.ID,
		EventType:     EventConsultationRequested,
		Payload:       payload,
	}, nil
}
