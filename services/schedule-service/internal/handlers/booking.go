package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/availability"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/outbox"
	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/storage"
)

// BookingHandler accepts quick-booking and consultation submissions from the
// public site. Slot-state refresh after a booking is the front end's job: it
// re-queries the day partition instead of trusting a local update.
type BookingHandler struct {
	repo       *storage.AppointmentRepository
	outboxRepo *outbox.Repository
	hours      availability.WorkingHours
	logger     *slog.Logger
	now        func() time.Time
}

func NewBookingHandler(repo *storage.AppointmentRepository, outboxRepo *outbox.Repository, hours availability.WorkingHours, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		hours:      hours,
		logger:     logger,
		now:        time.Now,
	}
}

type quickBookingRequest struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	ServiceID int64  `json:"serviceId"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	DentistID *int64 `json:"dentistId"`
	BranchID  *int64 `json:"branchId"`
	Notes     string `json:"notes"`
}

type quickBookingResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
}

var (
	dateFormat = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	timeFormat = regexp.MustCompile(`^[0-9]{2}:[0-9]{2}$`)
)

// validateQuickBooking applies the booking form rules: required fields,
// strict date/time formats, no past instants, and a clock window of
// StartHour:00 through EndHour:00 inclusive at the submission boundary.
// It returns the scheduled start in the clinic zone when valid.
func validateQuickBooking(req quickBookingRequest, now time.Time, hours availability.WorkingHours) (time.Time, []string) {
	var errs []string
	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if req.ServiceID <= 0 {
		errs = append(errs, "serviceId is required")
	}
	if !dateFormat.MatchString(req.Date) {
		errs = append(errs, "date must be YYYY-MM-DD")
	}
	if !timeFormat.MatchString(req.Time) {
		errs = append(errs, "time must be HH:MM")
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}

	scheduled, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, hours.Location)
	if err != nil {
		return time.Time{}, []string{"date/time is not a valid instant"}
	}
	if scheduled.Before(now) {
		errs = append(errs, "cannot book an appointment in the past")
	}
	minutes := scheduled.Hour()*60 + scheduled.Minute()
	if minutes < hours.StartHour*60 || minutes > hours.EndHour*60 {
		errs = append(errs, "time must be within clinic working hours")
	}
	if len(errs) > 0 {
		return time.Time{}, errs
	}
	return scheduled, nil
}

func (h *BookingHandler) QuickBooking(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req quickBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, quickBookingResponse{Success: false, Message: "invalid json body"})
		return
	}

	scheduled, errs := validateQuickBooking(req, h.now(), h.hours)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, quickBookingResponse{Success: false, Message: strings.Join(errs, "; ")})
		return
	}

	appt := &model.Appointment{
		ID:               uuid.NewString(),
		ServiceID:        req.ServiceID,
		BranchID:         req.BranchID,
		CustomerName:     strings.TrimSpace(req.FullName),
		CustomerEmail:    strings.TrimSpace(req.Email),
		CustomerPhone:    strings.TrimSpace(req.Phone),
		ScheduledTime:    scheduled,
		EndTime:          scheduled.Add(time.Duration(h.hours.SlotMinutes) * time.Minute),
		EstimatedMinutes: h.hours.SlotMinutes,
		Status:           "booked",
		Notes:            strings.TrimSpace(req.Notes),
	}
	if req.DentistID != nil {
		appt.DentistID = *req.DentistID
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.Create(ctx, tx, appt); err != nil {
		if storage.IsConflict(err) {
			writeJSON(w, http.StatusConflict, quickBookingResponse{Success: false, Message: "time slot already booked"})
			return
		}
		h.logger.Error("booking insert failed", "err", err)
		http.Error(w, "failed to create appointment", http.StatusInternalServerError)
		return
	}

	evt, err := outbox.AppointmentBooked(appt)
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Append(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, quickBookingResponse{Success: true, AppointmentID: appt.ID})
}

type consultationRequest struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Method    string `json:"method"`
	Content   string `json:"content"`
	ServiceID *int64 `json:"serviceId"`
	BranchID  *int64 `json:"branchId"`
	Notes     string `json:"notes"`
}

type consultationResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message,omitempty"`
	ConsultationID string `json:"consultationId,omitempty"`
}

func (h *BookingHandler) Consultation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req consultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, consultationResponse{Success: false, Message: "invalid json body"})
		return
	}

	var errs []string
	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, "fullName is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		errs = append(errs, "phone is required")
	}
	if strings.TrimSpace(req.Content) == "" {
		errs = append(errs, "content is required")
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, consultationResponse{Success: false, Message: strings.Join(errs, "; ")})
		return
	}

	method := strings.TrimSpace(req.Method)
	if method == "" {
		method = "phone"
	}

	cons := &model.Consultation{
		ID:            uuid.NewString(),
		CustomerName:  strings.TrimSpace(req.FullName),
		CustomerEmail: strings.TrimSpace(req.Email),
		CustomerPhone: strings.TrimSpace(req.Phone),
		Method:        method,
		Content:       strings.TrimSpace(req.Content),
		ServiceID:     req.ServiceID,
		BranchID:      req.BranchID,
		Notes:         strings.TrimSpace(req.Notes),
	}

	ctx := r.Context()
	tx, err := h.repo.Begin(ctx)
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := h.repo.CreateConsultation(ctx, tx, cons); err != nil {
		h.logger.Error("consultation insert failed", "err", err)
		http.Error(w, "failed to record consultation", http.StatusInternalServerError)
		return
	}

	evt, err := outbox.ConsultationRequested(cons)
	if err != nil {
		http.Error(w, "failed to build event payload", http.StatusInternalServerError)
		return
	}
	if err := h.outboxRepo.Append(ctx, tx, evt); err != nil {
		http.Error(w, "failed to write outbox event", http.StatusInternalServerError)
		return
	}

	if err := tx.Commit(ctx); err != nil {
		http.Error(w, "failed to commit", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, consultationResponse{Success: true, ConsultationID: cons.ID})
}
