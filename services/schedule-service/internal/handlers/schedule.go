package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/schedule"
)

// ScheduleHandler serves the per-dentist day schedule the booking front end
// polls when the user picks a date.
type ScheduleHandler struct {
	store  schedule.DayStore
	loc    *time.Location
	logger *slog.Logger
}

func NewScheduleHandler(store schedule.DayStore, loc *time.Location, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{store: store, loc: loc, logger: logger}
}

func (h *ScheduleHandler) DentistsDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		http.Error(w, "date is required", http.StatusBadRequest)
		return
	}
	day, err := time.ParseInLocation(schedule.DateLayout, date, h.loc)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	days, err := h.store.ListDentistDays(r.Context(), day, day.AddDate(0, 0, 1))
	if err != nil {
		h.logger.Error("day schedule query failed", "date", date, "err", err)
		http.Error(w, "failed to load day schedule", http.StatusInternalServerError)
		return
	}

	resp := schedule.DentistsDayResponse{
		Success:       true,
		Date:          date,
		TotalDentists: len(days),
		Data:          make([]schedule.DentistDayData, 0, len(days)),
	}
	for _, d := range days {
		item := schedule.DentistDayData{
			DentistID:         d.DentistID,
			DentistName:       d.DentistName,
			Appointments:      make([]schedule.DayAppointment, 0, len(d.Appointments)),
			TotalAppointments: len(d.Appointments),
		}
		for _, a := range d.Appointments {
			item.Appointments = append(item.Appointments, schedule.DayAppointment{
				ID:               a.ID,
				ScheduledTime:    a.ScheduledTime.Format(time.RFC3339),
				EndTime:          a.EndTime.Format(time.RFC3339),
				EstimatedMinutes: a.EstimatedMinutes,
				ServiceID:        a.ServiceID,
				Status:           a.Status,
			})
		}
		resp.Data = append(resp.Data, item)
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
