package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/planner"
)

// SlotsHandler exposes the day partition: every slot of the working day
// labelled available, booked or past for one dentist and date.
type SlotsHandler struct {
	planner *planner.Planner
	logger  *slog.Logger
}

func NewSlotsHandler(p *planner.Planner, logger *slog.Logger) *SlotsHandler {
	return &SlotsHandler{planner: p, logger: logger}
}

type dayPlanResponse struct {
	Date        string   `json:"date"`
	DentistID   int64    `json:"dentistId"`
	Available   []string `json:"available"`
	Booked      []string `json:"booked"`
	Past        []string `json:"past"`
	Degraded    bool     `json:"degraded"`
	FullyBooked bool     `json:"fullyBooked"`
}

func (h *SlotsHandler) Day(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := strings.TrimSpace(r.URL.Query().Get("date"))
	dentistRaw := strings.TrimSpace(r.URL.Query().Get("dentistId"))
	if date == "" || dentistRaw == "" {
		http.Error(w, "date and dentistId are required", http.StatusBadRequest)
		return
	}
	dentistID, err := strconv.ParseInt(dentistRaw, 10, 64)
	if err != nil || dentistID <= 0 {
		http.Error(w, "invalid dentistId", http.StatusBadRequest)
		return
	}

	plan, err := h.planner.PlanDay(r.Context(), date, dentistID)
	if err != nil {
		http.Error(w, "invalid date", http.StatusBadRequest)
		return
	}

	// A degraded plan still answers 200: the front end renders "could not
	// load schedule" off the flag instead of an error page.
	writeJSON(w, http.StatusOK, dayPlanResponse{
		Date:        plan.Date,
		DentistID:   plan.DentistID,
		Available:   plan.Available,
		Booked:      plan.Booked,
		Past:        plan.Past,
		Degraded:    plan.Degraded,
		FullyBooked: plan.FullyBooked(),
	})
}
