package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/brightsmile-dental/clinic-scheduling/services/schedule-service/internal/model"
)

// Client is an HTTP Provider for deployments where the appointment store
// lives behind another instance's schedule API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

func (c *Client) DentistDay(ctx context.Context, date string, dentistID int64) ([]model.Appointment, error) {
	u := c.baseURL + "/api/v1/appointments/dentists/day?date=" + url.QueryEscape(date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("day schedule request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("day schedule request returned %d", resp.StatusCode)
	}

	var body DentistsDayResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("day schedule response decode failed: %w", err)
	}
	if !body.Success {
		return nil, fmt.Errorf("day schedule request for %s was rejected", date)
	}

	for _, d := range body.Data {
		if d.DentistID == dentistID {
			return c.mapAppointments(d), nil
		}
	}
	return []model.Appointment{}, nil
}

// mapAppointments converts wire appointments, dropping entries whose
// timestamps fail to parse: one broken record must not take down the
// whole day's computation.
func (c *Client) mapAppointments(d DentistDayData) []model.Appointment {
	out := make([]model.Appointment, 0, len(d.Appointments))
	for _, a := range d.Appointments {
		start, err := time.Parse(time.RFC3339, a.ScheduledTime)
		if err != nil {
			c.logger.Warn("skipping appointment with bad scheduledTime", "id", a.ID, "value", a.ScheduledTime)
			continue
		}
		end, err := time.Parse(time.RFC3339, a.EndTime)
		if err != nil {
			c.logger.Warn("skipping appointment with bad endTime", "id", a.ID, "value", a.EndTime)
			continue
		}
		out = append(out, model.Appointment{
			ID:               a.ID,
			DentistID:        d.DentistID,
			DentistName:      d.DentistName,
			ServiceID:        a.ServiceID,
			ScheduledTime:    start,
			EndTime:          end,
			EstimatedMinutes: a.EstimatedMinutes,
			Status:           a.Status,
		})
	}
	return out
}
