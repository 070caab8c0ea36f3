package schedule

// Wire types for the dentists/day schedule endpoint. Field names match the
// contract the clinic front end already consumes; do not rename.

type DayAppointment struct {
	ID               string `json:"id"`
	ScheduledTime    string `json:"scheduledTime"`
	EndTime          string `json:"endTime"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
	ServiceID        int64  `json:"serviceId"`
	Status           string `json:"status"`
}

type DentistDayData struct {
	DentistID         int64            `json:"dentistId"`
	DentistName       string           `json:"dentistName"`
	Appointments      []DayAppointment `json:"appointments"`
	TotalAppointments int              `json:"totalAppointments"`
}

type DentistsDayResponse struct {
	Success       bool             `json:"success"`
	Date          string           `json:"date"`
	TotalDentists int              `json:"totalDentists"`
	Data          []DentistDayData `json:"data"`
}
