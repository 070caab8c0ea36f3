package model

import "time"

type Appointment struct {
	ID               string
	DentistID        int64
	DentistName      string
	ServiceID        int64
	BranchID         *int64
	CustomerName     string
	CustomerEmail    string
	CustomerPhone    string
	ScheduledTime    time.Time
	EndTime          time.Time
	EstimatedMinutes int
	Status           string
	Notes            string
	CreatedAt        time.Time
}

// DentistDay is one dentist's appointment load for a single calendar date.
type DentistDay struct {
	DentistID    int64
	DentistName  string
	Appointments []Appointment
}

type Consultation struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Method        string
	Content       string
	ServiceID     *int64
	BranchID      *int64
	Notes         string
	CreatedAt     time.Time
}
