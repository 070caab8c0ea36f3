package main

import (
	"encoding/json"
	"testing"
)

// The service decodes serviceId and dentistId as int64; a payload carrying
// them as JSON strings is rejected with 400 before validation runs.
func TestBuildPayload_NumericIDs(t *testing.T) {
	payload, err := buildPayload("Test Patient", "0900000000", "p@example.com", "2100-01-15", "09:00", 3, 7)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	var decoded struct {
		FullName  string `json:"fullName"`
		Email     string `json:"email"`
		Phone     string `json:"phone"`
		ServiceID int64  `json:"serviceId"`
		Date      string `json:"date"`
		Time      string `json:"time"`
		DentistID *int64 `json:"dentistId"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("payload does not match the booking contract: %v", err)
	}
	if decoded.ServiceID != 3 {
		t.Errorf("serviceId = %d, want 3", decoded.ServiceID)
	}
	if decoded.DentistID == nil || *decoded.DentistID != 7 {
		t.Errorf("dentistId = %v, want 7", decoded.DentistID)
	}
}

func TestBuildPayload_OmitsOptionalFields(t *testing.T) {
	payload, err := buildPayload("Test Patient", "0900000000", "", "2100-01-15", "09:00", 3, 0)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["email"]; ok {
		t.Error("empty email should be omitted")
	}
	if _, ok := decoded["dentistId"]; ok {
		t.Error("zero dentistId should be omitted")
	}
}
