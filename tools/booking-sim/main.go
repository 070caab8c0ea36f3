package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Posts a quick-booking request against a running schedule-service and
// prints the response, useful while poking at the overlap constraint.
func main() {
	var (
		baseURL   = flag.String("base-url", getenv("BASE_URL", "http://localhost:8080"), "schedule-service base url")
		fullName  = flag.String("name", getenv("FULL_NAME", "Test Patient"), "patient full name")
		phone     = flag.String("phone", getenv("PHONE", "0900000000"), "patient phone")
		email     = flag.String("email", getenv("EMAIL", ""), "patient email (optional)")
		serviceID = flag.Int64("service-id", getenvInt64("SERVICE_ID", 0), "clinic service id")
		date      = flag.String("date", getenv("DATE", ""), "appointment date (YYYY-MM-DD, default tomorrow)")
		at        = flag.String("time", getenv("TIME", "09:00"), "appointment time (HH:MM)")
		dentistID = flag.Int64("dentist-id", 0, "dentist id (optional)")
		repeat    = flag.Int("repeat", 1, "submit the same request N times (conflict testing)")
	)
	flag.Parse()

	if *serviceID == 0 {
		fatal("SERVICE_ID is required")
	}
	day := strings.TrimSpace(*date)
	if day == "" {
		day = time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	}

	payload, err := buildPayload(*fullName, *phone, *email, day, *at, *serviceID, *dentistID)
	if err != nil {
		fatal(err.Error())
	}

	url := strings.TrimRight(*baseURL, "/") + "/api/v1/public/quick-booking"
	for i := 0; i < *repeat; i++ {
		resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
		if err != nil {
			fatal(err.Error())
		}
		out, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		fmt.Printf("status=%d body=%s\n", resp.StatusCode, strings.TrimSpace(string(out)))
	}
}

// buildPayload mirrors the quick-booking wire contract: serviceId and
// dentistId are JSON numbers, not strings.
func buildPayload(fullName, phone, email, date, at string, serviceID, dentistID int64) ([]byte, error) {
	body := map[string]any{
		"fullName":  fullName,
		"phone":     phone,
		"serviceId": serviceID,
		"date":      date,
		"time":      at,
	}
	if email != "" {
		body["email"] = email
	}
	if dentistID != 0 {
		body["dentistId"] = dentistID
	}
	return json.Marshal(body)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt64(k string, def int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func fatal(msg string) {
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}
