// Package ics renders a booked appointment as an iCalendar (RFC 5545)
// event so patients can import it into their calendar.
package ics

import (
	"fmt"
	"strings"
	"time"

	"cureconnect-api/internal/model"
)

const slotDuration = 30 * time.Minute

// Event builds the .ics file body for an appointment. The date/time pair
// carries no timezone, so it is read as UTC for the DTSTART/DTEND stamps,
// matching how the booking was displayed.
func Event(a *model.Appointment) (string, error) {
	start, err := time.Parse("2006-01-02 15:04", a.Date+" "+a.Time)
	if err != nil {
		return "", fmt.Errorf("ics: bad date/time on appointment %s: %w", a.ID, err)
	}
	end := start.Add(slotDuration)

	doctorName := "Doctor"
	if a.Doctor != nil && a.Doctor.Name != "" {
		doctorName = a.Doctor.Name
	}

	desc := []string{"Patient: " + a.PatientName}
	if a.PatientEmail != "" {
		desc = append(desc, "Email: "+a.PatientEmail)
	}
	if a.PatientPhone != "" {
		desc = append(desc, "Phone: "+a.PatientPhone)
	}
	if a.Notes != "" {
		desc = append(desc, "Notes: "+a.Notes)
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Cureconnect//EN",
		"CALSCALE:GREGORIAN",
		"BEGIN:VEVENT",
		"UID:" + a.ID + "@cureconnect",
		"DTSTAMP:" + stamp(time.Now()),
		"DTSTART:" + stamp(start),
		"DTEND:" + stamp(end),
		"SUMMARY:Appointment with " + doctorName,
		"DESCRIPTION:" + strings.Join(desc, `\n`),
		"LOCATION:Online / Clinic",
		"END:VEVENT",
		"END:VCALENDAR",
	}
	return strings.Join(lines, "\r\n"), nil
}

// Filename returns the attachment name for the download response.
func Filename(a *model.Appointment) string {
	return fmt.Sprintf("appointment-%s.ics", a.ID)
}

func stamp(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}
