package dates

import (
	"strconv"
	"time"
)

// Layout is the wire format used across all KYC date fields.
const Layout = "02/01/2006"

// directory birthDate values arrive in loose ISO variants ("1996-5-30")
var sourceLayouts = []string{"2006-01-02", "2006-1-2", time.RFC3339}

// FormatDDMMYYYY converts a directory-style date string to DD/MM/YYYY.
// Unparseable input is returned unchanged so values already in the wire
// format pass through.
func FormatDDMMYYYY(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range sourceLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(Layout)
		}
	}
	return raw
}

// Parse parses a DD/MM/YYYY string.
func Parse(value string) (time.Time, error) {
	return time.Parse(Layout, value)
}

// Age returns the whole-year age for a DD/MM/YYYY date of birth,
// evaluated against the current date.
func Age(dob string) string {
	return AgeAt(dob, time.Now())
}

// AgeAt computes calendar-aware whole-year age at a reference date:
// the year difference is decremented when the reference month/day
// precedes the birth month/day.
func AgeAt(dob string, at time.Time) string {
	if dob == "" {
		return ""
	}
	birth, err := Parse(dob)
	if err != nil {
		return ""
	}
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return strconv.Itoa(age)
}
