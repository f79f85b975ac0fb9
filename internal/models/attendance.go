package models

import "time"

// DateLayout is the ISO calendar date format used for attendance and events
const DateLayout = "2006-01-02"

// AttendanceRecord is one child's presence on one day
type AttendanceRecord struct {
	ID      string `json:"id"`
	ChildID string `json:"childId"`
	Date    string `json:"date"`
	Present bool   `json:"present"`
}

// AttendanceID returns the deterministic record id for a child and date.
// Re-marking the same pair overwrites the existing record.
func AttendanceID(childID, date string) string {
	return childID + "_" + date
}

// FormatDate renders t as an ISO calendar date in its own location
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ValidDate reports whether s is an ISO calendar date
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
